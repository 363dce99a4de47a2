package types

// SubTemplates is total: every TemplateParam(i, _) with i present in m is
// replaced by m[i]; every other form recurses (spec.md §4.1 sub_templates).
func SubTemplates(t Type, m Subst) Type {
	switch v := t.(type) {
	case TemplateParam:
		if repl, ok := m[v.Index]; ok {
			return repl
		}
		return v
	case Template:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = SubTemplates(a, m)
		}
		return Template{ID: v.ID, Args: args}
	case Ref:
		return Ref{Inner: SubTemplates(v.Inner, m)}
	case MutRef:
		return MutRef{Inner: SubTemplates(v.Inner, m)}
	case Or:
		variants := make([]Type, len(v.Variants))
		for i, p := range v.Variants {
			variants[i] = SubTemplates(p, m)
		}
		return Or{Variants: variants}
	case And:
		elems := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = SubTemplates(e, m)
		}
		return And{Elements: elems}
	case Function:
		return Function{Arg: SubTemplates(v.Arg, m), Ret: SubTemplates(v.Ret, m)}
	default:
		// Empty, SelfType, Wildcard, InferenceMarker, Basic, TemplateParamStr
		// carry no sub-structure relevant to template substitution.
		return t
	}
}

// SubSelf replaces every SelfType occurrence with concrete (spec.md §4.1
// sub_self).
func SubSelf(t Type, concrete Type) Type {
	switch v := t.(type) {
	case SelfType:
		return concrete
	case Template:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = SubSelf(a, concrete)
		}
		return Template{ID: v.ID, Args: args}
	case Ref:
		return Ref{Inner: SubSelf(v.Inner, concrete)}
	case MutRef:
		return MutRef{Inner: SubSelf(v.Inner, concrete)}
	case Or:
		variants := make([]Type, len(v.Variants))
		for i, p := range v.Variants {
			variants[i] = SubSelf(p, concrete)
		}
		return Or{Variants: variants}
	case And:
		elems := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = SubSelf(e, concrete)
		}
		return And{Elements: elems}
	case Function:
		return Function{Arg: SubSelf(v.Arg, concrete), Ret: SubSelf(v.Ret, concrete)}
	default:
		return t
	}
}

// OffsetTemplates shifts every TemplateParam(i, _) to TemplateParam(i+delta,
// _) (spec.md §4.1 offset_templates). Returns a new type; the spec's
// "&mut self" signature is modeled as a pure function since Type values are
// immutable in this port.
func OffsetTemplates(t Type, delta int) Type {
	switch v := t.(type) {
	case TemplateParam:
		return TemplateParam{Index: v.Index + delta, Constraints: v.Constraints}
	case Template:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = OffsetTemplates(a, delta)
		}
		return Template{ID: v.ID, Args: args}
	case Ref:
		return Ref{Inner: OffsetTemplates(v.Inner, delta)}
	case MutRef:
		return MutRef{Inner: OffsetTemplates(v.Inner, delta)}
	case Or:
		variants := make([]Type, len(v.Variants))
		for i, p := range v.Variants {
			variants[i] = OffsetTemplates(p, delta)
		}
		return Or{Variants: variants}
	case And:
		elems := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = OffsetTemplates(e, delta)
		}
		return And{Elements: elems}
	case Function:
		return Function{Arg: OffsetTemplates(v.Arg, delta), Ret: OffsetTemplates(v.Ret, delta)}
	default:
		return t
	}
}

// TemplateDependencies accumulates the set of parameter indices t mentions
// into set (spec.md §4.1 template_dependencies).
func TemplateDependencies(t Type, set map[int]bool) {
	switch v := t.(type) {
	case TemplateParam:
		set[v.Index] = true
		for _, c := range v.Constraints {
			for _, a := range c.Args {
				TemplateDependencies(a, set)
			}
		}
	case Template:
		for _, a := range v.Args {
			TemplateDependencies(a, set)
		}
	case Ref:
		TemplateDependencies(v.Inner, set)
	case MutRef:
		TemplateDependencies(v.Inner, set)
	case Or:
		for _, p := range v.Variants {
			TemplateDependencies(p, set)
		}
	case And:
		for _, e := range v.Elements {
			TemplateDependencies(e, set)
		}
	case Function:
		TemplateDependencies(v.Arg, set)
		TemplateDependencies(v.Ret, set)
	}
}

// HasSelf reports whether t mentions SelfType anywhere.
func HasSelf(t Type) bool {
	switch v := t.(type) {
	case SelfType:
		return true
	case Template:
		for _, a := range v.Args {
			if HasSelf(a) {
				return true
			}
		}
		return false
	case Ref:
		return HasSelf(v.Inner)
	case MutRef:
		return HasSelf(v.Inner)
	case Or:
		for _, p := range v.Variants {
			if HasSelf(p) {
				return true
			}
		}
		return false
	case And:
		for _, e := range v.Elements {
			if HasSelf(e) {
				return true
			}
		}
		return false
	case Function:
		return HasSelf(v.Arg) || HasSelf(v.Ret)
	default:
		return false
	}
}

// HasTemplates reports whether t mentions any TemplateParam.
func HasTemplates(t Type) bool {
	set := map[int]bool{}
	TemplateDependencies(t, set)
	return len(set) > 0
}

// DerefType strips the outermost Ref/MutRef (spec.md §4.1 deref_type).
// DerefType(DerefType(t)) == DerefType(t) holds when t has at most one
// reference layer; a nested reference such as &&T loses one layer per call.
func DerefType(t Type) Type {
	switch v := t.(type) {
	case Ref:
		return v.Inner
	case MutRef:
		return v.Inner
	default:
		return t
	}
}
