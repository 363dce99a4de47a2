package resolver

import (
	"strconv"
	"strings"
	"sync"

	"github.com/Gabie-of-the-Bo/nessa-core/internal/types"
)

// SymbolKind distinguishes the four overload-set shapes a cache entry can
// key on (spec.md §4.3 "memoizes (symbol_id, arg_types, template_args) ->
// overload_index keyed per symbol kind").
type SymbolKind int

const (
	KindUnaryOp SymbolKind = iota
	KindBinaryOp
	KindNaryOp
	KindFunction
)

// Cache memoizes resolution results. It is sharded one map-plus-mutex per
// SymbolKind (spec.md §5: "if implementations parallelize checking across
// top-level declarations they must either shard the cache per worker or
// protect it with a mutex... sharding is preferred"); sharding by kind is
// sufficient here because every lookup already carries its kind, so
// concurrent checks of (say) a function call and an operator call never
// contend on the same shard.
type Cache struct {
	shards [4]struct {
		mu      sync.RWMutex
		entries map[string]Result
	}
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]Result)
	}
	return c
}

func cacheKey(argsType types.Type, templateArgs []types.Type) string {
	var b strings.Builder
	b.WriteString(argsType.String())
	b.WriteByte('|')
	for i, t := range templateArgs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Get looks up a previously resolved overload. The registry is frozen
// during checking (spec.md §4.3 "Caching: ... sound because the registry
// is read-only"), so a stored result remains valid for the lifetime of
// the Cache.
func (c *Cache) Get(kind SymbolKind, symbolID int, argsType types.Type, templateArgs []types.Type) (Result, bool) {
	shard := &c.shards[kind]
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	r, ok := shard.entries[keyWithID(symbolID, argsType, templateArgs)]
	return r, ok
}

// Put records a resolution result.
func (c *Cache) Put(kind SymbolKind, symbolID int, argsType types.Type, templateArgs []types.Type, result Result) {
	shard := &c.shards[kind]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.entries[keyWithID(symbolID, argsType, templateArgs)] = result
}

func keyWithID(symbolID int, argsType types.Type, templateArgs []types.Type) string {
	return strconv.Itoa(symbolID) + "#" + cacheKey(argsType, templateArgs)
}
