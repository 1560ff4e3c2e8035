package parse

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tanema/typify/src/types"
)

// DefaultMemoSize is the amount of distinct type strings a Memo remembers.
const DefaultMemoSize = 4096

// Memo remembers parse results. Parsed types are immutable so one Memo can be
// shared by every pass and goroutine.
type Memo struct {
	cache *lru.Cache[string, *types.Type]
}

// NewMemo creates a Memo holding at most size entries.
func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, err := lru.New[string, *types.Type](size)
	if err != nil {
		return nil, fmt.Errorf("create parse memo: %w", err)
	}
	return &Memo{cache: cache}, nil
}

// Parse behaves like the package level Parse. A nil Memo parses without
// remembering anything.
func (m *Memo) Parse(src string) *types.Type {
	if m == nil {
		return Parse(src)
	} else if defn, ok := m.cache.Get(src); ok {
		return defn
	}
	defn := Parse(src)
	m.cache.Add(src, defn)
	return defn
}

// Len is the amount of type strings currently remembered.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	return m.cache.Len()
}
