package dlive

import (
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// Placeholder is returned by CategoryIndex.Lookup for unknown ids.
var Placeholder = Category{BackendID: -1}

// CategoryIndex remembers categories seen so far by id.
// DLive offers no way to fetch a single category, so listings of one
// category are labelled from this index.
type CategoryIndex struct {
	mu      sync.RWMutex
	entries map[int]*Category
}

// NewCategoryIndex returns an index seeded with items.
func NewCategoryIndex(items ...*Category) *CategoryIndex {
	index := &CategoryIndex{}
	index.Seed(items...)
	return index
}

// Seed replaces the whole mapping.
func (i *CategoryIndex) Seed(items ...*Category) {
	entries := make(map[int]*Category, len(items))
	for _, item := range items {
		if item != nil {
			entries[item.BackendID] = item
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = entries
}

// Update merges items into the mapping. Later items win and nothing is evicted.
func (i *CategoryIndex) Update(items ...*Category) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.entries == nil {
		i.entries = make(map[int]*Category, len(items))
	}

	for _, item := range items {
		if item != nil {
			i.entries[item.BackendID] = item
		}
	}
}

// ParseID reads a category id given as a number or a decimal string,
// so "010" is 10.
func ParseID(id any) (int, error) {
	if s, ok := id.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return cast.ToIntE(id)
}

// Lookup finds a category by id. The id may be anything ParseID accepts,
// such as 5 or "5". Unknown ids yield a copy of Placeholder.
func (i *CategoryIndex) Lookup(id any) Category {
	key, err := ParseID(id)
	if err != nil {
		return Placeholder
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if category, ok := i.entries[key]; ok {
		return *category
	}
	return Placeholder
}

// Len is the number of known categories.
func (i *CategoryIndex) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}
