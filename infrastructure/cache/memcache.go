package cache

import (
	"sync"
)

// MemCache is a small in-process key/value store backed by sync.Map.
// Entries live until removed; there is no expiry.
type MemCache struct {
	items sync.Map
}

type item struct {
	value any
}

func NewMemCache() *MemCache {
	return &MemCache{}
}

func (m *MemCache) Set(key string, value any) {
	m.items.Store(key, &item{value: value})
}

func (m *MemCache) Get(key string) (any, bool) {
	v, ok := m.items.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*item).value, true
}

// CompareAndDelete removes key only while it still holds expected.
// A concurrent Set in between wins and the delete is skipped.
func (m *MemCache) CompareAndDelete(key string, expected any) bool {
	v, ok := m.items.Load(key)
	if !ok {
		return false
	}
	it := v.(*item)
	if it.value != expected {
		return false
	}
	return m.items.CompareAndDelete(key, it)
}

func (m *MemCache) Keys() []string {
	keys := make([]string, 0)
	m.items.Range(func(k, _ any) bool {
		if ks, ok := k.(string); ok {
			keys = append(keys, ks)
		}
		return true
	})
	return keys
}
