package linkedhashmap

import "recordmap/pkg/data_structure/genericlist"

type kvPair[K comparable, V any] struct {
	key K
	val V
}

// LinkedHashMap is a map that remembers insertion order. Updating an existing
// key replaces the value in place without moving the key; deleting and
// re-adding a key moves it to the back.
type LinkedHashMap[K comparable, V any] struct {
	table    map[K]*genericlist.Element[kvPair[K, V]]
	ordering *genericlist.List[kvPair[K, V]]
}

func New[K comparable, V any]() *LinkedHashMap[K, V] {
	m := &LinkedHashMap[K, V]{
		table:    make(map[K]*genericlist.Element[kvPair[K, V]]),
		ordering: genericlist.New[kvPair[K, V]](),
	}
	return m
}

func (m *LinkedHashMap[K, V]) Put(k K, v V) {
	if e, ok := m.table[k]; ok {
		e.Value = kvPair[K, V]{key: k, val: v}
		return
	}
	m.table[k] = m.ordering.PushBack(kvPair[K, V]{key: k, val: v})
}

func (m *LinkedHashMap[K, V]) Get(k K) (V, bool) {
	e, ok := m.table[k]
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value.val, true
}

func (m *LinkedHashMap[K, V]) Contains(k K) bool {
	_, ok := m.table[k]
	return ok
}

func (m *LinkedHashMap[K, V]) Remove(k K) bool {
	e, ok := m.table[k]
	if !ok {
		return false
	}
	delete(m.table, k)
	m.ordering.Remove(e)
	return true
}

func (m *LinkedHashMap[K, V]) Len() int {
	return len(m.table)
}

func (m *LinkedHashMap[K, V]) Clear() {
	m.table = make(map[K]*genericlist.Element[kvPair[K, V]])
	m.ordering.Init()
}

func (m *LinkedHashMap[K, V]) Copy() *LinkedHashMap[K, V] {
	mCpy := New[K, V]()
	m.IterateCb(func(k K, v V) bool {
		mCpy.Put(k, v)
		return true
	})
	return mCpy
}

// IterateCb visits entries in insertion order until cb returns false.
func (m *LinkedHashMap[K, V]) IterateCb(cb func(k K, v V) bool) {
	for e := m.ordering.Front(); e != nil; e = e.Next() {
		shouldIter := cb(e.Value.key, e.Value.val)
		if !shouldIter {
			return
		}
	}
}

func (m *LinkedHashMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.table))
	m.IterateCb(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
