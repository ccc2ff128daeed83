package helper

import "sync"

// SyncMap is a typed sync.Map. The zero value is empty and ready for use.
// Value must be comparable so that entries can be swapped and removed only
// when they still hold an expected value.
type SyncMap[Key comparable, Value comparable] struct {
	inner sync.Map
}

func (m *SyncMap[Key, Value]) Get(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.Load(key)
	if !exists {
		return value, exists
	}
	return rawValue.(Value), exists
}

// Store sets the value of key, replacing any previous value.
func (m *SyncMap[Key, Value]) Store(key Key, value Value) {
	m.inner.Store(key, value)
}

func (m *SyncMap[Key, Value]) Remove(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.LoadAndDelete(key)
	if !exists {
		return value, exists
	}
	return rawValue.(Value), exists
}

// PutIfAbsent stores value unless key exists, and returns the value now
// stored under key together with whether it was already there.
func (m *SyncMap[Key, Value]) PutIfAbsent(key Key, value Value) (actual Value, exists bool) {
	actualValue, exists := m.inner.LoadOrStore(key, value)
	if !exists {
		return value, exists
	}
	return actualValue.(Value), exists
}

// RemoveIfEquals removes key only while it still maps to value.
func (m *SyncMap[Key, Value]) RemoveIfEquals(key Key, value Value) (removed bool) {
	return m.inner.CompareAndDelete(key, value)
}

func (m *SyncMap[Key, Value]) Replace(key Key, oldValue Value, newValue Value) (replaced bool) {
	return m.inner.CompareAndSwap(key, oldValue, newValue)
}

// ForEach calls f for every entry until f returns false.
func (m *SyncMap[Key, Value]) ForEach(f func(key Key, value Value) bool) {
	m.inner.Range(func(key, value any) bool { return f(key.(Key), value.(Value)) })
}

func (m *SyncMap[Key, Value]) Clear() {
	m.inner.Clear()
}
