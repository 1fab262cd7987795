// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains useful synchronization primitives.
package syncx

import "sync"

// Protected provides synchronized access to a value of type T.
// The zero value holds the zero T and is ready to use. It should not be
// copied.
type Protected[T any] struct {
	mu  sync.RWMutex
	val T
}

// Read executes f with the value under a read lock.
func (p *Protected[T]) Read(f func(T)) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f(p.val)
}

// Write executes f with a pointer to the value under a write lock, so f may
// replace it.
func (p *Protected[T]) Write(f func(*T)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(&p.val)
}

// Lazy represents a lazily computed value.
type Lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

// Get returns T, calling f to compute it, if necessary.
func (l *Lazy[T]) Get(f func() T) T {
	l.once.Do(func() { l.val = f() })
	return l.val
}

// GetErr returns T and an error, calling f to compute them, if necessary.
func (l *Lazy[T]) GetErr(f func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = f() })
	return l.val, l.err
}

// Map is a generic version of [sync.Map].
type Map[K comparable, V any] struct{ m sync.Map }

// Load is [sync.Map.Load].
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	val, ok := m.m.Load(key)
	if !ok {
		return value, false
	}
	return val.(V), true
}

// LoadOrCompute returns the value stored for key. If there is none, it stores
// the result of f, which may be called even if another goroutine wins the
// race to store a value.
func (m *Map[K, V]) LoadOrCompute(key K, f func() V) V {
	if v, ok := m.Load(key); ok {
		return v
	}
	v, _ := m.m.LoadOrStore(key, f())
	return v.(V)
}

// Delete is [sync.Map.Delete].
func (m *Map[K, V]) Delete(key K) { m.m.Delete(key) }
