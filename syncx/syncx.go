// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains useful synchronization primitives.
package syncx

import (
	"sync"

	"github.com/go4org/hashtriemap"
)

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

// Map is a concurrent map backed by a hash-trie. The zero value is ready to
// use.
type Map[K comparable, V any] struct{ m hashtriemap.HashTrieMap[K, V] }

// Compute returns the value stored for key, calling f to compute and store it
// if key is missing. When f fails, nothing is stored and the error is
// returned. Concurrent callers may call f more than once for the same key; the
// first stored value wins.
func (m *Map[K, V]) Compute(key K, f func() (V, error)) (V, error) {
	if v, ok := m.m.Load(key); ok {
		return v, nil
	}
	v, err := f()
	if err != nil {
		var zero V
		return zero, err
	}
	actual, _ := m.m.LoadOrStore(key, v)
	return actual, nil
}
