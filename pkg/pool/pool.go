// Package pool is a small typed layer over sync.Pool.
//
// Values that implement Resettable are reset before they go back into the pool,
// so callers never see state left behind by a previous user.
package pool

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"
)

type Resettable interface {
	Reset()
}

type Pool[T any] struct {
	pool sync.Pool
	keep func(T) bool
}

func NewLitePool[T any](newFn func() T) (*Pool[T], error) {
	if newFn == nil {
		return nil, fmt.Errorf("litepool: constructor must not be nil")
	}
	if isNil(newFn()) {
		return nil, fmt.Errorf("litepool: constructor returned nil")
	}

	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return newFn() },
		},
	}, nil
}

// isNil also catches typed nils, any(v) == nil misses a (*T)(nil)
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func (p *Pool[T]) Get() T {
	//nolint:forcetypeassert // constructor validated in NewLitePool
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(v T) {
	if p.keep != nil && !p.keep(v) {
		return
	}
	if r, ok := any(v).(Resettable); ok {
		r.Reset()
	}
	p.pool.Put(v)
}

// NewBufferPool pools bytes.Buffers and drops any that grew past maxRetained
// so one large response doesn't pin memory for the life of the process.
func NewBufferPool(initialSize, maxRetained int) *Pool[*bytes.Buffer] {
	p, _ := NewLitePool(func() *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, initialSize))
	})
	p.keep = func(b *bytes.Buffer) bool {
		return b.Cap() <= maxRetained
	}
	return p
}
