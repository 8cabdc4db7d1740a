package restate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Call is the pending result of an AsyncClient operation
type Call[T any] struct {
	value T
	err   error
	done  chan struct{}
}

func start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Call[T] {
	call := &Call[T]{done: make(chan struct{})}
	go func() {
		defer close(call.done)
		call.value, call.err = fn(ctx)
	}()
	return call
}

// Done is closed once the call has finished
func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the call finishes or ctx is done. Giving up on the wait
// does not cancel the call, cancel the context it was started with for that.
func (c *Call[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the call finishes
func (c *Call[T]) Result() (T, error) {
	<-c.done
	return c.value, c.err
}

// WaitAll waits for every call and returns their values in order, or the first error
func WaitAll[T any](ctx context.Context, calls ...*Call[T]) ([]T, error) {
	values := make([]T, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			value, err := call.Wait(gctx)
			if err != nil {
				return err
			}
			values[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}
