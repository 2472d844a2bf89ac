package provider

// Future is the result of a fetch started with Go. It is pending until the
// fetch returns and resolved afterwards; there is no other state.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fetch on its own goroutine. Futures share nothing, so concurrent
// fetches complete independently and in no particular order.
func Go[T any](fetch func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fetch()
	}()
	return f
}

// Done is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Resolved reports whether the fetch has returned.
func (f *Future[T]) Resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the future resolves and returns the fetch result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}
