package async

import (
	"context"
	"runtime"
	"sync"
)

type MapAsyncIterateeI[T any, R any] func(context.Context, T, int) (R, error)

// AsyncMapI runs iteratee over the collection with up to GOMAXPROCS goroutines.
func AsyncMapI[T any, R any](ctx context.Context, collection []T, iteratee MapAsyncIterateeI[T, R]) ([]R, error) { //nolint:revive
	return AsyncMapN(ctx, runtime.GOMAXPROCS(0), collection, iteratee)
}

// AsyncMapN runs iteratee over the collection with at most concurrency goroutines in flight.
// Results keep the order of the collection. The first error cancels the context passed to the
// remaining iterations and is returned.
func AsyncMapN[T any, R any](ctx context.Context, concurrency int, collection []T, iteratee MapAsyncIterateeI[T, R]) ([]R, error) { //nolint:revive
	if concurrency < 1 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	result := make([]R, len(collection))
	semaphore := make(chan struct{}, concurrency)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel(err)
		})
	}

loop:
	for i, item := range collection {
		select {
		case <-ctx.Done():
			break loop
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, item T) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if ctx.Err() != nil {
				return
			}

			r, err := iteratee(ctx, item, i)
			if err != nil {
				fail(err)
				return
			}
			result[i] = r
		}(i, item)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	return result, nil
}
