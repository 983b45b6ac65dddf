package async

import (
	"context"
)

type EachAsyncIteratee[T any] func(context.Context, T) error

// AsyncEachN runs iteratee over the collection with at most concurrency goroutines in flight.
func AsyncEachN[T any](ctx context.Context, concurrency int, collection []T, iteratee EachAsyncIteratee[T]) error {
	_, err := AsyncMapN(ctx, concurrency, collection, func(ctx context.Context, t T, _ int) (struct{}, error) {
		return struct{}{}, iteratee(ctx, t)
	})
	return err
}
