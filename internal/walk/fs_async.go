package dirmeta

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/iter"
)

type suspendingFS struct {
	base    FileSystem
	workers int
}

// SuspendingFS returns a FileSystem whose calls run on their own goroutine and
// return ctx.Err() as soon as the context is cancelled. Format detection for a
// batch of paths is spread over at most workers goroutines.
func SuspendingFS(workers int) FileSystem {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return suspendingFS{base: blockingFS{}, workers: workers}
}

func (s suspendingFS) ListDir(ctx context.Context, path string) (Listing, error) {
	return await(ctx, func() (Listing, error) {
		return s.base.ListDir(ctx, path)
	})
}

func (s suspendingFS) Stat(ctx context.Context, path string) (FileStat, error) {
	return await(ctx, func() (FileStat, error) {
		return s.base.Stat(ctx, path)
	})
}

func (s suspendingFS) DetectFormats(ctx context.Context, paths []string) []Format {
	formats, err := await(ctx, func() ([]Format, error) {
		mapper := iter.Mapper[string, Format]{MaxGoroutines: s.workers}
		return mapper.Map(paths, func(p *string) Format {
			if ctx.Err() != nil {
				return UnknownFormat
			}
			return DetectFormat(*p)
		}), nil
	})
	if err != nil {
		formats = make([]Format, len(paths))
		for i := range formats {
			formats[i] = UnknownFormat
		}
	}
	return formats
}

// await runs fn on a new goroutine and waits for it or for ctx, whichever
// finishes first. An abandoned fn keeps running until it returns; its result
// is dropped.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := fn()
		done <- result{val: val, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
