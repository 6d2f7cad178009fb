package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// RunAll executes all tasks concurrently and waits for every one of them
// to finish, running at most limit tasks at a time. A non-positive limit
// means no bound.
//
// The first error cancels the shared context and is returned after the
// remaining tasks drain. A panicking task is converted into an error
// carrying the recovered value and stack instead of crashing the
// process.
func RunAll(ctx context.Context, limit int, tasks []func(ctx context.Context) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for _, task := range tasks {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = goerr.New("panic in parallel task",
						goerr.V("recover", r),
						goerr.V("stack", string(debug.Stack())),
					)
				}
			}()

			return task(ctx)
		})
	}

	return eg.Wait()
}
