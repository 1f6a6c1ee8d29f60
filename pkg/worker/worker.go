package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/nimasrn/outlet-ledger/pkg/logger"
)

// Job is one unit of work handed to the pool.
type Job = func(ctx context.Context) error

// Run spreads jobs over at most size goroutines and blocks until every job has
// finished. The returned slice is index-aligned with jobs; a nil entry means
// the job succeeded. Jobs that have not started when ctx is done are skipped
// with ctx.Err(). A panicking job is recovered and reported as its error.
func Run(ctx context.Context, size int, jobs ...Job) []error {
	errs := make([]error, len(jobs))
	if len(jobs) == 0 {
		return errs
	}
	if size < 1 {
		size = 1
	}
	if size > len(jobs) {
		size = len(jobs)
	}

	jobChannel := make(chan int, len(jobs))
	for i := range jobs {
		jobChannel <- i
	}
	close(jobChannel)

	waiter := &sync.WaitGroup{}
	waiter.Add(size)
	for w := 0; w < size; w++ {
		go func(workerIndex int) {
			defer waiter.Done()
			for i := range jobChannel {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = do(ctx, workerIndex, jobs[i])
			}
		}(w)
	}
	waiter.Wait()
	return errs
}

func do(ctx context.Context, workerIndex int, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[worker] job panicked", "worker", workerIndex, "panic", r)
			err = fmt.Errorf("worker %d: panic: %v", workerIndex, r)
		}
	}()
	return job(ctx)
}
