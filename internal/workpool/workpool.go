// Package workpool fans indexed work out to a fixed number of goroutines.
package workpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Task processes item i. Returning an error records it against that index;
// it does not stop the other workers.
type Task func(ctx context.Context, i int) error

// Result collects the outcome of a Run.
type Result struct {
	Errors    []error // indexed like the input; nil entries succeeded
	Processed int64   // number of items a worker actually picked up
}

// Failed returns the indices whose task returned an error, in ascending order.
func (r *Result) Failed() []int {
	var failed []int
	for i, err := range r.Errors {
		if err != nil {
			failed = append(failed, i)
		}
	}
	return failed
}

// Run executes task for every index in [0, n) on numWorkers goroutines
// (0 = runtime.NumCPU()). Items that were never started because ctx was
// cancelled are reported with ctx.Err().
func Run(ctx context.Context, n, numWorkers int, task Task) *Result {
	result := &Result{Errors: make([]error, n)}
	if n == 0 {
		return result
	}

	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > n {
		numWorkers = n
	}

	started := make([]bool, n)
	workChan := make(chan int, numWorkers*10)

	// Generate work
	go func() {
		defer close(workChan)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-workChan:
					if !ok {
						return
					}
					started[i] = true
					atomic.AddInt64(&result.Processed, 1)
					result.Errors[i] = task(ctx, i)
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range started {
			if !started[i] {
				result.Errors[i] = err
			}
		}
	}
	return result
}
