// Package job implements the work-stealing job runtime (WSJR): a fixed
// pool of workers, each with a LIFO local deque, a shared injector for
// the initial seed, and an active-work counter that detects global
// quiescence without a lock or condition variable.
//
// Ported from the Rust prototype's run_recursive_job (crossbeam_deque +
// crossbeam_utils) in _examples/original_source/src/job_system.rs, using
// a mutex-guarded deque (see deque.go) in place of crossbeam's lock-free
// one.
package job

import (
	"fmt"
	"runtime"
	"sync"
)

// LocalQueue is the interface a job body uses to enqueue follow-up work
// onto the calling worker's own deque. Implementations must be safe to
// call only from the worker that owns them (the runtime never shares a
// LocalQueue across workers for pushing — only the runtime itself steals
// from it on their behalf).
type LocalQueue[IN any] interface {
	Push(item IN)
}

// Func is a job body: called once per input item, may push zero or more
// follow-up items onto local, and returns an optional output (ok=false
// means "no output for this input, not an error"). Func must be safe to
// call concurrently from up to numWorkers goroutines.
type Func[IN, OUT any] func(item IN, local LocalQueue[IN]) (out OUT, ok bool)

// Run drives fn to quiescence over initial and everything it transitively
// pushes, using numWorkers goroutines (runtime.NumCPU() if numWorkers <= 0).
// It blocks until every produced task has been consumed. Output order is
// unspecified. If fn panics in any worker, Run recovers, lets every other
// worker finish draining, and returns the first panic value wrapped as an
// error once the whole pool has reached quiescence.
func Run[IN, OUT any](initial []IN, fn Func[IN, OUT], numWorkers int) ([]OUT, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	injector := newDeque[IN]()
	for _, item := range initial {
		injector.Push(item)
	}

	deques := make([]*deque[IN], numWorkers)
	for i := range deques {
		deques[i] = newDeque[IN]()
	}

	counter := &activeCounter{}
	resultsPerWorker := make([][]OUT, numWorkers)

	var errMu sync.Mutex
	var firstErr error

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			local := deques[id]
			var results []OUT
			bo := &backoff{}

			defer func() {
				if r := recover(); r != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("job: worker %d panicked: %v", id, r)
					}
					errMu.Unlock()
				}
				resultsPerWorker[id] = results
			}()

			for {
				tok := counter.acquire()
				func() {
					defer tok.release()
					for {
						item, found := findTask(local, injector, deques, id)
						if !found {
							return
						}
						bo.reset()
						if out, ok := fn(item, local); ok {
							results = append(results, out)
						}
					}
				}()

				if counter.isZero() {
					return
				}
				bo.spin()
			}
		}(w)
	}

	wg.Wait()

	var out []OUT
	for _, r := range resultsPerWorker {
		out = append(out, r...)
	}
	return out, firstErr
}

// findTask implements the task-acquisition algorithm: local deque first,
// then a batch steal from the injector, then a single-item steal from
// each foreign worker in turn.
func findTask[T any](local *deque[T], injector *deque[T], all []*deque[T], selfID int) (T, bool) {
	if item, ok := local.popBottom(); ok {
		return item, true
	}

	if injector.stealBatch(local) > 0 {
		if item, ok := local.popBottom(); ok {
			return item, true
		}
	}

	for i, d := range all {
		if i == selfID {
			continue
		}
		if item, ok := d.stealTop(); ok {
			return item, true
		}
	}

	var zero T
	return zero, false
}
