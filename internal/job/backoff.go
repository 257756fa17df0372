package job

import (
	"runtime"
	"time"
)

// backoff implements the adaptive spin used between failed task
// searches: a short run of pure spins (cheap, low latency if work
// reappears immediately), escalating to brief sleeps to bound CPU
// wastage. Reset whenever a task is successfully claimed, mirroring
// crossbeam_utils::Backoff in the Rust original.
type backoff struct {
	step int
}

const (
	spinLimit  = 6
	yieldLimit = 10
)

func (b *backoff) reset() {
	b.step = 0
}

func (b *backoff) spin() {
	switch {
	case b.step <= spinLimit:
		for i := 0; i < 1<<uint(b.step); i++ {
			// busy spin
		}
	case b.step <= yieldLimit:
		runtime.Gosched()
	default:
		d := time.Duration(b.step-yieldLimit) * 50 * time.Microsecond
		if d > 2*time.Millisecond {
			d = 2 * time.Millisecond
		}
		time.Sleep(d)
	}
	b.step++
}
