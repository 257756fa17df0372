package job

import "sync/atomic"

// activeCounter tracks how many workers currently hold a work token, i.e.
// are inside their active-search loop. The invariant a worker relies on
// before exiting is: release your own token, then observe the counter at
// zero — at that point no worker is mid-search and none can be about to
// publish new work (pushes happen before the pop that would find them),
// so global quiescence holds if every local deque is also empty.
type activeCounter struct {
	n atomic.Int64
}

// token represents one worker's hold on the active counter. release must
// be called exactly once, typically via defer, even if the worker's job
// call panics.
type token struct {
	c *activeCounter
}

func (c *activeCounter) acquire() token {
	c.n.Add(1)
	return token{c: c}
}

func (t token) release() {
	t.c.n.Add(-1)
}

func (c *activeCounter) isZero() bool {
	return c.n.Load() == 0
}
