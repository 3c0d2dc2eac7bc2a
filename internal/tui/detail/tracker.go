package detail

import "context"

// Request identifies one load.
type Request struct {
	ID  uint64
	Key string
}

// Tracker hands out request IDs and owns the cancel func of the current
// load. It is used from the bubbletea update loop only and is not safe for
// concurrent use.
type Tracker struct {
	next    uint64
	current Request
	cancel  context.CancelFunc
}

// Begin cancels the current load, if any, and starts a new one for key.
// The returned context is derived from parent and is cancelled by the next
// Begin or Cancel.
func (t *Tracker) Begin(parent context.Context, key string) (Request, context.Context) {
	t.Cancel()
	t.next++
	t.current = Request{ID: t.next, Key: key}

	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	return t.current, ctx
}

// Accept reports whether req is the current load. An accepted request is
// finished and its context released.
func (t *Tracker) Accept(req Request) bool {
	if req.ID == 0 || req != t.current {
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return true
}

// Cancel aborts the current load. Its result will still be delivered but
// will no longer be accepted.
func (t *Tracker) Cancel() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.current = Request{}
}

// Current returns the load in flight, or the zero Request when idle.
func (t *Tracker) Current() Request {
	return t.current
}

// Pending reports whether a load is in flight.
func (t *Tracker) Pending() bool {
	return t.cancel != nil
}
