package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the cancel cause of a fetch replaced by a newer one under the same key
var ErrSuperseded = errors.New("superseded by a newer request")

// Tracker keeps at most one in-flight fetch per key. Starting a fetch cancels
// the one it replaces, and only the newest fetch may apply its result.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]*Ticket
}

// Ticket identifies one fetch registered with a Tracker
type Ticket struct {
	key     string
	cancel  context.CancelCauseFunc
	tracker *Tracker
}

// NewTracker creates a new Tracker
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]*Ticket)}
}

// Key builds the tracking key for a screen and client. An empty client
// yields an empty key, which is never superseded.
func Key(screen, clientID string) string {
	if clientID == "" {
		return ""
	}
	return screen + ":" + clientID
}

// Begin registers a fetch under key and returns the context it must run under.
// Any fetch previously registered under key is cancelled with ErrSuperseded.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancelCause(ctx)
	ticket := &Ticket{
		key:     key,
		cancel:  cancel,
		tracker: t,
	}
	if key == "" {
		return ctx, ticket
	}

	t.mu.Lock()
	if prev, ok := t.inflight[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	t.inflight[key] = ticket
	t.mu.Unlock()

	return ctx, ticket
}

// Done releases the ticket and reports whether it was still the newest fetch
// for its key, meaning its result may be applied.
func (tk *Ticket) Done() bool {
	defer tk.cancel(context.Canceled)

	if tk.key == "" {
		return true
	}

	t := tk.tracker
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.inflight[tk.key]; ok && current == tk {
		delete(t.inflight, tk.key)
		return true
	}
	return false
}

// InFlight returns the number of tracked fetches still running
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}

// IsSuperseded reports whether err or ctx's cancel cause is ErrSuperseded
func IsSuperseded(ctx context.Context, err error) bool {
	return errors.Is(err, ErrSuperseded) || errors.Is(context.Cause(ctx), ErrSuperseded)
}
