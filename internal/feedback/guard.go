package feedback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const (
	// QueueSize bounds the cues waiting for a slow sink. Further cues are
	// dropped until it catches up.
	QueueSize = 16

	// CueTimeout bounds each delivery through the sink's context, and how long
	// Close waits for queued cues.
	CueTimeout = 2 * time.Second
)

type queuedCue struct {
	ctx context.Context
	cue Cue
}

// Guard delivers cues to a sink on its own goroutine, so a sink that fails,
// panics or stalls never reaches the caller. Notify never blocks.
type Guard struct {
	sink   Sink
	logger *log.Logger
	clock  quartz.Clock

	queue  chan queuedCue
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewGuard starts a Guard around sink. A nil sink discards cues and a nil
// clock uses real time. Close stops it.
func NewGuard(sink Sink, logger *log.Logger, clock quartz.Clock) *Guard {
	if sink == nil {
		sink = Discard
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	g := &Guard{
		sink:   sink,
		logger: logger,
		clock:  clock,
		queue:  make(chan queuedCue, QueueSize),
		done:   make(chan struct{}),
	}
	go g.run()
	return g
}

// Notify queues cue for delivery and returns immediately. The cue is dropped
// if the queue is full or the guard is closed. Cancelling ctx does not
// cancel a queued cue.
func (g *Guard) Notify(ctx context.Context, cue Cue) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	select {
	case g.queue <- queuedCue{ctx: context.WithoutCancel(ctx), cue: cue}:
	default:
		g.logger.Debug("Feedback queue full, cue dropped", "kind", cue.Kind, "label", cue.Label)
	}
}

// Close stops accepting cues and waits up to CueTimeout for queued ones to
// be delivered. It is safe to call more than once.
func (g *Guard) Close() {
	g.mu.Lock()
	if !g.closed {
		g.closed = true
		close(g.queue)
	}
	g.mu.Unlock()

	t := g.clock.NewTimer(CueTimeout, "feedback", "close")
	defer t.Stop()
	select {
	case <-g.done:
	case <-t.C:
		g.logger.Debug("Feedback sink still busy, giving up")
	}
}

func (g *Guard) run() {
	defer close(g.done)
	for q := range g.queue {
		ctx, cancel := context.WithTimeout(q.ctx, CueTimeout)
		err := g.deliver(ctx, q.cue)
		cancel()
		if err != nil {
			g.logger.Debug("Feedback cue dropped", "kind", q.cue.Kind, "label", q.cue.Label, "error", err)
		}
	}
}

func (g *Guard) deliver(ctx context.Context, cue Cue) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("feedback sink panicked: %v", r)
		}
	}()
	return g.sink.Cue(ctx, cue)
}
