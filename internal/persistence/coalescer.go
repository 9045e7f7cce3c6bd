package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/redact"
)

// Source provides the snapshot that a write cycle persists.
type Source interface {
	List() []domain.Task
}

// Sink durably stores a full snapshot of the task collection.
type Sink interface {
	Save(ctx context.Context, tasks []domain.Task) error
}

// Stats are cumulative counters describing coalescer activity.
type Stats struct {
	WritesStarted    uint64
	WritesFailed     uint64
	FlushesCoalesced uint64
}

// Coalescer drives the idle -> writing -> {idle | writing again} cycle.
//
// writeInFlight is true from the moment a write cycle starts until a cycle
// finishes with nothing pending. writePending records that a Flush arrived
// during the current write; it is consumed by starting exactly one more write.
type Coalescer struct {
	source Source
	sink   Sink
	logger *slog.Logger

	mu            sync.Mutex
	writeInFlight bool
	writePending  bool
	idle          chan struct{}
	stats         Stats
}

// NewCoalescer creates a Coalescer that snapshots source and writes to sink.
func NewCoalescer(source Source, sink Sink, logger *slog.Logger) *Coalescer {
	if source == nil || sink == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("source and sink cannot be nil for Coalescer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	idle := make(chan struct{})
	close(idle)

	return &Coalescer{
		source: source,
		sink:   sink,
		logger: logger.With(slog.String("component", "persistence_coalescer")),
		idle:   idle,
	}
}

// Flush requests that the current task collection be persisted.
//
// If no write is running, Flush performs one write cycle on the calling
// goroutine and returns when it completes. If a write is already running,
// Flush only marks a follow-up write as pending and returns immediately.
// Write failures are logged and never reported to the caller.
func (c *Coalescer) Flush(ctx context.Context) {
	c.mu.Lock()
	if c.writeInFlight {
		c.writePending = true
		c.stats.FlushesCoalesced++
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "write in flight, flush coalesced")
		return
	}
	c.writeInFlight = true
	c.idle = make(chan struct{})
	c.mu.Unlock()

	// The write outlives the request that triggered it.
	ctx = context.WithoutCancel(ctx)

	c.write(ctx)
	if c.finishCycle() {
		go c.drain(ctx)
	}
}

// Wait blocks until no write is in flight or pending, or until ctx is done.
func (c *Coalescer) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a copy of the coalescer counters.
func (c *Coalescer) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// drain keeps writing while flushes keep arriving during each write.
func (c *Coalescer) drain(ctx context.Context) {
	for {
		c.write(ctx)
		if !c.finishCycle() {
			return
		}
	}
}

// write persists one snapshot taken at the start of the cycle.
// A panicking sink counts as a failed write so the cycle can still finish.
func (c *Coalescer) write(ctx context.Context) {
	snapshot := c.source.List()

	c.mu.Lock()
	c.stats.WritesStarted++
	c.mu.Unlock()

	if err := c.save(ctx, snapshot); err != nil {
		c.mu.Lock()
		c.stats.WritesFailed++
		c.mu.Unlock()

		c.logger.ErrorContext(ctx, "failed to persist tasks",
			slog.String("error", redact.Error(err)),
			slog.Int("task_count", len(snapshot)))
		return
	}

	c.logger.DebugContext(ctx, "tasks persisted", slog.Int("task_count", len(snapshot)))
}

func (c *Coalescer) save(ctx context.Context, snapshot []domain.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return c.sink.Save(ctx, snapshot)
}

// finishCycle ends a write cycle. It returns true if a flush arrived during
// the write, in which case the pending flag has been consumed and the caller
// must start another cycle; writeInFlight stays set across that hand-off.
func (c *Coalescer) finishCycle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writePending {
		c.writePending = false
		return true
	}

	c.writeInFlight = false
	close(c.idle)
	return false
}
