// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/carehome-io/carehome/internal/audit"

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	// QueueSize selects the mode. Zero writes synchronously; a positive
	// value buffers that many entries for a single background writer.
	QueueSize int
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Meter records recorder metrics; defaults to the global provider.
	Meter metric.Meter
}

// Recorder redacts events and appends them to a Store. Record never fails;
// sink errors are logged and counted instead.
type Recorder struct {
	logger *slog.Logger
	store  Store
	now    func() time.Time

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy

	queue  chan Entry
	done   chan struct{}
	mu     sync.RWMutex
	closed bool

	recorded metric.Int64Counter
	failures metric.Int64Counter
	dropped  metric.Int64Counter
}

// NewRecorder creates a Recorder and, in asynchronous mode, starts its
// writer goroutine.
func NewRecorder(
	logger *slog.Logger,
	store Store,
	opts RecorderOptions,
) *Recorder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Meter == nil {
		opts.Meter = otel.Meter(meterName)
	}

	r := &Recorder{
		logger:  logger.With(slog.String("component", "audit")),
		store:   store,
		now:     opts.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	r.initMetrics(opts.Meter)

	if opts.QueueSize > 0 {
		r.queue = make(chan Entry, opts.QueueSize)
		r.done = make(chan struct{})
		go r.run()
	}

	return r
}

func (r *Recorder) initMetrics(
	meter metric.Meter,
) {
	var err error

	r.recorded, err = meter.Int64Counter("audit.events.recorded",
		metric.WithDescription("Audit entries written to the sink"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		r.logger.Warn("failed to create audit metric", slog.String("error", err.Error()))
	}

	r.failures, err = meter.Int64Counter("audit.write.failures",
		metric.WithDescription("Audit entries the sink failed to persist"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		r.logger.Warn("failed to create audit metric", slog.String("error", err.Error()))
	}

	r.dropped, err = meter.Int64Counter("audit.events.dropped",
		metric.WithDescription("Audit entries dropped because the queue was full"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		r.logger.Warn("failed to create audit metric", slog.String("error", err.Error()))
	}
}

// Record redacts the event and appends it. The write is detached from ctx
// cancellation so an aborted request still leaves its record.
func (r *Recorder) Record(
	ctx context.Context,
	ev Event,
) {
	entry := r.entryFor(ev)
	ctx = context.WithoutCancel(ctx)

	if r.queue == nil {
		r.write(ctx, entry)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Error(
			"audit recorder closed, dropping entry",
			slog.String("entry_id", entry.ID),
			slog.String("action", entry.Action),
		)
		r.count(ctx, r.dropped, entry)
		return
	}

	select {
	case r.queue <- entry:
	default:
		r.logger.Error(
			"audit queue full, dropping entry",
			slog.String("entry_id", entry.ID),
			slog.String("action", entry.Action),
			slog.String("actor_id", entry.ActorID),
		)
		r.count(ctx, r.dropped, entry)
	}
}

// Close stops accepting entries and waits for the queue to drain or ctx to
// end. It is a no-op in synchronous mode.
func (r *Recorder) Close(
	ctx context.Context,
) error {
	if r.queue == nil {
		return nil
	}

	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain audit queue: %w", ctx.Err())
	}
}

// Ping reports whether the underlying sink is reachable.
func (r *Recorder) Ping(
	ctx context.Context,
) error {
	return r.store.Ping(ctx)
}

func (r *Recorder) run() {
	defer close(r.done)

	for entry := range r.queue {
		r.write(context.Background(), entry)
	}
}

func (r *Recorder) write(
	ctx context.Context,
	entry Entry,
) {
	if err := r.store.Write(ctx, entry); err != nil {
		r.logger.Warn(
			"failed to write audit entry",
			slog.String("entry_id", entry.ID),
			slog.String("action", entry.Action),
			slog.String("error", err.Error()),
		)
		r.count(ctx, r.failures, entry)
		return
	}

	r.count(ctx, r.recorded, entry)
}

func (r *Recorder) count(
	ctx context.Context,
	counter metric.Int64Counter,
	entry Entry,
) {
	if counter == nil {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", string(entry.Category)),
		attribute.String("outcome", string(entry.Outcome)),
	))
}

func (r *Recorder) entryFor(
	ev Event,
) Entry {
	now := r.now().UTC()

	outcome := ev.Outcome
	if outcome == "" {
		outcome = OutcomeUnknown
	}

	return Entry{
		ID:              r.newID(now),
		Timestamp:       now,
		ActorID:         ev.ActorID,
		ActorRole:       ev.ActorRole,
		TenantID:        ev.TenantID,
		Action:          ev.Action,
		TargetType:      ev.TargetType,
		TargetID:        ev.TargetID,
		Outcome:         outcome,
		ReasonCode:      ev.Reason,
		Category:        ev.Category,
		RetentionClass:  RetentionFor(ev.Category),
		RequestID:       ev.RequestID,
		SourceIP:        ev.SourceIP,
		RedactedDetails: Redact(ev.Details),
	}
}

func (r *Recorder) newID(
	now time.Time,
) string {
	r.entropyMu.Lock()
	defer r.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(now), r.entropy).String()
}
