// Package audit records who changed which content entity.
//
// Services hand entries to a Recorder, which delivers them to a Sink on a
// background worker. Recording never blocks or fails the calling request.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/metrics"
)

// Action is the kind of mutation being audited.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one audited mutation.
type Entry struct {
	ID         string         `json:"id"`
	UserID     *string        `json:"userId,omitempty"`
	ActionType Action         `json:"actionType"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	OldValues  map[string]any `json:"oldValues,omitempty"`
	NewValues  map[string]any `json:"newValues,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Sink persists audit entries.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// Recorder accepts entries from request handlers.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// LogSink writes each entry as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a LogSink writing to logger, or slog.Default when nil.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Record implements Sink.
func (s *LogSink) Record(ctx context.Context, entry Entry) error {
	s.logger.InfoContext(ctx, "audit",
		slog.String("audit_id", entry.ID),
		slog.Any("user_id", entry.UserID),
		slog.String("action", string(entry.ActionType)),
		slog.String("entity_type", entry.EntityType),
		slog.String("entity_id", entry.EntityID),
		slog.Any("old_values", entry.OldValues),
		slog.Any("new_values", entry.NewValues),
	)
	return nil
}

type queued struct {
	ctx   context.Context
	entry Entry
}

// AsyncRecorder buffers entries and delivers them to a Sink on one worker goroutine.
// Entries are dropped when the buffer is full or the recorder is closed.
type AsyncRecorder struct {
	sink      Sink
	buffer    chan queued
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewAsyncRecorder starts a recorder with the given buffer size (default 256).
func NewAsyncRecorder(sink Sink, bufferSize int) *AsyncRecorder {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	r := &AsyncRecorder{
		sink:   sink,
		buffer: make(chan queued, bufferSize),
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// Record enqueues entry without blocking. ID, CreatedAt and UserID are filled
// in when empty; UserID comes from the principal in ctx.
func (r *AsyncRecorder) Record(ctx context.Context, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.UserID == nil {
		entry.UserID = domain.ActorID(ctx)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		metrics.AuditDroppedTotal.Inc()
		return
	}
	select {
	case r.buffer <- queued{ctx: context.WithoutCancel(ctx), entry: entry}:
	default:
		metrics.AuditDroppedTotal.Inc()
	}
}

// Close stops accepting entries and waits until the buffered ones are delivered.
func (r *AsyncRecorder) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.buffer)
		r.mu.Unlock()
		r.wg.Wait()
	})
	return nil
}

func (r *AsyncRecorder) worker() {
	defer r.wg.Done()
	for q := range r.buffer {
		if err := r.sink.Record(q.ctx, q.entry); err != nil {
			metrics.AuditDroppedTotal.Inc()
			slog.WarnContext(q.ctx, "audit sink failed",
				slog.String("entity_type", q.entry.EntityType),
				slog.String("entity_id", q.entry.EntityID),
				slog.Any("error", err),
			)
		}
	}
}

// Nop discards every entry.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Entry) {}

// Snapshot converts v into a generic map through its JSON form, so audit
// values carry the same field names as API responses. Values that do not
// encode to a JSON object yield nil.
func Snapshot(v any) map[string]any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// Mutation records an admin change of one entity and counts it in the
// content mutation metrics. before and after may be nil.
func Mutation(ctx context.Context, rec Recorder, action Action, entityType, entityID string, before, after any) {
	rec.Record(ctx, Entry{
		ActionType: action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  Snapshot(before),
		NewValues:  Snapshot(after),
	})
	metrics.RecordMutation(entityType, string(action))
}
