package core

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"restaurantcore/pkg/domain"
)

// SpanRecord is one finished operation span.
type SpanRecord struct {
	SpanID     string      `json:"span_id"`
	Operation  string      `json:"operation"`
	Status     AuditStatus `json:"status"`
	Blocked    []string    `json:"blocked_by,omitempty"`
	Error      string      `json:"error,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
	DurationMS float64     `json:"duration_ms"`
}

// JSONTracer writes finished spans as JSON lines and keeps them in memory.
// Spans failed by a rule violation list the blocking rule names.
type JSONTracer struct {
	mu    sync.Mutex
	spans []SpanRecord
	enc   *json.Encoder
	now   func() time.Time
}

// NewJSONTracer returns a tracer writing to w. A nil writer only retains spans.
func NewJSONTracer(w io.Writer) *JSONTracer {
	t := &JSONTracer{now: func() time.Time { return time.Now().UTC() }}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// Spans copies the finished spans in completion order.
func (t *JSONTracer) Spans() []SpanRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.spans)
}

// Start implements Tracer.
func (t *JSONTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonSpan{tracer: t, rec: SpanRecord{
		SpanID:    cuid.New(),
		Operation: operation,
		StartedAt: t.now(),
	}}
}

func (t *JSONTracer) finish(rec SpanRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = append(t.spans, rec)
	if t.enc != nil {
		_ = t.enc.Encode(rec)
	}
}

type jsonSpan struct {
	tracer *JSONTracer
	rec    SpanRecord
	once   sync.Once
}

func (s *jsonSpan) End(err error) {
	s.once.Do(func() {
		rec := s.rec
		rec.DurationMS = float64(s.tracer.now().Sub(rec.StartedAt)) / float64(time.Millisecond)
		rec.Status = statusOf(err == nil)
		if err != nil {
			rec.Error = err.Error()
			var blocked domain.RuleViolationError
			if errors.As(err, &blocked) {
				for _, v := range blocked.Result.Violations {
					if v.Severity == domain.SeverityBlock {
						rec.Blocked = append(rec.Blocked, v.Rule)
					}
				}
			}
		}
		s.tracer.finish(rec)
	})
}
