package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq atomic.Uint64

// OperationStats aggregates every observation of one operation.
type OperationStats struct {
	Succeeded int64   `json:"succeeded"`
	Failed    int64   `json:"failed"`
	TotalMS   float64 `json:"total_ms"`
	MaxMS     float64 `json:"max_ms"`
}

// Calls is the number of observations.
func (s OperationStats) Calls() int64 { return s.Succeeded + s.Failed }

// MeanMS is the average latency, zero before the first call.
func (s OperationStats) MeanMS() float64 {
	if n := s.Calls(); n > 0 {
		return s.TotalMS / float64(n)
	}
	return 0
}

// operationVar is the expvar form of one operation's stats.
type operationVar struct {
	mu    sync.Mutex
	stats OperationStats
}

func (v *operationVar) observe(success bool, ms float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if success {
		v.stats.Succeeded++
	} else {
		v.stats.Failed++
	}
	v.stats.TotalMS += ms
	v.stats.MaxMS = max(v.stats.MaxMS, ms)
}

func (v *operationVar) load() OperationStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// String implements expvar.Var.
func (v *operationVar) String() string {
	data, err := json.Marshal(v.load())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ExpvarMetricsRecorder publishes an expvar.Map keyed by operation name; each
// value is the JSON form of OperationStats.
type ExpvarMetricsRecorder struct {
	name string
	ops  *expvar.Map
	mu   sync.Mutex
}

// NewExpvarMetricsRecorder publishes the recorder under name, or under a
// generated name when empty. Reusing a published name panics.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("restaurantcore_operations_%d", expvarSeq.Add(1))
	}
	return &ExpvarMetricsRecorder{name: name, ops: expvar.NewMap(name)}
}

// Name returns the expvar export name.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.varFor(operation).observe(success, float64(duration)/float64(time.Millisecond))
}

func (r *ExpvarMetricsRecorder) varFor(operation string) *operationVar {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.ops.Get(operation).(*operationVar); ok {
		return v
	}
	v := &operationVar{}
	r.ops.Set(operation, v)
	return v
}

// Stats returns the stats of one operation.
func (r *ExpvarMetricsRecorder) Stats(operation string) (OperationStats, bool) {
	v, ok := r.ops.Get(operation).(*operationVar)
	if !ok {
		return OperationStats{}, false
	}
	return v.load(), true
}

// Snapshot copies the stats of every observed operation.
func (r *ExpvarMetricsRecorder) Snapshot() map[string]OperationStats {
	out := make(map[string]OperationStats)
	r.ops.Do(func(kv expvar.KeyValue) {
		if v, ok := kv.Value.(*operationVar); ok {
			out[kv.Key] = v.load()
		}
	})
	return out
}
