package storage

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for KV operations.
type Metrics struct {
	// OpsTotal counts KV operations by operation and result.
	OpsTotal *prometheus.CounterVec
	// OpDuration records KV operation latency in seconds.
	OpDuration *prometheus.HistogramVec
}

// NewMetrics creates the KV collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer. Collectors that are already
// registered are reused.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		OpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "kv_operations_total",
			Help:      "Count of key-value store operations by outcome.",
		}, []string{"op", "result"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "kv_operation_duration_seconds",
			Help:      "Latency of key-value store operations.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"op"}),
	}

	if err := reg.Register(m.OpsTotal); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				m.OpsTotal = existing
			}
		}
	}
	if err := reg.Register(m.OpDuration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				m.OpDuration = existing
			}
		}
	}
	return m
}

// InstrumentKV wraps kv so every operation is counted and timed. The
// wrapper is an AtomicKV exactly when kv is one.
func InstrumentKV(kv KV, m *Metrics) KV {
	if m == nil {
		return kv
	}
	wrapped := &instrumentedKV{next: kv, m: m}
	if akv, ok := kv.(AtomicKV); ok {
		return &instrumentedAtomicKV{instrumentedKV: wrapped, atomic: akv}
	}
	return wrapped
}

type instrumentedKV struct {
	next KV
	m    *Metrics
}

func (k *instrumentedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, found, err := k.next.Get(ctx, key)
	result := "hit"
	if !found {
		result = "miss"
	}
	k.observe("get", start, err, result)
	return value, found, err
}

func (k *instrumentedKV) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := k.next.Set(ctx, key, value)
	k.observe("set", start, err, "ok")
	return err
}

func (k *instrumentedKV) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := k.next.Remove(ctx, key)
	k.observe("remove", start, err, "ok")
	return err
}

func (k *instrumentedKV) Close() error {
	return k.next.Close()
}

type instrumentedAtomicKV struct {
	*instrumentedKV
	atomic AtomicKV
}

func (k *instrumentedAtomicKV) Modify(ctx context.Context, key string, fn ModifyFunc) error {
	start := time.Now()
	err := k.atomic.Modify(ctx, key, fn)
	k.observe("modify", start, err, "ok")
	return err
}

func (k *instrumentedKV) observe(op string, start time.Time, err error, result string) {
	if err != nil {
		result = "error"
	}
	k.m.OpsTotal.WithLabelValues(op, result).Inc()
	k.m.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
