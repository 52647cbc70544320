package graphstore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordFinalize is called after each finalize operation.
	// vertices/edges describe the input, duration is the total time taken,
	// err is nil if successful.
	RecordFinalize(vertices, edges int, duration time.Duration, err error)

	// RecordSave is called after each snapshot save.
	// bytes is the snapshot size on success.
	RecordSave(bytes int64, duration time.Duration, err error)

	// RecordLoad is called after each snapshot load.
	RecordLoad(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFinalize(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSave(int64, time.Duration, error)        {}
func (NoopMetricsCollector) RecordLoad(int64, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FinalizeCount      atomic.Int64
	FinalizeErrors     atomic.Int64
	FinalizeTotalNanos atomic.Int64
	FinalizedEdges     atomic.Int64

	SaveCount  atomic.Int64
	SaveErrors atomic.Int64
	SaveBytes  atomic.Int64

	LoadCount  atomic.Int64
	LoadErrors atomic.Int64
	LoadBytes  atomic.Int64
}

func (c *BasicMetricsCollector) RecordFinalize(vertices, edges int, duration time.Duration, err error) {
	c.FinalizeCount.Add(1)
	c.FinalizeTotalNanos.Add(int64(duration))
	if err != nil {
		c.FinalizeErrors.Add(1)
		return
	}
	c.FinalizedEdges.Add(int64(edges))
}

func (c *BasicMetricsCollector) RecordSave(bytes int64, duration time.Duration, err error) {
	c.SaveCount.Add(1)
	if err != nil {
		c.SaveErrors.Add(1)
		return
	}
	c.SaveBytes.Add(bytes)
}

func (c *BasicMetricsCollector) RecordLoad(bytes int64, duration time.Duration, err error) {
	c.LoadCount.Add(1)
	if err != nil {
		c.LoadErrors.Add(1)
		return
	}
	c.LoadBytes.Add(bytes)
}
