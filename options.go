package graphstore

import (
	"github.com/hupe1980/graphstore/codec"
	"github.com/hupe1980/graphstore/persistence"
)

type options struct {
	codec       codec.Codec
	compression persistence.CompressionType
	parallelism int
	metrics     MetricsCollector
	logger      *Logger
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: persistence.CompressionNone,
		parallelism: 1,
		metrics:     NoopMetricsCollector{},
		logger:      NoopLogger(),
	}
}

// Option configures storage construction behavior.
type Option func(*options)

// WithCodec configures the codec used for encoding edge payloads in
// snapshots.
//
// If nil is passed, codec.Default is used. Snapshots record the codec name
// in their header, so loads select the codec from the file, not from this
// option.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures block compression for snapshot bodies.
//
// The default is no compression. LZ4 favors speed; ZSTD favors ratio.
// Loads read the compression type from the file header, so storages with
// different settings can still exchange snapshots.
func WithCompression(ct persistence.CompressionType) Option {
	return func(o *options) {
		o.compression = ct
	}
}

// WithParallelism sets the number of worker goroutines used by the counting
// passes of Finalize. Values <= 1 select the sequential path. The finalized
// result is identical regardless of this setting.
func WithParallelism(workers int) Option {
	return func(o *options) {
		if workers < 1 {
			workers = 1
		}
		o.parallelism = workers
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// finalize and snapshot operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
