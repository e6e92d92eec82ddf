package vecbin

import (
	"log/slog"

	"github.com/hupe1980/vecbin/codec"
	"github.com/hupe1980/vecbin/persistence"
)

type options struct {
	codec            codec.Codec
	jsonc            bool
	compression      persistence.Compression
	verify           bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Converter.
type Option func(*options)

// WithCodec configures the JSON codec used to decode input.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithJSONC accepts // and /* */ comments and trailing commas in the input.
func WithJSONC(enabled bool) Option {
	return func(o *options) {
		o.jsonc = enabled
	}
}

// WithCompression wraps the output in an LZ4 or zstd frame.
//
// The default, persistence.CompressionNone, writes the raw layout that
// native readers expect.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithVerify reads the destination back after writing and compares the
// CRC32 of the stored bytes with what was written. The destination store
// must be readable; a StreamStore would read its input side instead.
func WithVerify(enabled bool) Option {
	return func(o *options) {
		o.verify = enabled
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecbin.BasicMetricsCollector{}
//	conv := vecbin.New(vecbin.WithMetricsCollector(metrics))
//	// ... convert ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vecbin.NewJSONLogger(slog.LevelInfo)
//	conv := vecbin.New(vecbin.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      persistence.CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.jsonc {
		o.codec = codec.JSONC{Codec: o.codec}
	}
	return o
}
