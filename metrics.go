package vecbin

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordConvert is called after each conversion. err is nil on success;
	// res is only meaningful then.
	RecordConvert(res Result, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordConvert(Result, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Safe for concurrent use.
type BasicMetricsCollector struct {
	ConvertCount     atomic.Int64
	ConvertErrors    atomic.Int64
	ValidationErrors atomic.Int64
	VectorsWritten   atomic.Int64
	BytesWritten     atomic.Int64
	TotalNanos       atomic.Int64
}

// RecordConvert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConvert(res Result, err error) {
	b.ConvertCount.Add(1)
	if err != nil {
		b.ConvertErrors.Add(1)
		if IsValidation(err) {
			b.ValidationErrors.Add(1)
		}
		return
	}
	b.VectorsWritten.Add(int64(res.Count))
	b.BytesWritten.Add(int64(res.Written))
	b.TotalNanos.Add(res.Duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ConvertCount:     b.ConvertCount.Load(),
		ConvertErrors:    b.ConvertErrors.Load(),
		ValidationErrors: b.ValidationErrors.Load(),
		VectorsWritten:   b.VectorsWritten.Load(),
		BytesWritten:     b.BytesWritten.Load(),
		AvgDuration:      b.avgDuration(),
	}
}

func (b *BasicMetricsCollector) avgDuration() time.Duration {
	ok := b.ConvertCount.Load() - b.ConvertErrors.Load()
	if ok <= 0 {
		return 0
	}
	return time.Duration(b.TotalNanos.Load() / ok)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ConvertCount     int64
	ConvertErrors    int64
	ValidationErrors int64
	VectorsWritten   int64
	BytesWritten     int64
	AvgDuration      time.Duration
}
