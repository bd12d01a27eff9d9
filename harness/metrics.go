package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// TickMetrics is one tick's exported row, following the teacher's
// telemetry.csv shape of one flat struct per sampled tick.
type TickMetrics struct {
	Tick       int64   `csv:"tick"`
	UnitCount  int     `csv:"unit_count"`
	Metal      float64 `csv:"metal"`
	Energy     float64 `csv:"energy"`
	TickMillis float64 `csv:"tick_millis"`
}

// MetricsWriter appends TickMetrics rows to a CSV file, writing the header
// only once, mirroring the teacher's OutputManager.WriteTelemetry split
// between a headered first write and headerless appends.
type MetricsWriter struct {
	file          *os.File
	headerWritten bool
}

// NewMetricsWriter creates metrics.csv under dir. A blank dir disables
// output entirely (nil, nil), matching the teacher's "empty dir means
// output disabled" convention.
func NewMetricsWriter(dir string) (*MetricsWriter, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("harness: creating metrics dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		return nil, fmt.Errorf("harness: creating metrics.csv: %w", err)
	}
	return &MetricsWriter{file: f}, nil
}

// Write appends one row, writing the CSV header on the first call.
func (w *MetricsWriter) Write(m TickMetrics) error {
	if w == nil {
		return nil
	}
	records := []TickMetrics{m}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("harness: writing metrics: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("harness: writing metrics: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *MetricsWriter) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}
