package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flock/config"
)

// CSVFile appends records of one type to a CSV file, writing the header
// with the first record.
type CSVFile[T any] struct {
	name          string
	f             *os.File
	headerWritten bool
}

// CreateCSV creates (or truncates) path for records of type T.
func CreateCSV[T any](path string) (*CSVFile[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &CSVFile[T]{name: filepath.Base(path), f: f}, nil
}

// Write appends one record.
func (c *CSVFile[T]) Write(rec T) error {
	records := []T{rec}
	var err error
	if !c.headerWritten {
		// First write includes headers
		err = gocsv.Marshal(records, c.f)
		c.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, c.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// Close closes the underlying file.
func (c *CSVFile[T]) Close() error {
	if c == nil || c.f == nil {
		return nil
	}
	return c.f.Close()
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *CSVFile[WindowStats]
	perf      *CSVFile[PerfStatsCSV]
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	var err error
	om.telemetry, err = CreateCSV[WindowStats](filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, err
	}
	om.perf, err = CreateCSV[PerfStatsCSV](filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.telemetry.Close()
		return nil, err
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.Write(stats)
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	return om.perf.Write(stats.ToCSV(windowEnd))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if err := om.telemetry.Close(); err != nil {
		firstErr = err
	}
	if err := om.perf.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
