package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/veil/config"
)

// Output file names inside the run directory.
const (
	WindowsFile = "telemetry.csv"
	PerfFile    = "perf.csv"
	ConfigFile  = "config.yaml"
)

// csvSink appends rows of one record type to a CSV file. The file is
// created on the first row so runs that never flush leave no empty files.
type csvSink[T any] struct {
	path   string
	file   *os.File
	header bool
}

func (s *csvSink[T]) append(row T) error {
	if s.file == nil {
		f, err := os.Create(s.path)
		if err != nil {
			return err
		}
		s.file = f
	}

	rows := []T{row}
	var err error
	if !s.header {
		err = gocsv.Marshal(rows, s.file)
		s.header = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, s.file)
	}
	if err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *csvSink[T]) close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// OutputManager writes one row per stats window to the run directory,
// alongside a snapshot of the config the run started with.
// A nil manager discards everything.
type OutputManager struct {
	dir     string
	windows csvSink[WindowStats]
	perf    csvSink[PerfStatsCSV]
}

// NewOutputManager prepares dir. It returns nil when dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{
		dir:     dir,
		windows: csvSink[WindowStats]{path: filepath.Join(dir, WindowsFile)},
		perf:    csvSink[PerfStatsCSV]{path: filepath.Join(dir, PerfFile)},
	}, nil
}

// WriteConfig snapshots cfg as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteWindow appends a flushed window and the perf summary covering it.
// Both rows are keyed by the window's end tick.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfStats) error {
	if om == nil {
		return nil
	}
	if err := om.windows.append(stats); err != nil {
		return fmt.Errorf("writing %s: %w", WindowsFile, err)
	}
	if err := om.perf.append(perf.ToCSV(stats.WindowEndTick)); err != nil {
		return fmt.Errorf("writing %s: %w", PerfFile, err)
	}
	return nil
}

// Dir returns the output directory, or "" when disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes any open CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.windows.close(), om.perf.close())
}
