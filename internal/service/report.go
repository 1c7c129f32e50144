package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrReportNotFound is returned when the QoS report file does not exist
var ErrReportNotFound = errors.New("report not found")

// Report is an opened report file ready to be streamed
type Report struct {
	*os.File
	Name    string
	Size    int64
	ModTime time.Time
}

// ReportService serves the QoS report from a fixed path on disk
type ReportService struct {
	path string
}

// NewReportService creates a report service for the file at path
func NewReportService(path string) *ReportService {
	return &ReportService{path: path}
}

// Path returns the configured report path
func (s *ReportService) Path() string {
	return s.path
}

// Open opens the report. The caller must close it.
func (s *ReportService) Open() (*Report, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to open report: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat report: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrReportNotFound, s.path)
	}

	return &Report{
		File:    f,
		Name:    filepath.Base(s.path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
