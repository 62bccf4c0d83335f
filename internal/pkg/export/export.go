package export

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ConfigurationError reports a format with no registered exporter.
type ConfigurationError struct {
	Format string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Export format %q is not supported.", e.Format)
}

// InputError reports missing data handed to an exporter.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

type Exporter interface {
	Export(rows []Row) ([]byte, error)
	ContentType() string
	Extension() string
}

// Registry dispatches rows to the exporter registered for a format.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

func NewRegistry(exporters map[string]Exporter) *Registry {
	r := &Registry{exporters: make(map[string]Exporter, len(exporters))}
	for format, e := range exporters {
		r.exporters[format] = e
	}
	return r
}

// NewDefaultRegistry registers the csv and xlsx exporters.
func NewDefaultRegistry() *Registry {
	return NewRegistry(map[string]Exporter{
		FormatCSV:  NewCSVExporter(),
		FormatXLSX: NewXLSXExporter(),
	})
}

func (r *Registry) Register(format string, e Exporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[format] = e
}

func (r *Registry) Lookup(format string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exporters[format]
	if !ok {
		return nil, &ConfigurationError{Format: format}
	}
	return e, nil
}

func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

func (r *Registry) Export(format string, rows ...Row) ([]byte, error) {
	e, err := r.Lookup(format)
	if err != nil {
		return nil, err
	}
	return e.Export(rows)
}

// Filename builds "<prefix>_<employeeID>_<YYYY-MM-DD>.<ext>" using now's calendar date.
func Filename(prefix, employeeID, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, employeeID, now.Format("2006-01-02"), ext)
}
