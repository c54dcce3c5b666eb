package writer

import (
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Format selects the file format of a SeriesWriter.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// SeriesWriter persists series in long format: one row per (time, instrument, series, value).
type SeriesWriter interface {
	// Initialize sets up the writer, creating tables or buffers.
	Initialize() error
	// Write appends every observation of series under instrument.
	Write(instrument types.InstrumentKey, series types.Series) error
	// Finalize flushes everything to the output file and returns its path.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// NewSeriesWriter creates a writer for format writing to outputPath.
func NewSeriesWriter(format Format, outputPath string) (SeriesWriter, error) {
	switch format {
	case FormatCSV:
		return NewCSVSeriesWriter(outputPath), nil
	case FormatParquet:
		return NewParquetSeriesWriter(outputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported output format %q", format)
	}
}
