package writer

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// seriesRow is one line of the csv output. Undefined values are written as empty cells.
type seriesRow struct {
	Time       string `csv:"DATETIME"`
	Instrument string `csv:"INSTRUMENT"`
	Series     string `csv:"SERIES"`
	Value      string `csv:"VALUE"`
}

// CSVSeriesWriter buffers rows and writes them with gocsv on Finalize.
type CSVSeriesWriter struct {
	outputPath  string
	rows        []*seriesRow
	initialized bool
}

// NewCSVSeriesWriter creates a csv writer for outputPath.
func NewCSVSeriesWriter(outputPath string) *CSVSeriesWriter {
	return &CSVSeriesWriter{
		outputPath: outputPath,
	}
}

// Initialize implements SeriesWriter.
func (w *CSVSeriesWriter) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create output directory", err)
	}

	w.rows = w.rows[:0]
	w.initialized = true

	return nil
}

// Write implements SeriesWriter.
func (w *CSVSeriesWriter) Write(instrument types.InstrumentKey, series types.Series) error {
	if !w.initialized {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	for i, t := range series.Index {
		value := ""
		if v := series.Values[i]; !math.IsNaN(v) {
			value = strconv.FormatFloat(v, 'g', -1, 64)
		}

		w.rows = append(w.rows, &seriesRow{
			Time:       t.Format(time.RFC3339),
			Instrument: string(instrument),
			Series:     series.Name,
			Value:      value,
		})
	}

	return nil
}

// Finalize implements SeriesWriter.
func (w *CSVSeriesWriter) Finalize() (string, error) {
	if !w.initialized {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	file, err := os.Create(w.outputPath)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", w.outputPath)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&w.rows, file); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close implements SeriesWriter.
func (w *CSVSeriesWriter) Close() error {
	w.rows = nil
	w.initialized = false

	return nil
}

// GetOutputPath implements SeriesWriter.
func (w *CSVSeriesWriter) GetOutputPath() string {
	return w.outputPath
}
