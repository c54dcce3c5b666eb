package writer

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// ParquetSeriesWriter stages rows in an in-memory DuckDB table and exports them to parquet.
type ParquetSeriesWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewParquetSeriesWriter creates a parquet writer for outputPath.
func NewParquetSeriesWriter(outputPath string) *ParquetSeriesWriter {
	return &ParquetSeriesWriter{
		outputPath: outputPath,
	}
}

// Initialize implements SeriesWriter.
func (w *ParquetSeriesWriter) Initialize() (err error) {
	if err = os.MkdirAll(filepath.Dir(w.outputPath), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create output directory", err)
	}

	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS series_data (
			time TIMESTAMP,
			instrument TEXT,
			series TEXT,
			value DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`INSERT INTO series_data (time, instrument, series, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write implements SeriesWriter. Undefined values are stored as NULL.
func (w *ParquetSeriesWriter) Write(instrument types.InstrumentKey, series types.Series) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	for i, t := range series.Index {
		var value sql.NullFloat64
		if v := series.Values[i]; !math.IsNaN(v) {
			value = sql.NullFloat64{Float64: v, Valid: true}
		}

		if _, err := w.stmt.Exec(t, string(instrument), series.Name, value); err != nil {
			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to insert %s of %s", series.Name, instrument)
		}
	}

	return nil
}

// Finalize implements SeriesWriter.
func (w *ParquetSeriesWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	if err := w.stmt.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to close statement", err)
	}

	w.stmt = nil

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	query := fmt.Sprintf(`COPY (SELECT * FROM series_data ORDER BY instrument, series, time) TO '%s' (FORMAT PARQUET)`,
		strings.ReplaceAll(w.outputPath, "'", "''"))
	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to export to parquet", err)
	}

	return w.outputPath, nil
}

// Close implements SeriesWriter.
func (w *ParquetSeriesWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.Newf(errors.ErrCodeWriteFailed, "errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}

// GetOutputPath implements SeriesWriter.
func (w *ParquetSeriesWriter) GetOutputPath() string {
	return w.outputPath
}
