// Package research assembles the carry research system from a configuration and exports
// its series.
package research

import (
	"context"

	"github.com/rxtech-lab/argo-research/internal/datasource"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/system"
	"github.com/rxtech-lab/argo-research/internal/system/stages/carryfit"
	"github.com/rxtech-lab/argo-research/internal/system/stages/rawdata"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/internal/writer"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// OpenDataSource opens the data source named by config. Resolution tables missing on disk
// are derived from the native bars.
func OpenDataSource(config system.Config, log *logger.Logger) (datasource.DataSource, error) {
	var (
		source datasource.DataSource
		err    error
	)

	switch config.DataSourceType {
	case system.DataSourceCSV:
		source, err = datasource.NewCSVDataSource(config.DataPath, log)
	case system.DataSourceDuckDB:
		source, err = datasource.NewDuckDBDataSource(config.DataPath, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported data source %q", config.DataSourceType)
	}

	if err != nil {
		return nil, err
	}

	return datasource.NewResamplingDataSource(source, log), nil
}

// CarrySystem is a System with the rawdata and carryfit stages attached.
type CarrySystem struct {
	*system.System
	Raw *rawdata.FuturesRawData
	Fit *carryfit.CarryFit
}

// NewCarrySystem builds the carry system on top of data.
func NewCarrySystem(data datasource.DataSource, config system.Config, log *logger.Logger) (*CarrySystem, error) {
	raw := rawdata.New()
	fit := carryfit.New()

	sys, err := system.NewSystem(data, config, log, raw, fit)
	if err != nil {
		return nil, err
	}

	return &CarrySystem{System: sys, Raw: raw, Fit: fit}, nil
}

// RollSeries returns the roll analytics of one instrument in export order.
func (c *CarrySystem) RollSeries(ctx context.Context, instrument types.InstrumentKey) ([]types.Series, error) {
	accessors := []struct {
		name string
		get  func(context.Context, types.InstrumentKey) (types.Series, error)
	}{
		{string(rawdata.ComputationRawFuturesRoll), c.Raw.RawFuturesRoll},
		{string(rawdata.ComputationRollDifferentials), c.Raw.RollDifferentials},
		{string(rawdata.ComputationAnnualisedRoll), c.Raw.AnnualisedRoll},
		{string(rawdata.ComputationDailyAnnualisedRoll), c.Raw.DailyAnnualisedRoll},
		{string(rawdata.ComputationDailyDenominatorPrice), c.Raw.DailyDenominatorPrice},
	}

	out := make([]types.Series, 0, len(accessors))

	for _, accessor := range accessors {
		series, err := accessor.get(ctx, instrument)
		if err != nil {
			return nil, err
		}

		out = append(out, series.Rename(accessor.name))
	}

	return out, nil
}

// ForecastSeries returns the daily annualised roll and the carry forecast of one instrument.
func (c *CarrySystem) ForecastSeries(ctx context.Context, instrument types.InstrumentKey) ([]types.Series, error) {
	roll, err := c.Raw.DailyAnnualisedRoll(ctx, instrument)
	if err != nil {
		return nil, err
	}

	forecast, err := c.Fit.CarryForecast(ctx, instrument)
	if err != nil {
		return nil, err
	}

	return []types.Series{
		roll.Rename(string(rawdata.ComputationDailyAnnualisedRoll)),
		forecast.Rename(string(carryfit.ComputationCarryForecast)),
	}, nil
}

// SeriesFunc produces the series exported for one instrument.
type SeriesFunc func(ctx context.Context, instrument types.InstrumentKey) ([]types.Series, error)

// Export writes the series of every instrument to w and returns the output path.
// Instruments without data are skipped with a warning; any other failure aborts the export.
// progress, when set, is called once per instrument.
func Export(
	ctx context.Context,
	log *logger.Logger,
	instruments []types.InstrumentKey,
	produce SeriesFunc,
	w writer.SeriesWriter,
	progress func(),
) (string, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if err := w.Initialize(); err != nil {
		return "", err
	}
	defer w.Close()

	for _, instrument := range instruments {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		series, err := produce(ctx, instrument)

		switch {
		case errors.HasCode(err, errors.ErrCodeDataNotFound):
			log.Warn("Skipping instrument without data", zap.String("instrument", string(instrument)), zap.Error(err))
		case err != nil:
			return "", errors.Wrapf(errors.ErrCodeComputationFailed, err, "failed to compute %s", instrument)
		default:
			for _, s := range series {
				if err := w.Write(instrument, s); err != nil {
					return "", err
				}
			}
		}

		if progress != nil {
			progress()
		}
	}

	return w.Finalize()
}
