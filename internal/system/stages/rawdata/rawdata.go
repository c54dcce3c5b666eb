// Package rawdata implements the futures raw data stage: the carry table of every
// instrument, the roll analytics derived from it and pass-through access to price
// tables at every resolution.
//
// KEY INPUT: DataSource.InstrumentRawCarryData
// KEY OUTPUT: FuturesRawData.DailyAnnualisedRoll
package rawdata

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/dates"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/system"
	"github.com/rxtech-lab/argo-research/internal/system/cache"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// StageName is the name the stage registers under.
const StageName cache.StageName = "rawdata"

const (
	ComputationInstrumentRawCarryData cache.ComputationName = "instrument_raw_carry_data"
	ComputationRawFuturesRoll         cache.ComputationName = "raw_futures_roll"
	ComputationRollDifferentials      cache.ComputationName = "roll_differentials"
	ComputationAnnualisedRoll         cache.ComputationName = "annualised_roll"
	ComputationDailyAnnualisedRoll    cache.ComputationName = "daily_annualised_roll"
	ComputationDailyDenominatorPrice  cache.ComputationName = "daily_denominator_price"
	ComputationRawData                cache.ComputationName = "raw_data_prices"
	ComputationRawClose               cache.ComputationName = "raw_close_prices"
	ComputationRawDailyPrices         cache.ComputationName = "raw_daily_close_prices"
	ComputationDailyData              cache.ComputationName = "daily_data_prices"
	Computation30MinData              cache.ComputationName = "30min_data_prices"
	Computation45MinData              cache.ComputationName = "45min_data_prices"
	Computation60MinData              cache.ComputationName = "60min_data_prices"
	Computation90MinData              cache.ComputationName = "90min_data_prices"
	Computation120MinData             cache.ComputationName = "120min_data_prices"
	ComputationWeeklyData             cache.ComputationName = "weekly_data_prices"
	ComputationMonthlyData            cache.ComputationName = "monthly_data_prices"
	ComputationInstrumentCosts        cache.ComputationName = "instrument_costs"
	ComputationTradingHours           cache.ComputationName = "trading_hours"
)

// resolutionComputations maps every resolution to the computation caching its table.
var resolutionComputations = map[types.Resolution]cache.ComputationName{
	types.ResolutionDaily:   ComputationDailyData,
	types.Resolution30Min:   Computation30MinData,
	types.Resolution45Min:   Computation45MinData,
	types.Resolution60Min:   Computation60MinData,
	types.Resolution90Min:   Computation90MinData,
	types.Resolution120Min:  Computation120MinData,
	types.ResolutionWeekly:  ComputationWeeklyData,
	types.ResolutionMonthly: ComputationMonthlyData,
}

// FuturesRawData is the futures specific raw data stage.
type FuturesRawData struct {
	sys *system.System
	log *logger.Logger
}

// New creates a futures raw data stage. It must be registered with a System before use.
func New() *FuturesRawData {
	return &FuturesRawData{}
}

// Name implements system.Stage.
func (r *FuturesRawData) Name() cache.StageName {
	return StageName
}

// Dependencies implements system.Stage. The stage only reads from the DataSource.
func (r *FuturesRawData) Dependencies() []cache.StageName {
	return nil
}

// Protected implements system.Stage. Raw price tables are expensive to load and do not
// depend on configuration, so they survive soft resets.
func (r *FuturesRawData) Protected() []cache.ComputationName {
	return []cache.ComputationName{
		ComputationRawData,
		ComputationRawClose,
		ComputationRawDailyPrices,
		ComputationDailyData,
		Computation30MinData,
		Computation45MinData,
		Computation60MinData,
		Computation90MinData,
		Computation120MinData,
		ComputationWeeklyData,
		ComputationMonthlyData,
	}
}

// Attach implements system.Stage.
func (r *FuturesRawData) Attach(sys *system.System) error {
	r.sys = sys
	r.log = sys.Logger().Named(string(StageName))

	return nil
}

func (r *FuturesRawData) String() string {
	return "SystemStage 'rawdata' futures"
}

func (r *FuturesRawData) attached() error {
	if r.sys == nil {
		return errors.Newf(errors.ErrCodeStageAttachFailed, "stage %s is not attached to a system", StageName)
	}

	return nil
}

func compute[T any](
	ctx context.Context,
	r *FuturesRawData,
	computation cache.ComputationName,
	instrument types.InstrumentKey,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	if err := r.attached(); err != nil {
		var zero T
		return zero, err
	}

	return system.GetOrCompute(ctx, r.sys, StageName, computation, instrument, fn)
}

// InstrumentRawCarryData returns the PRICE, CARRY, PRICE_CONTRACT and CARRY_CONTRACT table.
func (r *FuturesRawData) InstrumentRawCarryData(ctx context.Context, instrument types.InstrumentKey) (types.CarryTable, error) {
	return compute(ctx, r, ComputationInstrumentRawCarryData, instrument, func(context.Context) (types.CarryTable, error) {
		return r.sys.Data().InstrumentRawCarryData(instrument)
	})
}

// RawFuturesRoll returns PRICE minus CARRY. Exact zeros are treated as bad data and become
// NaN, and only observations where the value changes are kept.
func (r *FuturesRawData) RawFuturesRoll(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationRawFuturesRoll, instrument, func(ctx context.Context) (types.Series, error) {
		carry, err := r.InstrumentRawCarryData(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		values := make([]float64, len(carry.Records))
		for i, record := range carry.Records {
			values[i] = record.Price - record.Carry
		}

		roll := types.Series{Name: string(ComputationRawFuturesRoll), Index: carry.Index(), Values: values}

		return roll.DropDuplicateIndex().ZeroToNaN().CollapseRepeats(), nil
	})
}

// RollDifferentials returns, per carry row, the distance between the carry and price
// contract expiries as a fraction of a year, floored to the configured number of days.
func (r *FuturesRawData) RollDifferentials(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationRollDifferentials, instrument, func(ctx context.Context) (types.Series, error) {
		carry, err := r.InstrumentRawCarryData(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		floor := r.sys.Config().FloorDateDiffDays

		values := make([]float64, len(carry.Records))
		for i, record := range carry.Records {
			diff, err := dates.ExpiryDiff(record.PriceContract, record.CarryContract, floor)
			if err != nil {
				return types.Series{}, errors.Wrapf(errors.ErrCodeInvalidExpiry, err,
					"bad contract in carry data of %s at %s", instrument, record.Time)
			}

			values[i] = diff
		}

		diffs := types.Series{Name: string(ComputationRollDifferentials), Index: carry.Index(), Values: values}

		return diffs.DropDuplicateIndex(), nil
	})
}

// AnnualisedRoll returns the raw futures roll divided by the roll differentials, aligned on
// the union of both indexes.
func (r *FuturesRawData) AnnualisedRoll(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationAnnualisedRoll, instrument, func(ctx context.Context) (types.Series, error) {
		diffs, err := r.RollDifferentials(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		roll, err := r.RawFuturesRoll(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		annualised, err := roll.Div(diffs)
		if err != nil {
			return types.Series{}, errors.Wrapf(errors.ErrCodeComputationFailed, err,
				"failed to annualise roll of %s", instrument)
		}

		return annualised.Rename(string(ComputationAnnualisedRoll)), nil
	})
}

// DailyAnnualisedRoll returns the annualised roll averaged over each business day. The
// resampling happens last so that intraday roll and differentials stay aligned.
func (r *FuturesRawData) DailyAnnualisedRoll(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationDailyAnnualisedRoll, instrument, func(ctx context.Context) (types.Series, error) {
		annualised, err := r.AnnualisedRoll(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		r.log.Debug("Resampling annualised roll to business days",
			zap.String("instrument", instrument.String()),
			zap.Int("observations", annualised.Len()),
		)

		return annualised.ResampleBusinessDay(types.AggregationMean).Rename(string(ComputationDailyAnnualisedRoll)), nil
	})
}

// DailyDenominatorPrice returns the last PRICE of every business day, used to turn price
// volatility into percentage volatility.
func (r *FuturesRawData) DailyDenominatorPrice(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationDailyDenominatorPrice, instrument, func(ctx context.Context) (types.Series, error) {
		carry, err := r.InstrumentRawCarryData(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		return carry.PriceSeries().ResampleBusinessDay(types.AggregationLast), nil
	})
}

// RawData returns the native OHLCV table.
func (r *FuturesRawData) RawData(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return compute(ctx, r, ComputationRawData, instrument, func(context.Context) (types.PriceTable, error) {
		return r.sys.Data().RawData(instrument)
	})
}

// RawClose returns the close prices of the native OHLCV table.
func (r *FuturesRawData) RawClose(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationRawClose, instrument, func(context.Context) (types.Series, error) {
		return r.sys.Data().RawClose(instrument)
	})
}

// RawDailyPrices returns the raw price series, not resampled to business days.
func (r *FuturesRawData) RawDailyPrices(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	return compute(ctx, r, ComputationRawDailyPrices, instrument, func(context.Context) (types.Series, error) {
		return r.sys.Data().RawPrice(instrument)
	})
}

// ResolutionData returns the OHLCV table at the given resolution.
func (r *FuturesRawData) ResolutionData(ctx context.Context, instrument types.InstrumentKey, resolution types.Resolution) (types.PriceTable, error) {
	computation, ok := resolutionComputations[resolution]
	if !ok {
		return types.PriceTable{}, errors.Newf(errors.ErrCodeInvalidResolution, "unknown resolution %q", resolution)
	}

	return compute(ctx, r, computation, instrument, func(context.Context) (types.PriceTable, error) {
		return r.sys.Data().ResolutionData(instrument, resolution)
	})
}

// DailyData returns daily OHLCV bars.
func (r *FuturesRawData) DailyData(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.ResolutionDaily)
}

// Data30Min returns 30 minute OHLCV bars.
func (r *FuturesRawData) Data30Min(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.Resolution30Min)
}

// Data45Min returns 45 minute OHLCV bars.
func (r *FuturesRawData) Data45Min(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.Resolution45Min)
}

// Data60Min returns 60 minute OHLCV bars.
func (r *FuturesRawData) Data60Min(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.Resolution60Min)
}

// Data90Min returns 90 minute OHLCV bars.
func (r *FuturesRawData) Data90Min(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.Resolution90Min)
}

// Data120Min returns 120 minute OHLCV bars.
func (r *FuturesRawData) Data120Min(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.Resolution120Min)
}

// WeeklyData returns weekly OHLCV bars.
func (r *FuturesRawData) WeeklyData(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.ResolutionWeekly)
}

// MonthlyData returns monthly OHLCV bars.
func (r *FuturesRawData) MonthlyData(ctx context.Context, instrument types.InstrumentKey) (types.PriceTable, error) {
	return r.ResolutionData(ctx, instrument, types.ResolutionMonthly)
}

// InstrumentCosts returns the trading costs of an instrument. When the DataSource has no
// cost data the zero cost structure is returned and a warning is logged.
func (r *FuturesRawData) InstrumentCosts(ctx context.Context, instrument types.InstrumentKey) (types.InstrumentCosts, error) {
	return compute(ctx, r, ComputationInstrumentCosts, instrument, func(context.Context) (types.InstrumentCosts, error) {
		costs, err := r.sys.Data().InstrumentCosts(instrument)
		if errors.HasCode(err, errors.ErrCodeDataNotFound) {
			r.log.Warn("Cost data not found, using zero costs",
				zap.String("instrument", instrument.String()),
				zap.Error(err),
			)

			return types.ZeroCosts(instrument), nil
		}

		return costs, err
	})
}

// TradingHours returns the trading session of an instrument, or None with a warning when the
// DataSource has no trading hours for it.
func (r *FuturesRawData) TradingHours(ctx context.Context, instrument types.InstrumentKey) (optional.Option[types.TradingHours], error) {
	return compute(ctx, r, ComputationTradingHours, instrument, func(context.Context) (optional.Option[types.TradingHours], error) {
		hours, err := r.sys.Data().TradingHours(instrument)
		if errors.HasCode(err, errors.ErrCodeDataNotFound) {
			r.log.Warn("Trading hours not found",
				zap.String("instrument", instrument.String()),
				zap.Error(err),
			)

			return optional.None[types.TradingHours](), nil
		}

		if err != nil {
			return optional.None[types.TradingHours](), err
		}

		return optional.Some(hours), nil
	})
}
