// Package carryfit implements a walk-forward consumer of the futures raw data stage. The
// daily annualised roll of every instrument is normalised with a mean and standard
// deviation estimated on each fit window and applied over the window's period.
package carryfit

import (
	"context"
	"math"
	"time"

	"github.com/rxtech-lab/argo-research/internal/dates"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/system"
	"github.com/rxtech-lab/argo-research/internal/system/cache"
	"github.com/rxtech-lab/argo-research/internal/system/stages/rawdata"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// StageName is the name the stage registers under.
const StageName cache.StageName = "carryfit"

const (
	ComputationFitWindows    cache.ComputationName = "fit_windows"
	ComputationFittedCarry   cache.ComputationName = "fitted_carry"
	ComputationCarryForecast cache.ComputationName = "carry_forecast"
)

// Windows is the list of fit windows shared by every instrument.
type Windows []types.FitWindow

// Clone returns a copy of the list.
func (w Windows) Clone() Windows {
	out := make(Windows, len(w))
	copy(out, w)

	return out
}

// FittedWindow holds the parameters estimated on one fit window.
// Mean and StdDev are NaN when the window has no data to fit on.
type FittedWindow struct {
	Window       types.FitWindow
	Mean         float64
	StdDev       float64
	Observations int
}

// FittedCarry holds the fitted parameters of one instrument, one entry per window.
type FittedCarry struct {
	Instrument types.InstrumentKey
	Windows    []FittedWindow
}

// Clone returns a deep copy.
func (f FittedCarry) Clone() FittedCarry {
	windows := make([]FittedWindow, len(f.Windows))
	copy(windows, f.Windows)

	return FittedCarry{Instrument: f.Instrument, Windows: windows}
}

// WindowFor returns the fitted window whose period contains t. The end of the last period
// is inclusive.
func (f FittedCarry) WindowFor(t time.Time) (FittedWindow, bool) {
	for i, w := range f.Windows {
		if w.Window.Contains(t) {
			return w, true
		}

		if i == len(f.Windows)-1 && t.Equal(w.Window.PeriodEnd) {
			return w, true
		}
	}

	return FittedWindow{}, false
}

// CarryFit is the carry fitting stage.
type CarryFit struct {
	sys *system.System
	raw *rawdata.FuturesRawData
	log *logger.Logger
}

// New creates a carry fitting stage. It needs the rawdata stage in the same System.
func New() *CarryFit {
	return &CarryFit{}
}

// Name implements system.Stage.
func (c *CarryFit) Name() cache.StageName {
	return StageName
}

// Dependencies implements system.Stage.
func (c *CarryFit) Dependencies() []cache.StageName {
	return []cache.StageName{rawdata.StageName}
}

// Protected implements system.Stage. Fits depend on configuration and are never protected.
func (c *CarryFit) Protected() []cache.ComputationName {
	return nil
}

// Attach implements system.Stage.
func (c *CarryFit) Attach(sys *system.System) error {
	raw, err := system.GetStage[*rawdata.FuturesRawData](sys, rawdata.StageName)
	if err != nil {
		return err
	}

	c.sys = sys
	c.raw = raw
	c.log = sys.Logger().Named(string(StageName))

	return nil
}

func (c *CarryFit) attached() error {
	if c.sys == nil {
		return errors.Newf(errors.ErrCodeStageAttachFailed, "stage %s is not attached to a system", StageName)
	}

	return nil
}

// FitWindows returns the walk-forward windows covering the daily annualised roll of every
// instrument of the run, using the configured date method and roll years. Instruments
// without roll data are skipped; other errors fail the fit.
func (c *CarryFit) FitWindows(ctx context.Context) (Windows, error) {
	if err := c.attached(); err != nil {
		return nil, err
	}

	return system.GetOrComputeGlobal(ctx, c.sys, StageName, ComputationFitWindows, func(ctx context.Context) (Windows, error) {
		instruments, err := c.sys.Instruments()
		if err != nil {
			return nil, err
		}

		config := c.sys.Config()
		data := make([]types.Series, 0, len(instruments))

		for _, instrument := range instruments {
			roll, err := c.raw.DailyAnnualisedRoll(ctx, instrument)
			if errors.HasCode(err, errors.ErrCodeDataNotFound) {
				c.log.Warn("Skipping instrument without roll data",
					zap.String("instrument", string(instrument)),
					zap.Error(err),
				)

				continue
			}

			if err != nil {
				return nil, err
			}

			data = append(data, config.HistoryFilter(roll))
		}

		windows, err := dates.GenerateFittingDates(config.DateMethod, config.RollYears, data...)
		if err != nil {
			return nil, err
		}

		c.log.Debug("Generated fit windows",
			zap.String("method", string(config.DateMethod)),
			zap.Int("instruments", len(data)),
			zap.Int("windows", len(windows)),
		)

		return Windows(windows), nil
	})
}

// FittedCarry estimates the mean and standard deviation of the daily annualised roll on
// every fit window. NaN observations are ignored and no-data windows stay unfitted.
func (c *CarryFit) FittedCarry(ctx context.Context, instrument types.InstrumentKey) (FittedCarry, error) {
	if err := c.attached(); err != nil {
		return FittedCarry{}, err
	}

	return system.GetOrCompute(ctx, c.sys, StageName, ComputationFittedCarry, instrument, func(ctx context.Context) (FittedCarry, error) {
		roll, err := c.raw.DailyAnnualisedRoll(ctx, instrument)
		if err != nil {
			return FittedCarry{}, err
		}

		windows, err := c.FitWindows(ctx)
		if err != nil {
			return FittedCarry{}, err
		}

		roll = c.sys.Config().HistoryFilter(roll)

		fitted := FittedCarry{Instrument: instrument, Windows: make([]FittedWindow, 0, len(windows))}
		for _, window := range windows {
			fitted.Windows = append(fitted.Windows, fitWindow(window, roll))
		}

		return fitted, nil
	})
}

func fitWindow(window types.FitWindow, roll types.Series) FittedWindow {
	fitted := FittedWindow{Window: window, Mean: math.NaN(), StdDev: math.NaN()}
	if window.NoData {
		return fitted
	}

	values := window.FitData(roll).ValidValues()
	fitted.Observations = len(values)

	switch len(values) {
	case 0:
	case 1:
		fitted.Mean = values[0]
	default:
		fitted.Mean, fitted.StdDev = stat.MeanStdDev(values, nil)
	}

	return fitted
}

// CarryForecast returns, for every business day of the daily annualised roll, the roll
// normalised with the parameters fitted for the window containing that day. Days in no-data
// windows, outside every window or with a zero standard deviation are NaN.
func (c *CarryFit) CarryForecast(ctx context.Context, instrument types.InstrumentKey) (types.Series, error) {
	if err := c.attached(); err != nil {
		return types.Series{}, err
	}

	return system.GetOrCompute(ctx, c.sys, StageName, ComputationCarryForecast, instrument, func(ctx context.Context) (types.Series, error) {
		fitted, err := c.FittedCarry(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		roll, err := c.raw.DailyAnnualisedRoll(ctx, instrument)
		if err != nil {
			return types.Series{}, err
		}

		forecast := types.Series{
			Name:   string(ComputationCarryForecast),
			Index:  make([]time.Time, roll.Len()),
			Values: make([]float64, roll.Len()),
		}

		for i, t := range roll.Index {
			forecast.Index[i] = t
			forecast.Values[i] = math.NaN()

			window, ok := fitted.WindowFor(t)
			if !ok || window.StdDev == 0 || math.IsNaN(window.StdDev) {
				continue
			}

			forecast.Values[i] = (roll.Values[i] - window.Mean) / window.StdDev
		}

		return forecast, nil
	})
}
