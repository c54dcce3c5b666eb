package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rxtech-lab/argo-research/internal/dates"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/research"
	"github.com/rxtech-lab/argo-research/internal/system"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/internal/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// openSystem loads the configuration and builds the carry system it describes.
func openSystem(configPath string) (*research.CarrySystem, *logger.Logger, error) {
	config, err := system.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(config.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	data, err := research.OpenDataSource(config, log)
	if err != nil {
		return nil, nil, err
	}

	sys, err := research.NewCarrySystem(data, config, log)
	if err != nil {
		data.Close()

		return nil, nil, err
	}

	return sys, log, nil
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func exportAction(ctx context.Context, cmd *cli.Command, produce func(*research.CarrySystem) research.SeriesFunc) error {
	sys, log, err := openSystem(cmd.String("config"))
	if err != nil {
		return err
	}
	defer sys.Close()
	defer log.Sync()

	instruments, err := selectInstruments(sys, cmd.StringSlice("instrument"))
	if err != nil {
		return err
	}

	w, err := writer.NewSeriesWriter(writer.Format(cmd.String("format")), cmd.String("output"))
	if err != nil {
		return err
	}

	log.Info("Starting export",
		zap.String("command", cmd.Name),
		zap.Int("instruments", len(instruments)),
		zap.String("output", w.GetOutputPath()),
	)

	bar := progressbar.NewOptions(len(instruments),
		progressbar.OptionSetDescription(fmt.Sprintf("Exporting %s", cmd.Name)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	path, err := research.Export(ctx, log, instruments, produce(sys), w, func() { _ = bar.Add(1) })
	if err != nil {
		return err
	}

	_ = bar.Finish()

	fmt.Fprintf(output(cmd), "\nWrote %s\n", path)

	return nil
}

func rollAction(ctx context.Context, cmd *cli.Command) error {
	return exportAction(ctx, cmd, func(sys *research.CarrySystem) research.SeriesFunc { return sys.RollSeries })
}

func forecastAction(ctx context.Context, cmd *cli.Command) error {
	return exportAction(ctx, cmd, func(sys *research.CarrySystem) research.SeriesFunc { return sys.ForecastSeries })
}

func selectInstruments(sys *research.CarrySystem, requested []string) ([]types.InstrumentKey, error) {
	if len(requested) == 0 {
		return sys.Instruments()
	}

	instruments := make([]types.InstrumentKey, len(requested))
	for i, code := range requested {
		instruments[i] = types.InstrumentKey(code)
	}

	return instruments, nil
}

func fitDatesAction(ctx context.Context, cmd *cli.Command) error {
	config, err := system.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if method := cmd.String("method"); method != "" {
		parsed, err := dates.ParseDateMethod(method)
		if err != nil {
			return err
		}

		config.DateMethod = parsed
	}

	if cmd.IsSet("roll-years") {
		config.RollYears = int(cmd.Int("roll-years"))
	}

	log, err := logger.NewLogger(config.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := research.OpenDataSource(config, log)
	if err != nil {
		return err
	}

	sys, err := research.NewCarrySystem(data, config, log)
	if err != nil {
		data.Close()

		return err
	}
	defer sys.Close()

	windows, err := sys.Fit.FitWindows(ctx)
	if err != nil {
		return err
	}

	out := output(cmd)
	for _, window := range windows {
		fmt.Fprintln(out, window.String())
	}

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	config := system.DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Fprintln(output(cmd), schema)

	return nil
}
