package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/argo-research/internal/dates"
	"github.com/rxtech-lab/argo-research/internal/version"
	"github.com/rxtech-lab/argo-research/internal/writer"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the research configuration `FILE`",
		Required: true,
	}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringSliceFlag{
			Name:    "instrument",
			Aliases: []string{"i"},
			Usage:   "Instrument code to export, may be repeated. Defaults to every configured instrument",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path",
			Value:   "output/research.csv",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   fmt.Sprintf("Output format (%s or %s)", writer.FormatCSV, writer.FormatParquet),
			Value:   string(writer.FormatCSV),
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "research",
		Usage:   "Futures carry research toolkit",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:   "roll",
				Usage:  "Export the roll analytics of each instrument",
				Flags:  exportFlags(),
				Action: rollAction,
			},
			{
				Name:   "forecast",
				Usage:  "Export the carry forecast of each instrument",
				Flags:  exportFlags(),
				Action: forecastAction,
			},
			{
				Name:  "fitdates",
				Usage: "Print the walk-forward fit windows",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "method",
						Aliases: []string{"m"},
						Usage:   fmt.Sprintf("Override the date method (one of %v)", dates.AllDateMethods),
					},
					&cli.IntFlag{
						Name:  "roll-years",
						Usage: "Override the number of years in a rolling fit",
					},
				},
				Action: fitDatesAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the research configuration",
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
