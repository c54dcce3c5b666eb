package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const carryFixture = `DATETIME,PRICE,CARRY,CARRY_CONTRACT,PRICE_CONTRACT
2010-01-04,99.0,99.25,201003,201006
2011-06-01,99.5,99.75,201106,201109
2012-12-31,98.0,98.5,201303,201306
`

const pricesFixture = `DATETIME,close_price,open_price,high_price,low_price,volume
2010-01-04 14:00:00,99.0,99.0,99.1,98.9,100
2012-12-31 14:00:00,98.0,98.0,98.1,97.9,100
`

func writeProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "EDOLLAR_carrydata.csv"), []byte(carryFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "EDOLLAR_data.csv"), []byte(pricesFixture), 0o644))

	config := "data_path: " + dataDir + "\ndate_method: expanding\nlog_level: error\n"
	configPath := filepath.Join(dir, "research.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	return configPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), append([]string{"research"}, args...))

	return out.String(), err
}

func TestFitDatesCommand(t *testing.T) {
	configPath := writeProject(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name: "expanding from config",
			args: []string{"fitdates", "--config", configPath},
			expected: []string{
				"Fit without data, use from 2010-01-04 to 2011-01-04",
				"Fit from 2010-01-04 to 2011-01-04, use in 2011-01-04 to 2012-01-04",
				"Fit from 2010-01-04 to 2012-01-04, use in 2012-01-04 to 2012-12-31",
			},
		},
		{
			name: "rolling override",
			args: []string{"fitdates", "--config", configPath, "--method", "rolling", "--roll-years", "1"},
			expected: []string{
				"Fit without data, use from 2010-01-04 to 2011-01-04",
				"Fit from 2010-01-04 to 2011-01-04, use in 2011-01-04 to 2012-01-04",
				"Fit from 2011-01-04 to 2012-01-04, use in 2012-01-04 to 2012-12-31",
			},
		},
		{
			name:     "in sample override",
			args:     []string{"fitdates", "--config", configPath, "--method", "in_sample"},
			expected: []string{"Fit from 2010-01-04 to 2012-12-31, use in 2010-01-04 to 2012-12-31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strings.Split(strings.TrimSpace(out), "\n"))
		})
	}
}

func TestFitDatesRejectsUnknownMethod(t *testing.T) {
	configPath := writeProject(t)

	_, err := run(t, "fitdates", "--config", configPath, "--method", "weekly")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "don't recognise date method")
}

func TestRollCommandWritesOutput(t *testing.T) {
	configPath := writeProject(t)
	outputPath := filepath.Join(t.TempDir(), "roll.parquet")

	out, err := run(t, "roll", "--config", configPath, "--output", outputPath, "--format", "parquet")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+outputPath)

	_, err = os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestForecastCommandUnknownFormat(t *testing.T) {
	configPath := writeProject(t)

	_, err := run(t, "forecast", "--config", configPath, "--format", "xlsx")
	assert.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "research-config")
	assert.Contains(t, out, "roll_years")
}
