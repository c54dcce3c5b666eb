package datasource_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const edollarData = `DATETIME,close_price,open_price,high_price,low_price,volume
2015-12-07 14:00:00,98.5,98.4,98.6,98.3,1200
2015-12-07 15:00:00,98.6,98.5,98.7,98.4,800
2015-12-08 14:00:00,98.7,98.6,98.8,98.5,900
2015-12-08 14:00:00,98.75,98.6,98.8,98.5,950
2015-12-09 14:00:00,,98.7,98.9,98.6,1000
`

const edollarCarry = `DATETIME,PRICE,CARRY,CARRY_CONTRACT,PRICE_CONTRACT
2015-12-07,101.25,101.5,201812,201903
2015-12-08,101.5,NaN,201812.0,201903.0
2015-12-09,101.0,101.5,,201903
`

const edollar30Min = `DATETIME,close_price,open_price,high_price,low_price,volume
2015-12-07 14:00:00,98.5,98.4,98.6,98.3,600
2015-12-07 14:30:00,98.55,98.5,98.6,98.5,600
`

const costsAnalysis = `Instrument,Slippage,PerBlock,Percentage,PerTrade
EDOLLAR,0.0025,2.11,0,0
US10,0.0078125,1.51,,1
`

const carrySystemEquity = `2015-12-08,101250.5
2015-12-07,100000
2015-12-09,
`

const tradingHours = `EDOLLAR:
  open: "08:00"
  close: "16:00"
  timezone: America/Chicago
`

// writeDataDir writes a small EDOLLAR data directory and returns its path.
func writeDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"EDOLLAR_data.csv":       edollarData,
		"EDOLLAR_carrydata.csv":  edollarCarry,
		"EDOLLAR_30min.csv":      edollar30Min,
		"US10_data.csv":          edollarData,
		"costs_analysis.csv":     costsAnalysis,
		"tradinghours.yaml":      tradingHours,
		"CARRY_equity_curve.csv": carrySystemEquity,
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func at(day, hour int) time.Time {
	return time.Date(2015, time.December, day, hour, 0, 0, 0, time.UTC)
}
