package datasource

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timeLayouts are tried in order when parsing a DATETIME cell.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// csvTime parses the DATETIME column.
type csvTime struct {
	time.Time
}

func (t *csvTime) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)

	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t.Time = parsed

			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as a timestamp", value)
}

// csvFloat parses a numeric cell. Empty cells and NaN tokens are undefined.
type csvFloat float64

func (f *csvFloat) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "", "nan", "na", "null":
		*f = csvFloat(math.NaN())

		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as a number: %w", value, err)
	}

	*f = csvFloat(parsed)

	return nil
}

// csvContract parses a contract cell. Contracts written by pandas as floats ("201812.0")
// are normalised back to their digit token.
type csvContract string

func (c *csvContract) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)

	if strings.EqualFold(value, "nan") {
		value = ""
	}

	*c = csvContract(strings.TrimSuffix(value, ".0"))

	return nil
}

// csvDecimal parses a cost cell. Empty cells are zero.
type csvDecimal struct {
	decimal.Decimal
}

func (d *csvDecimal) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		d.Decimal = decimal.Zero

		return nil
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("cannot parse %q as a decimal: %w", value, err)
	}

	d.Decimal = parsed

	return nil
}

// priceRow is one line of a <CODE>_data.csv or <CODE>_<resolution>.csv file.
type priceRow struct {
	Time   csvTime  `csv:"DATETIME"`
	Close  csvFloat `csv:"close_price"`
	Open   csvFloat `csv:"open_price"`
	High   csvFloat `csv:"high_price"`
	Low    csvFloat `csv:"low_price"`
	Volume csvFloat `csv:"volume"`
}

// carryRow is one line of a <CODE>_carrydata.csv file.
type carryRow struct {
	Time          csvTime     `csv:"DATETIME"`
	Price         csvFloat    `csv:"PRICE"`
	Carry         csvFloat    `csv:"CARRY"`
	CarryContract csvContract `csv:"CARRY_CONTRACT"`
	PriceContract csvContract `csv:"PRICE_CONTRACT"`
}

// costRow is one line of costs_analysis.csv.
type costRow struct {
	Instrument string     `csv:"Instrument"`
	Slippage   csvDecimal `csv:"Slippage"`
	PerBlock   csvDecimal `csv:"PerBlock"`
	Percentage csvDecimal `csv:"Percentage"`
	PerTrade   csvDecimal `csv:"PerTrade"`
}

// equityRow is one line of a headerless <SYSTEM>_equity_curve.csv file. Columns are
// matched by position.
type equityRow struct {
	Time  csvTime  `csv:"DATETIME"`
	Value csvFloat `csv:"VALUE"`
}
