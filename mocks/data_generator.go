package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// DataGenerator generates synthetic futures data for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how data is generated.
type GeneratorConfig struct {
	// Instrument is the instrument code, e.g. "EDOLLAR"
	Instrument types.InstrumentKey
	// StartTime is the first timestamp
	StartTime time.Time
	// Interval is the duration between bars
	Interval time.Duration
	// SkipWeekends drops bars that fall on Saturday or Sunday
	SkipWeekends bool
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per bar)
	Volatility float64
	// Trend is the drift over the whole series
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
	// CarrySpread is the average CARRY minus PRICE
	CarrySpread float64
	// ContractCycleMonths is the distance between listed expiries, 3 for quarterly contracts
	ContractCycleMonths int
	// CarryOffsetMonths is the carry contract expiry relative to the price contract.
	// Negative values put the carry contract before the price contract.
	CarryOffsetMonths int
}

// DefaultConfig returns a sensible default configuration: ten years of daily quarterly
// futures data with the carry contract one cycle before the price contract.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Instrument:          "TEST",
		StartTime:           time.Date(2010, 1, 4, 0, 0, 0, 0, time.UTC),
		Interval:            24 * time.Hour,
		SkipWeekends:        true,
		Count:               2600,
		InitialPrice:        100.0,
		Volatility:          0.005,
		Trend:               0.0,
		VolumeBase:          10000,
		VolumeVariance:      0.3,
		CarrySpread:         0.25,
		ContractCycleMonths: 3,
		CarryOffsetMonths:   -3,
	}
}

// GeneratePrices creates an OHLCV table following a geometric Brownian motion.
func (g *DataGenerator) GeneratePrices(config GeneratorConfig) types.PriceTable {
	bars := make([]types.Bar, 0, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for len(bars) < config.Count {
		if config.SkipWeekends && isWeekend(currentTime) {
			currentTime = currentTime.Add(config.Interval)
			continue
		}

		open := currentPrice

		// Box-Muller transform for a normal draw
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars = append(bars, types.Bar{
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: roundToDecimals(volume, 2),
		})

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return types.PriceTable{Instrument: config.Instrument, Bars: bars}
}

// GenerateCarry creates a carry table aligned with the given prices. The price contract is
// the next listed expiry at least one whole month away and the carry contract is offset from it
// by CarryOffsetMonths.
func (g *DataGenerator) GenerateCarry(config GeneratorConfig, prices types.PriceTable) types.CarryTable {
	records := make([]types.CarryRecord, len(prices.Bars))

	for i, bar := range prices.Bars {
		priceExpiry := nextExpiry(bar.Time, config.ContractCycleMonths)
		carryExpiry := priceExpiry.AddDate(0, config.CarryOffsetMonths, 0)

		noise := 1 + (g.rng.Float64()*2-1)*0.5

		records[i] = types.CarryRecord{
			Time:          bar.Time,
			Price:         bar.Close,
			Carry:         roundToDecimals(bar.Close+config.CarrySpread*noise, 4),
			PriceContract: priceExpiry.Format("200601"),
			CarryContract: carryExpiry.Format("200601"),
		}
	}

	return types.CarryTable{Instrument: config.Instrument, Records: records}
}

// Generate creates matching price and carry tables.
func (g *DataGenerator) Generate(config GeneratorConfig) (types.PriceTable, types.CarryTable) {
	prices := g.GeneratePrices(config)

	return prices, g.GenerateCarry(config, prices)
}

// GenerateMultiInstrument generates data for several instruments.
func (g *DataGenerator) GenerateMultiInstrument(instruments []types.InstrumentKey, baseConfig GeneratorConfig) ([]types.PriceTable, []types.CarryTable) {
	prices := make([]types.PriceTable, 0, len(instruments))
	carry := make([]types.CarryTable, 0, len(instruments))

	for _, instrument := range instruments {
		config := baseConfig
		config.Instrument = instrument
		// Vary initial price and volatility slightly per instrument
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		p, c := g.Generate(config)
		prices = append(prices, p)
		carry = append(carry, c)
	}

	return prices, carry
}

// GenerateDefault generates the default ten years of data for one instrument.
func GenerateDefault(instrument types.InstrumentKey) (types.PriceTable, types.CarryTable) {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Instrument = instrument

	return gen.Generate(config)
}

// nextExpiry returns the first day of the first cycle month that leaves at least one
// whole calendar month after the month of t.
func nextExpiry(t time.Time, cycleMonths int) time.Time {
	if cycleMonths < 1 {
		cycleMonths = 1
	}

	month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 2, 0)
	for (int(month.Month())-1)%cycleMonths != cycleMonths-1 {
		month = month.AddDate(0, 1, 0)
	}

	return month
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
