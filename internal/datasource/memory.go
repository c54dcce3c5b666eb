package datasource

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// MemoryDataSource serves tables held in memory. Tables are copied on the way in and out.
type MemoryDataSource struct {
	mu          sync.RWMutex
	prices      map[types.InstrumentKey]types.PriceTable
	carry       map[types.InstrumentKey]types.CarryTable
	resolutions map[types.InstrumentKey]map[types.Resolution]types.PriceTable
	costs       map[types.InstrumentKey]types.InstrumentCosts
	hours       map[types.InstrumentKey]types.TradingHours
	equity      map[string]types.Series
}

// NewMemoryDataSource creates an empty in-memory data source.
func NewMemoryDataSource() *MemoryDataSource {
	return &MemoryDataSource{
		prices:      make(map[types.InstrumentKey]types.PriceTable),
		carry:       make(map[types.InstrumentKey]types.CarryTable),
		resolutions: make(map[types.InstrumentKey]map[types.Resolution]types.PriceTable),
		costs:       make(map[types.InstrumentKey]types.InstrumentCosts),
		hours:       make(map[types.InstrumentKey]types.TradingHours),
		equity:      make(map[string]types.Series),
	}
}

// SetPrices stores the native OHLCV table of table.Instrument.
func (m *MemoryDataSource) SetPrices(table types.PriceTable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prices[table.Instrument] = table.Clone()
}

// SetCarry stores the carry table of table.Instrument.
func (m *MemoryDataSource) SetCarry(table types.CarryTable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.carry[table.Instrument] = table.Clone()
}

// SetResolution stores an OHLCV table at a fixed resolution.
func (m *MemoryDataSource) SetResolution(resolution types.Resolution, table types.PriceTable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.resolutions[table.Instrument] == nil {
		m.resolutions[table.Instrument] = make(map[types.Resolution]types.PriceTable)
	}

	m.resolutions[table.Instrument][resolution] = table.Clone()
}

// SetCosts stores the costs of costs.Instrument.
func (m *MemoryDataSource) SetCosts(costs types.InstrumentCosts) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.costs[costs.Instrument] = costs
}

// SetTradingHours stores the session of hours.Instrument.
func (m *MemoryDataSource) SetTradingHours(hours types.TradingHours) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hours[hours.Instrument] = hours
}

// SetEquityCurve stores the equity curve of a trading system. The stored series is
// renamed to code.
func (m *MemoryDataSource) SetEquityCurve(code string, curve types.Series) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.equity[code] = curve.Rename(code)
}

// InstrumentCodes implements DataSource. Instruments with either price or carry data are listed.
func (m *MemoryDataSource) InstrumentCodes() ([]types.InstrumentKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[types.InstrumentKey]bool)
	for instrument := range m.prices {
		seen[instrument] = true
	}

	for instrument := range m.carry {
		seen[instrument] = true
	}

	codes := make([]types.InstrumentKey, 0, len(seen))
	for instrument := range seen {
		codes = append(codes, instrument)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	return codes, nil
}

// RawData implements DataSource.
func (m *MemoryDataSource) RawData(instrument types.InstrumentKey) (types.PriceTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table, ok := m.prices[instrument]
	if !ok {
		return types.PriceTable{}, errors.Newf(errors.ErrCodeDataNotFound, "no price data for %s", instrument)
	}

	return table.Clone(), nil
}

// RawPrice implements DataSource.
func (m *MemoryDataSource) RawPrice(instrument types.InstrumentKey) (types.Series, error) {
	table, err := m.RawData(instrument)
	if err != nil {
		return types.Series{}, err
	}

	return table.CloseSeries().Rename("price"), nil
}

// RawClose implements DataSource.
func (m *MemoryDataSource) RawClose(instrument types.InstrumentKey) (types.Series, error) {
	table, err := m.RawData(instrument)
	if err != nil {
		return types.Series{}, err
	}

	return table.CloseSeries(), nil
}

// InstrumentRawCarryData implements DataSource.
func (m *MemoryDataSource) InstrumentRawCarryData(instrument types.InstrumentKey) (types.CarryTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table, ok := m.carry[instrument]
	if !ok {
		return types.CarryTable{}, errors.Newf(errors.ErrCodeDataNotFound, "no carry data for %s", instrument)
	}

	return table.Clone(), nil
}

// ResolutionData implements DataSource.
func (m *MemoryDataSource) ResolutionData(instrument types.InstrumentKey, resolution types.Resolution) (types.PriceTable, error) {
	if _, err := types.ParseResolution(string(resolution)); err != nil {
		return types.PriceTable{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	table, ok := m.resolutions[instrument][resolution]
	if !ok {
		return types.PriceTable{}, errors.Newf(errors.ErrCodeDataNotFound, "no %s data for %s", resolution, instrument)
	}

	return table.Clone(), nil
}

// InstrumentCosts implements DataSource.
func (m *MemoryDataSource) InstrumentCosts(instrument types.InstrumentKey) (types.InstrumentCosts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	costs, ok := m.costs[instrument]
	if !ok {
		return types.InstrumentCosts{}, errors.Newf(errors.ErrCodeDataNotFound, "no costs for %s", instrument)
	}

	return costs, nil
}

// TradingHours implements DataSource.
func (m *MemoryDataSource) TradingHours(instrument types.InstrumentKey) (types.TradingHours, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hours, ok := m.hours[instrument]
	if !ok {
		return types.TradingHours{}, errors.Newf(errors.ErrCodeDataNotFound, "no trading hours for %s", instrument)
	}

	return hours, nil
}

// EquityCurve implements DataSource.
func (m *MemoryDataSource) EquityCurve(code string) (types.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	curve, ok := m.equity[code]
	if !ok {
		return types.Series{}, errors.Newf(errors.ErrCodeDataNotFound, "no equity curve for %s", code)
	}

	return curve.Clone(), nil
}

// Close implements DataSource.
func (m *MemoryDataSource) Close() error {
	return nil
}
