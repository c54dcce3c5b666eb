package datasource

import (
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// ResamplingDataSource derives resolution tables from the native OHLCV bars when the
// wrapped source has no stored table for the requested resolution.
type ResamplingDataSource struct {
	DataSource
	log *logger.Logger
}

// NewResamplingDataSource wraps source.
func NewResamplingDataSource(source DataSource, log *logger.Logger) *ResamplingDataSource {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ResamplingDataSource{
		DataSource: source,
		log:        log.Named("resampling-data"),
	}
}

// ResolutionData implements DataSource.
func (r *ResamplingDataSource) ResolutionData(instrument types.InstrumentKey, resolution types.Resolution) (types.PriceTable, error) {
	table, err := r.DataSource.ResolutionData(instrument, resolution)
	if err == nil || !errors.HasCode(err, errors.ErrCodeDataNotFound) {
		return table, err
	}

	raw, rawErr := r.DataSource.RawData(instrument)
	if rawErr != nil {
		return types.PriceTable{}, rawErr
	}

	r.log.Debug("Resampling native data",
		zap.String("instrument", string(instrument)),
		zap.String("resolution", string(resolution)),
		zap.Int("bars", raw.Len()),
	)

	return raw.Resample(resolution), nil
}
