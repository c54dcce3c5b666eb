package system

import (
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-research/internal/datasource"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/system/cache"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// System owns the DataSource, the configuration, the cache and the stages of one
// pipeline run. Stages reach each other and the cache only through the System.
type System struct {
	runID  string
	data   datasource.DataSource
	config Config
	cache  cache.Cache
	log    *logger.Logger
	stages map[cache.StageName]Stage
	order  []cache.StageName
}

// NewSystem validates the configuration and the stage graph, then attaches every stage in
// dependency order. Duplicate names, unknown dependencies and dependency cycles are rejected
// here so that no accessor can recurse indefinitely at call time.
func NewSystem(data datasource.DataSource, config Config, log *logger.Logger, stages ...Stage) (*System, error) {
	return NewSystemWithCache(data, config, log, nil, stages...)
}

// NewSystemWithCache is NewSystem with a caller supplied cache. A nil cache gets a CacheV1.
func NewSystemWithCache(data datasource.DataSource, config Config, log *logger.Logger, c cache.Cache, stages ...Stage) (*System, error) {
	if data == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "data source is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	order, err := resolveOrder(stages)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log = log.With(zap.String("run_id", runID))

	if c == nil {
		c = cache.NewCacheV1(log)
	}

	sys := &System{
		runID:  runID,
		data:   data,
		config: config,
		cache:  c,
		log:    log,
		stages: make(map[cache.StageName]Stage, len(stages)),
		order:  order,
	}

	for _, stage := range stages {
		sys.stages[stage.Name()] = stage
	}

	for _, name := range order {
		stage := sys.stages[name]

		for _, computation := range stage.Protected() {
			sys.cache.Protect(name, computation)
		}

		if err := stage.Attach(sys); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStageAttachFailed, err, "failed to attach stage %s", name)
		}
	}

	log.Debug("system created",
		zap.Int("stages", len(order)),
		zap.Strings("order", stageNames(order)),
	)

	return sys, nil
}

// RunID returns the unique identifier of this pipeline run.
func (s *System) RunID() string {
	return s.runID
}

// Data returns the DataSource shared by every stage.
func (s *System) Data() datasource.DataSource {
	return s.data
}

// Config returns the run configuration.
func (s *System) Config() Config {
	return s.config
}

// Cache returns the cache shared by every stage.
func (s *System) Cache() cache.Cache {
	return s.cache
}

// Logger returns the run logger.
func (s *System) Logger() *logger.Logger {
	return s.log
}

// Stage returns a registered stage.
func (s *System) Stage(name cache.StageName) (Stage, error) {
	stage, ok := s.stages[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeStageNotFound, "stage with name %s not found", name)
	}

	return stage, nil
}

// StageOrder returns the stage names in dependency order.
func (s *System) StageOrder() []cache.StageName {
	order := make([]cache.StageName, len(s.order))
	copy(order, s.order)

	return order
}

// Instruments returns the configured instruments, or every instrument of the DataSource
// when none are configured.
func (s *System) Instruments() ([]types.InstrumentKey, error) {
	if len(s.config.Instruments) > 0 {
		instruments := make([]types.InstrumentKey, len(s.config.Instruments))
		copy(instruments, s.config.Instruments)

		return instruments, nil
	}

	return s.data.InstrumentCodes()
}

// DeleteInstrument drops every cached entry of an instrument and returns how many were removed.
func (s *System) DeleteInstrument(instrument types.InstrumentKey, includeProtected bool) int {
	return s.cache.InvalidateInstrument(instrument, includeProtected)
}

// ClearCache drops cached entries. Protected entries are kept unless includeProtected is set.
func (s *System) ClearCache(includeProtected bool) {
	s.cache.Reset(includeProtected)
}

// Close releases the DataSource.
func (s *System) Close() error {
	return s.data.Close()
}

func stageNames(names []cache.StageName) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = string(name)
	}

	return out
}
