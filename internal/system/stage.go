package system

import (
	"context"

	"github.com/rxtech-lab/argo-research/internal/system/cache"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Stage is a named unit of computation. Its accessors pull from the DataSource or from
// other stages, and memoize their results through the System cache.
type Stage interface {
	// Name returns the unique name of the stage.
	Name() cache.StageName
	// Dependencies lists the stages whose accessors this stage calls.
	Dependencies() []cache.StageName
	// Protected lists the computations whose entries survive a soft cache reset.
	Protected() []cache.ComputationName
	// Attach binds the stage to its owning System. It is called once, in dependency order,
	// so every dependency is already attached.
	Attach(sys *System) error
}

// GetStage returns the registered stage with the given name as its concrete type.
func GetStage[T Stage](sys *System, name cache.StageName) (T, error) {
	var zero T

	stage, err := sys.Stage(name)
	if err != nil {
		return zero, err
	}

	typed, ok := stage.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrCodeStageNotFound,
			"stage %s is a %T, requested %T", name, stage, zero)
	}

	return typed, nil
}

// GetOrCompute memoizes an instrument specific computation of a stage in the System cache.
func GetOrCompute[T any](
	ctx context.Context,
	sys *System,
	stage cache.StageName,
	computation cache.ComputationName,
	instrument types.InstrumentKey,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	return cache.GetOrCompute(ctx, sys.Cache(), cache.NewKey(stage, computation, instrument), compute)
}

// GetOrComputeGlobal memoizes an instrument independent computation of a stage.
func GetOrComputeGlobal[T any](
	ctx context.Context,
	sys *System,
	stage cache.StageName,
	computation cache.ComputationName,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	return cache.GetOrCompute(ctx, sys.Cache(), cache.NewGlobalKey(stage, computation), compute)
}
