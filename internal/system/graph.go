package system

import (
	"strings"

	"github.com/rxtech-lab/argo-research/internal/system/cache"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// resolveOrder validates the stage graph and returns the stage names in dependency order,
// dependencies first. Ties keep registration order.
func resolveOrder(stages []Stage) ([]cache.StageName, error) {
	byName := make(map[cache.StageName]Stage, len(stages))

	for _, stage := range stages {
		if stage == nil {
			return nil, errors.New(errors.ErrCodeMissingParameter, "stage must not be nil")
		}

		name := stage.Name()
		if name == "" {
			return nil, errors.Newf(errors.ErrCodeMissingParameter, "stage %T has an empty name", stage)
		}

		if _, exists := byName[name]; exists {
			return nil, errors.Newf(errors.ErrCodeStageAlreadyExists, "stage with name %s already registered", name)
		}

		byName[name] = stage
	}

	for _, stage := range stages {
		for _, dep := range stage.Dependencies() {
			if _, ok := byName[dep]; !ok {
				return nil, errors.Newf(errors.ErrCodeStageNotFound,
					"stage %s depends on %s which is not registered", stage.Name(), dep)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[cache.StageName]int, len(stages))
	order := make([]cache.StageName, 0, len(stages))

	var path []cache.StageName

	var visit func(name cache.StageName) error
	visit = func(name cache.StageName) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return errors.Newf(errors.ErrCodeCyclicDependency,
				"stage dependency cycle: %s", formatCycle(path, name))
		}

		state[name] = visiting
		path = append(path, name)

		for _, dep := range byName[name].Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)

		return nil
	}

	for _, stage := range stages {
		if err := visit(stage.Name()); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func formatCycle(path []cache.StageName, repeated cache.StageName) string {
	start := 0

	for i, name := range path {
		if name == repeated {
			start = i
			break
		}
	}

	parts := make([]string, 0, len(path)-start+1)
	for _, name := range path[start:] {
		parts = append(parts, string(name))
	}

	parts = append(parts, string(repeated))

	return strings.Join(parts, " -> ")
}
