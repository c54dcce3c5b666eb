package cache

import (
	"fmt"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// StageName identifies a stage in the pipeline, e.g. "rawdata".
type StageName string

// ComputationName identifies one memoized accessor of a stage, e.g. "raw_futures_roll".
type ComputationName string

// Key addresses a single cache entry. Instrument is empty for results that do not
// depend on an instrument. Keys are compared by exact match.
type Key struct {
	Stage       StageName
	Computation ComputationName
	Instrument  types.InstrumentKey
}

// NewKey returns the key of an instrument specific computation.
func NewKey(stage StageName, computation ComputationName, instrument types.InstrumentKey) Key {
	return Key{Stage: stage, Computation: computation, Instrument: instrument}
}

// NewGlobalKey returns the key of an instrument independent computation.
func NewGlobalKey(stage StageName, computation ComputationName) Key {
	return Key{Stage: stage, Computation: computation}
}

// IsGlobal reports whether the key does not belong to an instrument.
func (k Key) IsGlobal() bool {
	return k.Instrument == ""
}

func (k Key) String() string {
	if k.IsGlobal() {
		return fmt.Sprintf("%s/%s", k.Stage, k.Computation)
	}

	return fmt.Sprintf("%s/%s/%s", k.Stage, k.Computation, k.Instrument)
}

// flightKey is an unambiguous encoding of k. String is not, since names may contain "/".
func (k Key) flightKey() string {
	return fmt.Sprintf("%q|%q|%q", k.Stage, k.Computation, k.Instrument)
}

type protectedKey struct {
	stage       StageName
	computation ComputationName
}
