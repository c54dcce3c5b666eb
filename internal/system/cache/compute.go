package cache

import (
	"context"
	"strings"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// GetOrCompute returns the cached value for key, computing and storing it on first use.
//
// Values implementing Clone() T are copied before they are stored and again on every read,
// so callers may modify what they receive without affecting other consumers.
func GetOrCompute[T any](ctx context.Context, c Cache, key Key, compute func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := c.Compute(ctx, key, func(ctx context.Context) (any, error) {
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		return cloneValue(result), nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrCodeCacheTypeMismatch,
			"cache entry %s holds %T, requested %T", key, value, zero)
	}

	return cloneValue(typed), nil
}

func cloneValue[T any](value T) T {
	if cloner, ok := any(value).(interface{ Clone() T }); ok {
		return cloner.Clone()
	}

	return value
}

type chainContextKey struct{}

// chain is the list of keys currently being computed on a call path, innermost first.
type chain struct {
	key    Key
	parent *chain
}

func withKey(ctx context.Context, key Key) context.Context {
	parent, _ := ctx.Value(chainContextKey{}).(*chain)

	return context.WithValue(ctx, chainContextKey{}, &chain{key: key, parent: parent})
}

func chainContains(ctx context.Context, key Key) bool {
	for c, _ := ctx.Value(chainContextKey{}).(*chain); c != nil; c = c.parent {
		if c.key == key {
			return true
		}
	}

	return false
}

// formatChain renders the call path ending in key, outermost first.
func formatChain(ctx context.Context, key Key) string {
	parts := []string{key.String()}

	for c, _ := ctx.Value(chainContextKey{}).(*chain); c != nil; c = c.parent {
		parts = append(parts, c.key.String())
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, " -> ")
}

// ComputationPath returns the keys being computed on the current call path, outermost first.
func ComputationPath(ctx context.Context) []Key {
	var keys []Key

	for c, _ := ctx.Value(chainContextKey{}).(*chain); c != nil; c = c.parent {
		keys = append([]Key{c.key}, keys...)
	}

	return keys
}
