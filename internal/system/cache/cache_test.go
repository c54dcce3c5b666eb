package cache

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// CacheTestSuite is a test suite for CacheV1
type CacheTestSuite struct {
	suite.Suite
	cache *CacheV1
	ctx   context.Context
}

// SetupTest runs before each test
func (suite *CacheTestSuite) SetupTest() {
	suite.cache = NewCacheV1(logger.NewNopLogger())
	suite.ctx = context.Background()
}

// TestCacheSuite runs the test suite
func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) rollKey(instrument types.InstrumentKey) Key {
	return NewKey("rawdata", "raw_futures_roll", instrument)
}

func (suite *CacheTestSuite) series(values ...float64) types.Series {
	index := make([]time.Time, len(values))
	for i := range values {
		index[i] = time.Date(2020, 1, 1+i, 0, 0, 0, 0, time.UTC)
	}

	s, err := types.NewSeries("roll", index, values)
	suite.Require().NoError(err)

	return s
}

func (suite *CacheTestSuite) TestComputesOnlyOnce() {
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for range 5 {
		value, err := GetOrCompute(suite.ctx, suite.cache, suite.rollKey("EDOLLAR"), compute)
		suite.Require().NoError(err)
		suite.Equal(42, value)
	}

	suite.Equal(1, calls)

	stats := suite.cache.Stats()
	suite.Equal(1, stats.Entries)
	suite.Equal(int64(4), stats.Hits)
	suite.Equal(int64(1), stats.Misses)
	suite.Equal(int64(1), stats.Computations)
}

func (suite *CacheTestSuite) TestKeysDoNotCollide() {
	compute := func(value int) func(context.Context) (int, error) {
		return func(context.Context) (int, error) { return value, nil }
	}

	a, err := GetOrCompute(suite.ctx, suite.cache, suite.rollKey("US10"), compute(1))
	suite.Require().NoError(err)
	b, err := GetOrCompute(suite.ctx, suite.cache, suite.rollKey("us10"), compute(2))
	suite.Require().NoError(err)
	c, err := GetOrCompute(suite.ctx, suite.cache, NewKey("other", "raw_futures_roll", "US10"), compute(3))
	suite.Require().NoError(err)
	d, err := GetOrCompute(suite.ctx, suite.cache, NewGlobalKey("rawdata", "raw_futures_roll"), compute(4))
	suite.Require().NoError(err)

	suite.Equal([]int{1, 2, 3, 4}, []int{a, b, c, d})
	suite.Len(suite.cache.Keys(), 4)
}

func (suite *CacheTestSuite) TestFailedComputationIsNotStored() {
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New(errors.ErrCodeDataNotFound, "missing carry file")
		}

		return 7, nil
	}

	_, err := GetOrCompute(suite.ctx, suite.cache, suite.rollKey("EDOLLAR"), compute)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))

	_, ok := suite.cache.Lookup(suite.rollKey("EDOLLAR"))
	suite.False(ok)
	suite.Equal(int64(1), suite.cache.Stats().Failures)

	value, err := GetOrCompute(suite.ctx, suite.cache, suite.rollKey("EDOLLAR"), compute)
	suite.Require().NoError(err)
	suite.Equal(7, value)
	suite.Equal(2, calls)
}

func (suite *CacheTestSuite) TestCopyOnRead() {
	key := suite.rollKey("EDOLLAR")
	original := suite.series(1, 2, 3)

	first, err := GetOrCompute(suite.ctx, suite.cache, key, func(context.Context) (types.Series, error) {
		return original, nil
	})
	suite.Require().NoError(err)

	// Neither the producer's slice nor a consumer's copy may reach the cache.
	original.Values[0] = 100
	first.Values[1] = 200

	second, err := GetOrCompute(suite.ctx, suite.cache, key, func(context.Context) (types.Series, error) {
		suite.Fail("should not recompute")
		return types.Series{}, nil
	})
	suite.Require().NoError(err)
	suite.Equal([]float64{1, 2, 3}, second.Values)
}

func (suite *CacheTestSuite) TestTypeMismatch() {
	key := suite.rollKey("EDOLLAR")

	_, err := GetOrCompute(suite.ctx, suite.cache, key, func(context.Context) (int, error) { return 1, nil })
	suite.Require().NoError(err)

	_, err = GetOrCompute(suite.ctx, suite.cache, key, func(context.Context) (string, error) { return "x", nil })
	suite.True(errors.HasCode(err, errors.ErrCodeCacheTypeMismatch))
}

func (suite *CacheTestSuite) TestCyclicComputation() {
	a := NewKey("stage", "a", "EDOLLAR")
	b := NewKey("stage", "b", "EDOLLAR")

	var computeA func(ctx context.Context) (int, error)

	computeB := func(ctx context.Context) (int, error) {
		return GetOrCompute(ctx, suite.cache, a, computeA)
	}
	computeA = func(ctx context.Context) (int, error) {
		return GetOrCompute(ctx, suite.cache, b, computeB)
	}

	_, err := GetOrCompute(suite.ctx, suite.cache, a, computeA)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeCyclicComputation))
	suite.Contains(err.Error(), "stage/a/EDOLLAR -> stage/b/EDOLLAR -> stage/a/EDOLLAR")
	suite.Empty(suite.cache.Keys())
}

func (suite *CacheTestSuite) TestComputationPath() {
	outer := NewKey("stage", "outer", "EDOLLAR")
	inner := NewKey("stage", "inner", "EDOLLAR")

	var path []Key

	_, err := GetOrCompute(suite.ctx, suite.cache, outer, func(ctx context.Context) (int, error) {
		return GetOrCompute(ctx, suite.cache, inner, func(ctx context.Context) (int, error) {
			path = ComputationPath(ctx)
			return 1, nil
		})
	})
	suite.Require().NoError(err)
	suite.Equal([]Key{outer, inner}, path)
	suite.Empty(ComputationPath(suite.ctx))
}

func (suite *CacheTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	calls := 0
	_, err := GetOrCompute(ctx, suite.cache, suite.rollKey("EDOLLAR"), func(context.Context) (int, error) {
		calls++
		return 1, nil
	})
	suite.ErrorIs(err, context.Canceled)
	suite.Zero(calls)
}

func (suite *CacheTestSuite) TestConcurrentCallersShareOneComputation() {
	var calls atomic.Int32

	release := make(chan struct{})
	compute := func(context.Context) (float64, error) {
		calls.Add(1)
		<-release

		return math.Pi, nil
	}

	var wg sync.WaitGroup

	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			value, err := GetOrCompute(suite.ctx, suite.cache, suite.rollKey("EDOLLAR"), compute)
			suite.NoError(err)
			results[i] = value
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	suite.Equal(int32(1), calls.Load())

	for _, v := range results {
		suite.Equal(math.Pi, v)
	}
}

func (suite *CacheTestSuite) TestKeysWithSameStringComputeSeparately() {
	first := NewKey("rawdata", "roll/x", "EDOLLAR")
	second := NewKey("rawdata", "roll", "x/EDOLLAR")
	suite.Require().Equal(first.String(), second.String())
	suite.Require().NotEqual(first.flightKey(), second.flightKey())

	var calls atomic.Int32

	release := make(chan struct{})
	compute := func(value int) func(context.Context) (int, error) {
		return func(context.Context) (int, error) {
			calls.Add(1)
			<-release

			return value, nil
		}
	}

	var wg sync.WaitGroup

	results := make([]int, 2)
	for i, key := range []Key{first, second} {
		wg.Add(1)

		go func(i int, key Key) {
			defer wg.Done()

			value, err := GetOrCompute(suite.ctx, suite.cache, key, compute(i+1))
			suite.NoError(err)
			results[i] = value
		}(i, key)
	}

	suite.Eventually(func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	suite.Equal([]int{1, 2}, results)
	suite.Len(suite.cache.Keys(), 2)
}

func (suite *CacheTestSuite) TestInvalidate() {
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	key := suite.rollKey("EDOLLAR")

	_, err := GetOrCompute(suite.ctx, suite.cache, key, compute)
	suite.Require().NoError(err)

	suite.True(suite.cache.Invalidate(key))
	suite.False(suite.cache.Invalidate(key))

	value, err := GetOrCompute(suite.ctx, suite.cache, key, compute)
	suite.Require().NoError(err)
	suite.Equal(2, value)
}

func (suite *CacheTestSuite) fill() {
	for _, instrument := range []types.InstrumentKey{"EDOLLAR", "US10"} {
		for _, computation := range []ComputationName{"raw_data_prices", "raw_futures_roll"} {
			_, err := GetOrCompute(suite.ctx, suite.cache, NewKey("rawdata", computation, instrument),
				func(context.Context) (string, error) {
					return fmt.Sprintf("%s-%s", computation, instrument), nil
				})
			suite.Require().NoError(err)
		}
	}

	_, err := GetOrCompute(suite.ctx, suite.cache, NewGlobalKey("carryfit", "fit_windows"),
		func(context.Context) (int, error) { return 1, nil })
	suite.Require().NoError(err)
}

func (suite *CacheTestSuite) TestProtectedEntriesSurviveSoftReset() {
	suite.cache.Protect("rawdata", "raw_data_prices")
	suite.fill()

	suite.True(suite.cache.IsProtected(NewKey("rawdata", "raw_data_prices", "US10")))
	suite.False(suite.cache.IsProtected(suite.rollKey("US10")))

	suite.cache.Reset(false)
	suite.Equal([]Key{
		NewKey("rawdata", "raw_data_prices", "EDOLLAR"),
		NewKey("rawdata", "raw_data_prices", "US10"),
	}, suite.cache.Keys())

	suite.cache.Reset(true)
	suite.Empty(suite.cache.Keys())
}

func (suite *CacheTestSuite) TestInvalidateInstrument() {
	suite.cache.Protect("rawdata", "raw_data_prices")
	suite.fill()

	suite.Equal(1, suite.cache.InvalidateInstrument("EDOLLAR", false))
	suite.Equal(1, suite.cache.InvalidateInstrument("EDOLLAR", true))
	suite.Equal(0, suite.cache.InvalidateInstrument("EDOLLAR", true))
	suite.Len(suite.cache.Keys(), 3)
}

func (suite *CacheTestSuite) TestInvalidateStage() {
	suite.fill()

	suite.Equal(1, suite.cache.InvalidateStage("carryfit", false))
	suite.Len(suite.cache.Keys(), 4)

	for _, key := range suite.cache.Keys() {
		suite.Equal(StageName("rawdata"), key.Stage)
	}
}

func (suite *CacheTestSuite) TestInvalidationDuringComputationDropsResult() {
	key := suite.rollKey("EDOLLAR")

	_, err := GetOrCompute(suite.ctx, suite.cache, key, func(context.Context) (int, error) {
		suite.cache.Reset(true)
		return 1, nil
	})
	suite.Require().NoError(err)

	_, ok := suite.cache.Lookup(key)
	suite.False(ok)
}

func (suite *CacheTestSuite) TestKeyString() {
	suite.Equal("rawdata/raw_futures_roll/EDOLLAR", suite.rollKey("EDOLLAR").String())
	suite.Equal("carryfit/fit_windows", NewGlobalKey("carryfit", "fit_windows").String())
	suite.True(NewGlobalKey("carryfit", "fit_windows").IsGlobal())
	suite.False(suite.rollKey("EDOLLAR").IsGlobal())
}
