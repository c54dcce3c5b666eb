package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
	base time.Time
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) SetupTest() {
	suite.base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *SeriesTestSuite) day(n int) time.Time {
	return suite.base.AddDate(0, 0, n)
}

func (suite *SeriesTestSuite) series(name string, values ...float64) Series {
	index := make([]time.Time, len(values))
	for i := range values {
		index[i] = suite.day(i)
	}

	s, err := NewSeries(name, index, values)
	suite.Require().NoError(err)

	return s
}

func (suite *SeriesTestSuite) TestNewSeriesValidation() {
	_, err := NewSeries("bad", []time.Time{suite.day(0)}, []float64{1, 2})
	suite.True(errors.HasCode(err, errors.ErrCodeMisalignedSeries))

	_, err = NewSeries("unordered", []time.Time{suite.day(1), suite.day(0)}, []float64{1, 2})
	suite.True(errors.HasCode(err, errors.ErrCodeMisalignedSeries))

	s, err := NewSeries("repeated", []time.Time{suite.day(0), suite.day(0)}, []float64{1, 2})
	suite.NoError(err)
	suite.Equal(2, s.Len())
}

func (suite *SeriesTestSuite) TestCloneIsIndependent() {
	s := suite.series("x", 1, 2, 3)
	clone := s.Clone()
	clone.Values[0] = 100
	clone.Index[0] = suite.day(-10)

	suite.Equal(1.0, s.Values[0])
	suite.Equal(suite.day(0), s.Index[0])
}

func (suite *SeriesTestSuite) TestEqualTreatsNaNAsEqual() {
	a := suite.series("a", 1, math.NaN(), 3)
	b := suite.series("b", 1, math.NaN(), 3)
	c := suite.series("c", 1, 2, 3)

	suite.True(a.Equal(b))
	suite.False(a.Equal(c))
	suite.False(a.Equal(suite.series("d", 1, math.NaN())))
}

func (suite *SeriesTestSuite) TestZeroToNaN() {
	s := suite.series("roll", 0.5, 0, -0.25)
	out := s.ZeroToNaN()

	suite.Equal(0.5, out.Values[0])
	suite.True(math.IsNaN(out.Values[1]))
	suite.Equal(-0.25, out.Values[2])
	suite.Equal(0.0, s.Values[1], "receiver must be untouched")
}

func (suite *SeriesTestSuite) TestCollapseRepeats() {
	s := suite.series("roll", 1, 1, 2, 2, 2, 1, math.NaN(), math.NaN(), 1)
	out := s.CollapseRepeats()

	suite.Equal([]time.Time{suite.day(0), suite.day(2), suite.day(5), suite.day(6), suite.day(8)}, out.Index)
	suite.Equal(1.0, out.Values[0])
	suite.Equal(2.0, out.Values[1])
	suite.Equal(1.0, out.Values[2])
	suite.True(math.IsNaN(out.Values[3]))
	suite.Equal(1.0, out.Values[4])
}

func (suite *SeriesTestSuite) TestSubAligned() {
	price := suite.series("PRICE", 100, 101, 102)
	carry := suite.series("CARRY", 99.5, math.NaN(), 102.5)

	out, err := price.Sub(carry)
	suite.Require().NoError(err)
	suite.Equal(0.5, out.Values[0])
	suite.True(math.IsNaN(out.Values[1]))
	suite.Equal(-0.5, out.Values[2])
}

func (suite *SeriesTestSuite) TestDivUnionAlignment() {
	a, err := NewSeries("a", []time.Time{suite.day(0), suite.day(2), suite.day(3)}, []float64{1, 4, 9})
	suite.Require().NoError(err)
	b, err := NewSeries("b", []time.Time{suite.day(1), suite.day(2), suite.day(3)}, []float64{5, 2, 3})
	suite.Require().NoError(err)

	out, err := a.Div(b)
	suite.Require().NoError(err)
	suite.Equal([]time.Time{suite.day(0), suite.day(1), suite.day(2), suite.day(3)}, out.Index)
	suite.True(math.IsNaN(out.Values[0]))
	suite.True(math.IsNaN(out.Values[1]))
	suite.Equal(2.0, out.Values[2])
	suite.Equal(3.0, out.Values[3])
}

func (suite *SeriesTestSuite) TestCombineRejectsRepeatedTimestamps() {
	a, err := NewSeries("a", []time.Time{suite.day(0), suite.day(0)}, []float64{1, 2})
	suite.Require().NoError(err)

	_, err = a.Div(suite.series("b", 1))
	suite.True(errors.HasCode(err, errors.ErrCodeMisalignedSeries))
}

func (suite *SeriesTestSuite) TestBetweenAndFFill() {
	s := suite.series("x", math.NaN(), 1, math.NaN(), 3, 4)

	between := s.Between(suite.day(1), suite.day(3))
	suite.Equal(3, between.Len())
	suite.Equal(suite.day(1), between.Start())
	suite.Equal(suite.day(3), between.End())

	filled := s.FFill()
	suite.True(math.IsNaN(filled.Values[0]))
	suite.Equal([]float64{1, 1, 3, 4}, filled.Values[1:])

	last, ok := s.LastValid()
	suite.True(ok)
	suite.Equal(4.0, last)
	suite.Equal([]float64{1, 3, 4}, s.ValidValues())

	_, ok = suite.series("empty").LastValid()
	suite.False(ok)
}

func (suite *SeriesTestSuite) TestDropDuplicateIndexKeepsLast() {
	index := []time.Time{suite.day(0), suite.day(1), suite.day(1), suite.day(1), suite.day(2)}
	s, err := NewSeries("price", index, []float64{1, 2, 3, math.NaN(), 5})
	suite.Require().NoError(err)

	out := s.DropDuplicateIndex()
	suite.Equal([]time.Time{suite.day(0), suite.day(1), suite.day(2)}, out.Index)
	suite.Equal(1.0, out.Values[0])
	suite.True(math.IsNaN(out.Values[1]))
	suite.Equal(5.0, out.Values[2])
	suite.Equal(5, s.Len(), "receiver must be untouched")
}
