package statistics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerStatisticsBuilder(t *testing.T) {
	b := NewIntegerStatisticsBuilder()
	b.AddValue(10)
	b.AddValue(-5)
	b.AddValue(7)
	b.AddNull()

	stats := b.Build()
	assert.Equal(t, uint64(3), stats.NumberOfValues)
	assert.True(t, stats.HasNull)
	require.NotNil(t, stats.IntegerStatistics)
	assert.Equal(t, int64(-5), stats.IntegerStatistics.Minimum)
	assert.Equal(t, int64(10), stats.IntegerStatistics.Maximum)
	assert.Equal(t, int64(12), stats.IntegerStatistics.Sum)
}

func TestIntegerStatisticsBuilderEmpty(t *testing.T) {
	stats := NewIntegerStatisticsBuilder().Build()
	assert.Zero(t, stats.NumberOfValues)
	assert.Nil(t, stats.IntegerStatistics)
}

func TestDateStatisticsBuilder(t *testing.T) {
	b := NewDateStatisticsBuilder()
	b.AddValue(19000)
	b.AddValue(-30)

	stats := b.Build()
	require.NotNil(t, stats.DateStatistics)
	assert.Equal(t, int32(-30), stats.DateStatistics.Minimum)
	assert.Equal(t, int32(19000), stats.DateStatistics.Maximum)
	assert.Nil(t, stats.IntegerStatistics)
}

func TestBooleanStatisticsBuilder(t *testing.T) {
	b := NewBooleanStatisticsBuilder()
	b.AddValue(true)
	b.AddValue(false)
	b.AddValue(true)

	stats := b.Build()
	require.NotNil(t, stats.BooleanStatistics)
	assert.Equal(t, uint64(2), stats.BooleanStatistics.TrueCount)
	assert.Equal(t, uint64(3), stats.NumberOfValues)
}

func TestDoubleStatisticsBuilder(t *testing.T) {
	b := NewDoubleStatisticsBuilder()
	b.AddValue(1.5)
	b.AddValue(-2.25)

	stats := b.Build()
	require.NotNil(t, stats.DoubleStatistics)
	assert.Equal(t, -2.25, stats.DoubleStatistics.Minimum)
	assert.Equal(t, 1.5, stats.DoubleStatistics.Maximum)
	assert.Equal(t, -0.75, stats.DoubleStatistics.Sum)
}

func TestStringStatisticsBuilderRetainsWithinLimit(t *testing.T) {
	b := NewStringStatisticsBuilder(10)
	b.AddValue("pear")
	b.AddValue("apple")

	stats := b.Build()
	require.NotNil(t, stats.StringStatistics)
	assert.Equal(t, "apple", stats.StringStatistics.Minimum)
	assert.Equal(t, "pear", stats.StringStatistics.Maximum)
	assert.Equal(t, int64(9), stats.StringStatistics.Sum)
}

func TestStringStatisticsBuilderOverflow(t *testing.T) {
	b := NewStringStatisticsBuilder(3)
	b.AddValue("ab")
	b.AddValue("much too long")

	stats := b.Build()
	require.NotNil(t, stats.StringStatistics)
	assert.Empty(t, stats.StringStatistics.Minimum)
	assert.Empty(t, stats.StringStatistics.Maximum)
	assert.Equal(t, int64(15), stats.StringStatistics.Sum)
}

func TestBinaryStatisticsBuilder(t *testing.T) {
	b := NewBinaryStatisticsBuilder()
	b.AddSlice([]byte{1, 2, 3})
	b.AddSlice([]byte{4})

	stats := b.Build()
	require.NotNil(t, stats.BinaryStatistics)
	assert.Equal(t, int64(4), stats.BinaryStatistics.Sum)
	assert.Equal(t, uint64(2), stats.NumberOfValues)
}

func TestDecimalStatisticsBuilder(t *testing.T) {
	b := NewDecimalStatisticsBuilder()
	b.AddValue(decimal.RequireFromString("10.25"))
	b.AddValue(decimal.RequireFromString("-3.50"))

	stats := b.Build()
	require.NotNil(t, stats.DecimalStatistics)
	assert.True(t, stats.DecimalStatistics.Minimum.Equal(decimal.RequireFromString("-3.50")))
	assert.True(t, stats.DecimalStatistics.Maximum.Equal(decimal.RequireFromString("10.25")))
}

func TestTimestampStatisticsBuilder(t *testing.T) {
	b := NewTimestampStatisticsBuilder()
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.AddValue(late)
	b.AddValue(early)

	stats := b.Build()
	require.NotNil(t, stats.TimestampStatistics)
	assert.Equal(t, early.UnixMilli(), stats.TimestampStatistics.Minimum)
	assert.Equal(t, late.UnixMilli(), stats.TimestampStatistics.Maximum)
}

func TestCountingBuilder(t *testing.T) {
	b := NewCountingBuilder()
	b.AddValue()
	b.AddValue()
	b.AddNull()

	stats := b.Build()
	assert.Equal(t, uint64(2), stats.NumberOfValues)
	assert.True(t, stats.HasNull)
	assert.Nil(t, stats.IntegerStatistics)
	assert.Nil(t, stats.StringStatistics)
}
