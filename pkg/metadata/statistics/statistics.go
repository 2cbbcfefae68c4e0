// Package statistics provides the per-column summary-statistics accumulators
// that leaf column writers feed while encoding values.
//
// Each builder tracks the aggregates its column kind supports (min/max/sum
// for numbers, retained min/max for strings, total length for binary) plus
// the value and null counts common to every column. Build produces an
// immutable ColumnStatistics snapshot for the metadata sink.
package statistics

import (
	"time"

	"github.com/shopspring/decimal"
)

// ColumnStatistics is the immutable snapshot a builder produces. Exactly one
// of the typed sub-statistics is set, matching the column's kind; composite
// columns carry only the counts.
type ColumnStatistics struct {
	NumberOfValues uint64
	HasNull        bool

	BooleanStatistics   *BooleanStatistics
	IntegerStatistics   *IntegerStatistics
	DoubleStatistics    *DoubleStatistics
	StringStatistics    *StringStatistics
	DateStatistics      *DateStatistics
	BinaryStatistics    *BinaryStatistics
	DecimalStatistics   *DecimalStatistics
	TimestampStatistics *TimestampStatistics
}

type BooleanStatistics struct {
	TrueCount uint64
}

type IntegerStatistics struct {
	Minimum int64
	Maximum int64
	Sum     int64
}

type DoubleStatistics struct {
	Minimum float64
	Maximum float64
	Sum     float64
}

type StringStatistics struct {
	Minimum string
	Maximum string
	Sum     int64 // total length of all values
}

type DateStatistics struct {
	Minimum int32 // days since the Unix epoch
	Maximum int32
}

type BinaryStatistics struct {
	Sum int64 // total length of all values
}

type DecimalStatistics struct {
	Minimum decimal.Decimal
	Maximum decimal.Decimal
}

type TimestampStatistics struct {
	Minimum int64 // epoch milliseconds in the storage timezone
	Maximum int64
}

// Builder is the capability common to every statistics accumulator.
type Builder interface {
	// AddNull records a missing value.
	AddNull()
	// Build returns the snapshot of everything recorded so far.
	Build() ColumnStatistics
}

// LongStatisticsBuilder accumulates int64-shaped values. Both the integer
// and the date builders satisfy it, so the integer-family column writer can
// be parameterized with either.
type LongStatisticsBuilder interface {
	Builder
	AddValue(value int64)
}

// LongBuilderFactory selects which int64-shaped accumulator the
// integer-family column writer uses.
type LongBuilderFactory func() LongStatisticsBuilder

// SliceStatisticsBuilder accumulates byte-slice-shaped values.
type SliceStatisticsBuilder interface {
	Builder
	AddSlice(value []byte)
}

// SliceBuilderFactory selects which slice-shaped accumulator the direct
// variable-length column writer uses.
type SliceBuilderFactory func() SliceStatisticsBuilder

type counts struct {
	numberOfValues uint64
	hasNull        bool
}

func (c *counts) AddNull() {
	c.hasNull = true
}

func (c *counts) snapshot() ColumnStatistics {
	return ColumnStatistics{
		NumberOfValues: c.numberOfValues,
		HasNull:        c.hasNull,
	}
}

// CountingBuilder tracks only value and null counts. Composite column
// writers (list, map, struct) use it because their children carry the typed
// aggregates.
type CountingBuilder struct {
	counts
}

func NewCountingBuilder() *CountingBuilder {
	return &CountingBuilder{}
}

// AddValue records one present value.
func (b *CountingBuilder) AddValue() {
	b.numberOfValues++
}

func (b *CountingBuilder) Build() ColumnStatistics {
	return b.snapshot()
}

// BooleanStatisticsBuilder accumulates boolean columns.
type BooleanStatisticsBuilder struct {
	counts
	trueCount uint64
}

func NewBooleanStatisticsBuilder() *BooleanStatisticsBuilder {
	return &BooleanStatisticsBuilder{}
}

func (b *BooleanStatisticsBuilder) AddValue(value bool) {
	b.numberOfValues++
	if value {
		b.trueCount++
	}
}

func (b *BooleanStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.BooleanStatistics = &BooleanStatistics{TrueCount: b.trueCount}
	}
	return stats
}

// IntegerStatisticsBuilder accumulates short/int/long columns.
type IntegerStatisticsBuilder struct {
	counts
	minimum int64
	maximum int64
	sum     int64
}

func NewIntegerStatisticsBuilder() LongStatisticsBuilder {
	return &IntegerStatisticsBuilder{}
}

func (b *IntegerStatisticsBuilder) AddValue(value int64) {
	if b.numberOfValues == 0 || value < b.minimum {
		b.minimum = value
	}
	if b.numberOfValues == 0 || value > b.maximum {
		b.maximum = value
	}
	b.sum += value
	b.numberOfValues++
}

func (b *IntegerStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.IntegerStatistics = &IntegerStatistics{
			Minimum: b.minimum,
			Maximum: b.maximum,
			Sum:     b.sum,
		}
	}
	return stats
}

// DateStatisticsBuilder accumulates date columns, where values are days
// since the Unix epoch.
type DateStatisticsBuilder struct {
	counts
	minimum int32
	maximum int32
}

func NewDateStatisticsBuilder() LongStatisticsBuilder {
	return &DateStatisticsBuilder{}
}

func (b *DateStatisticsBuilder) AddValue(value int64) {
	days := int32(value)
	if b.numberOfValues == 0 || days < b.minimum {
		b.minimum = days
	}
	if b.numberOfValues == 0 || days > b.maximum {
		b.maximum = days
	}
	b.numberOfValues++
}

func (b *DateStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.DateStatistics = &DateStatistics{
			Minimum: b.minimum,
			Maximum: b.maximum,
		}
	}
	return stats
}

// DoubleStatisticsBuilder accumulates float and double columns.
type DoubleStatisticsBuilder struct {
	counts
	minimum float64
	maximum float64
	sum     float64
}

func NewDoubleStatisticsBuilder() *DoubleStatisticsBuilder {
	return &DoubleStatisticsBuilder{}
}

func (b *DoubleStatisticsBuilder) AddValue(value float64) {
	if b.numberOfValues == 0 || value < b.minimum {
		b.minimum = value
	}
	if b.numberOfValues == 0 || value > b.maximum {
		b.maximum = value
	}
	b.sum += value
	b.numberOfValues++
}

func (b *DoubleStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.DoubleStatistics = &DoubleStatistics{
			Minimum: b.minimum,
			Maximum: b.maximum,
			Sum:     b.sum,
		}
	}
	return stats
}

// StringStatisticsBuilder accumulates char/varchar/string columns. The limit
// bounds how much string content the retained min/max may hold: once any
// observed value exceeds it, min/max are dropped from the snapshot while the
// length sum is kept.
type StringStatisticsBuilder struct {
	counts
	limit    int
	minimum  string
	maximum  string
	sum      int64
	overflow bool
}

func NewStringStatisticsBuilder(limit int) *StringStatisticsBuilder {
	return &StringStatisticsBuilder{limit: limit}
}

func (b *StringStatisticsBuilder) AddValue(value string) {
	if len(value) > b.limit {
		b.overflow = true
	}
	if !b.overflow {
		if b.numberOfValues == 0 || value < b.minimum {
			b.minimum = value
		}
		if b.numberOfValues == 0 || value > b.maximum {
			b.maximum = value
		}
	}
	b.sum += int64(len(value))
	b.numberOfValues++
}

func (b *StringStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		s := &StringStatistics{Sum: b.sum}
		if !b.overflow {
			s.Minimum = b.minimum
			s.Maximum = b.maximum
		}
		stats.StringStatistics = s
	}
	return stats
}

// BinaryStatisticsBuilder accumulates binary columns.
type BinaryStatisticsBuilder struct {
	counts
	sum int64
}

func NewBinaryStatisticsBuilder() SliceStatisticsBuilder {
	return &BinaryStatisticsBuilder{}
}

func (b *BinaryStatisticsBuilder) AddSlice(value []byte) {
	b.sum += int64(len(value))
	b.numberOfValues++
}

func (b *BinaryStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.BinaryStatistics = &BinaryStatistics{Sum: b.sum}
	}
	return stats
}

// DecimalStatisticsBuilder accumulates decimal columns.
type DecimalStatisticsBuilder struct {
	counts
	minimum decimal.Decimal
	maximum decimal.Decimal
}

func NewDecimalStatisticsBuilder() *DecimalStatisticsBuilder {
	return &DecimalStatisticsBuilder{}
}

func (b *DecimalStatisticsBuilder) AddValue(value decimal.Decimal) {
	if b.numberOfValues == 0 || value.LessThan(b.minimum) {
		b.minimum = value
	}
	if b.numberOfValues == 0 || value.GreaterThan(b.maximum) {
		b.maximum = value
	}
	b.numberOfValues++
}

func (b *DecimalStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.DecimalStatistics = &DecimalStatistics{
			Minimum: b.minimum,
			Maximum: b.maximum,
		}
	}
	return stats
}

// TimestampStatisticsBuilder accumulates timestamp columns in epoch
// milliseconds relative to the storage timezone.
type TimestampStatisticsBuilder struct {
	counts
	minimum int64
	maximum int64
}

func NewTimestampStatisticsBuilder() *TimestampStatisticsBuilder {
	return &TimestampStatisticsBuilder{}
}

func (b *TimestampStatisticsBuilder) AddValue(value time.Time) {
	millis := value.UnixMilli()
	if b.numberOfValues == 0 || millis < b.minimum {
		b.minimum = millis
	}
	if b.numberOfValues == 0 || millis > b.maximum {
		b.maximum = millis
	}
	b.numberOfValues++
}

func (b *TimestampStatisticsBuilder) Build() ColumnStatistics {
	stats := b.snapshot()
	if b.numberOfValues > 0 {
		stats.TimestampStatistics = &TimestampStatistics{
			Minimum: b.minimum,
			Maximum: b.maximum,
		}
	}
	return stats
}
