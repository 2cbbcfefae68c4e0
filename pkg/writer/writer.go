// Package writer builds the per-column writer tree for one ORC or DWRF file.
//
// CreateColumnWriter is the single construction entry point: it walks the
// flattened physical schema and the parallel logical type tree in lock-step,
// dispatches each node to its encoder variant, recurses into list/map/struct
// nodes, and attaches per-column encryption handles by ordinal. Construction
// either yields the complete root writer or fails; no partial tree survives
// an error.
//
// The produced writers share one immutable Options value. Writing values and
// closing the tree is sequential; independent trees may be built and used
// concurrently.
package writer

import (
	"time"

	"github.com/skylarkdata/orcio/pkg/encryption"
	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/metadata/statistics"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
)

// Encoding selects the on-disk format dialect. The dialects differ in which
// physical kinds they may encode: DWRF rejects date, decimal, and char.
type Encoding uint8

const (
	// ORC is the primary dialect; it supports every physical kind.
	ORC Encoding = iota
	// DWRF is the secondary dialect.
	DWRF
)

func (e Encoding) String() string {
	switch e {
	case ORC:
		return "ORC"
	case DWRF:
		return "DWRF"
	}
	return "Encoding(?)"
}

// ParseEncoding maps a dialect name to its Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "", "orc":
		return ORC, nil
	case "dwrf":
		return DWRF, nil
	}
	return ORC, orcerrors.Newf(orcerrors.ErrorTypeConfig, "unknown dialect %q", name)
}

// ColumnWriter is the contract every variant satisfies: accept values,
// buffer encoded output, accumulate statistics, and report to the metadata
// sink on close. Composite variants exclusively own their children.
type ColumnWriter interface {
	// Ordinal returns the writer's position in the flattened schema.
	Ordinal() int

	// Variant names the concrete encoder variant, e.g. "long" or
	// "slice-dictionary".
	Variant() string

	// WriteBatch appends a batch of values. A nil element records a null.
	WriteBatch(values []interface{}) error

	// NestedWriters returns the direct children in declared order; leaf
	// variants return nil.
	NestedWriters() []ColumnWriter

	// Encryptor returns the column-specific encryption handle, or nil when
	// the column is written in the clear.
	Encryptor() *encryption.DataEncryptor

	// ColumnStatistics returns the statistics accumulated so far for this
	// writer's own column (not its children).
	ColumnStatistics() statistics.ColumnStatistics

	// EstimatedSize returns the bytes buffered by this writer and its
	// children.
	EstimatedSize() int64

	// Close flushes buffered content through the compressor (and the
	// encryption handle, when attached) and reports final statistics to
	// the metadata sink. Closing twice is an error.
	Close() error
}

// MapEntry is one key/value pair of a map column value. Batches carry
// []MapEntry values so entry order stays deterministic.
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

// Options is the shared build-time configuration threaded unchanged through
// every recursive construction call. It is never mutated during a build.
type Options struct {
	// Compression selects the codec every writer's buffer flushes through.
	Compression metadata.CompressionKind

	// BufferSize bounds each writer's encode buffer before it spills
	// through the compressor. Must be positive.
	BufferSize int

	// Encoding selects the format dialect.
	Encoding Encoding

	// Timezone is the storage timezone; required only when the schema
	// contains timestamp nodes.
	Timezone *time.Location

	// StringStatisticsLimit bounds how much string content the dictionary
	// writer's statistics may retain. Must be positive.
	StringStatisticsLimit int

	// Encryption resolves per-column encryption handles by ordinal. May be
	// nil when no column is encrypted.
	Encryption *encryption.Info

	// MetadataSink receives per-column statistics as writers close.
	MetadataSink metadata.Writer
}

func (o Options) validate() error {
	if o.Encoding != ORC && o.Encoding != DWRF {
		return orcerrors.Newf(orcerrors.ErrorTypeConfig, "unknown dialect: %d", o.Encoding)
	}
	if o.BufferSize <= 0 {
		return orcerrors.Newf(orcerrors.ErrorTypeConfig, "buffer size must be positive, got %d", o.BufferSize)
	}
	if o.StringStatisticsLimit <= 0 {
		return orcerrors.Newf(orcerrors.ErrorTypeConfig,
			"string statistics limit must be positive, got %d", o.StringStatisticsLimit)
	}
	if o.MetadataSink == nil {
		return orcerrors.New(orcerrors.ErrorTypeConfig, "metadata sink is required")
	}
	return nil
}
