package writer

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/skylarkdata/orcio/pkg/compression"
	"github.com/skylarkdata/orcio/pkg/encryption"
	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/metadata/statistics"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
	"github.com/skylarkdata/orcio/pkg/types"
)

// columnWriterBase carries the state every variant shares: schema position,
// logical type, the shared-configuration collaborators, and the encode
// buffer. Variants embed it and add their statistics builder and encoding.
type columnWriterBase struct {
	ordinal    int
	logical    types.Type
	encryptor  *encryption.DataEncryptor
	compressor compression.Compressor
	sink       metadata.Writer
	buf        []byte
	closed     bool
}

func newColumnWriterBase(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (columnWriterBase, error) {
	compressor, err := compression.NewCompressor(opts.Compression)
	if err != nil {
		return columnWriterBase{}, err
	}
	return columnWriterBase{
		ordinal:    ordinal,
		logical:    logical,
		encryptor:  encryptor,
		compressor: compressor,
		sink:       opts.MetadataSink,
		buf:        make([]byte, 0, opts.BufferSize),
	}, nil
}

func (b *columnWriterBase) Ordinal() int                         { return b.ordinal }
func (b *columnWriterBase) NestedWriters() []ColumnWriter        { return nil }
func (b *columnWriterBase) Encryptor() *encryption.DataEncryptor { return b.encryptor }
func (b *columnWriterBase) EstimatedSize() int64                 { return int64(len(b.buf)) }

func (b *columnWriterBase) checkOpen() error {
	if b.closed {
		return orcerrors.Newf(orcerrors.ErrorTypeInternal, "column %d is closed", b.ordinal)
	}
	return nil
}

// flush compresses the encode buffer, applies the column's encryption handle
// when one is attached, and reports the final sizes and statistics to the
// metadata sink.
func (b *columnWriterBase) flush(stats statistics.ColumnStatistics) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	b.closed = true

	out, err := b.compressor.Compress(b.buf)
	if err != nil {
		return orcerrors.Wrap(err, orcerrors.ErrorTypeData, "compressing column buffer").
			WithDetail("column", b.ordinal)
	}
	if b.encryptor != nil {
		iv := make([]byte, b.encryptor.BlockSize())
		binary.BigEndian.PutUint32(iv, uint32(b.ordinal))
		out, err = b.encryptor.Encrypt(iv, out)
		if err != nil {
			return orcerrors.Wrap(err, orcerrors.ErrorTypeData, "encrypting column buffer").
				WithDetail("column", b.ordinal)
		}
	}
	if err := b.sink.RecordBytesOnDisk(b.ordinal, int64(len(out))); err != nil {
		return err
	}
	return b.sink.RecordColumnStatistics(b.ordinal, stats)
}

// appendPresent writes the presence marker preceding each value.
func (b *columnWriterBase) appendPresent(present bool) {
	if present {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
}

type booleanColumnWriter struct {
	columnWriterBase
	stats *statistics.BooleanStatisticsBuilder
}

func newBooleanColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &booleanColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewBooleanStatisticsBuilder(),
	}, nil
}

func (w *booleanColumnWriter) Variant() string { return "boolean" }

func (w *booleanColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		b, err := coerceBool(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		if b {
			w.buf = append(w.buf, 1)
		} else {
			w.buf = append(w.buf, 0)
		}
		w.stats.AddValue(b)
	}
	return nil
}

func (w *booleanColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *booleanColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

type byteColumnWriter struct {
	columnWriterBase
	stats statistics.LongStatisticsBuilder
}

func newByteColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &byteColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewIntegerStatisticsBuilder(),
	}, nil
}

func (w *byteColumnWriter) Variant() string { return "byte" }

func (w *byteColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		n, err := coerceInt64(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		w.buf = append(w.buf, byte(n))
		w.stats.AddValue(n)
	}
	return nil
}

func (w *byteColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *byteColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

type floatColumnWriter struct {
	columnWriterBase
	stats *statistics.DoubleStatisticsBuilder
}

func newFloatColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &floatColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewDoubleStatisticsBuilder(),
	}, nil
}

func (w *floatColumnWriter) Variant() string { return "float" }

func (w *floatColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		f, err := coerceFloat64(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(float32(f)))
		w.stats.AddValue(f)
	}
	return nil
}

func (w *floatColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *floatColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

type doubleColumnWriter struct {
	columnWriterBase
	stats *statistics.DoubleStatisticsBuilder
}

func newDoubleColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &doubleColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewDoubleStatisticsBuilder(),
	}, nil
}

func (w *doubleColumnWriter) Variant() string { return "double" }

func (w *doubleColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		f, err := coerceFloat64(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(f))
		w.stats.AddValue(f)
	}
	return nil
}

func (w *doubleColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *doubleColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

// longColumnWriter encodes the integer family (short, int, long, date) as
// varints. The statistics builder factory decides whether it accumulates
// integer or date statistics.
type longColumnWriter struct {
	columnWriterBase
	stats statistics.LongStatisticsBuilder
}

func newLongColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor, newStats statistics.LongBuilderFactory) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &longColumnWriter{
		columnWriterBase: base,
		stats:            newStats(),
	}, nil
}

func (w *longColumnWriter) Variant() string { return "long" }

func (w *longColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		n, err := coerceInt64(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		w.buf = binary.AppendVarint(w.buf, n)
		w.stats.AddValue(n)
	}
	return nil
}

func (w *longColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *longColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

// decimalColumnWriter encodes fixed-point values. Its statistics kind is
// fixed; there is no pluggable factory.
type decimalColumnWriter struct {
	columnWriterBase
	stats *statistics.DecimalStatisticsBuilder
	scale int32
}

func newDecimalColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &decimalColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewDecimalStatisticsBuilder(),
		scale:            int32(logical.Scale),
	}, nil
}

func (w *decimalColumnWriter) Variant() string { return "decimal" }

func (w *decimalColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		d, err := coerceDecimal(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		unscaled := d.Shift(w.scale).IntPart()
		w.buf = binary.AppendVarint(w.buf, unscaled)
		w.stats.AddValue(d)
	}
	return nil
}

func (w *decimalColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *decimalColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

// timestampColumnWriter encodes seconds and nanoseconds relative to the
// storage timezone.
type timestampColumnWriter struct {
	columnWriterBase
	stats    *statistics.TimestampStatisticsBuilder
	location *time.Location
}

func newTimestampColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &timestampColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewTimestampStatisticsBuilder(),
		location:         opts.Timezone,
	}, nil
}

func (w *timestampColumnWriter) Variant() string { return "timestamp" }

func (w *timestampColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		t, err := coerceTime(v, w.ordinal)
		if err != nil {
			return err
		}
		t = t.In(w.location)
		w.appendPresent(true)
		w.buf = binary.AppendVarint(w.buf, t.Unix())
		w.buf = binary.AppendVarint(w.buf, int64(t.Nanosecond()))
		w.stats.AddValue(t)
	}
	return nil
}

func (w *timestampColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *timestampColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}
