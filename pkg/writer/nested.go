package writer

import (
	"encoding/binary"

	"github.com/skylarkdata/orcio/pkg/encryption"
	"github.com/skylarkdata/orcio/pkg/metadata/statistics"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
	"github.com/skylarkdata/orcio/pkg/types"
)

// listColumnWriter owns exactly one element writer. Its own stream holds row
// lengths; element values flow into the child.
type listColumnWriter struct {
	columnWriterBase
	stats   *statistics.CountingBuilder
	element ColumnWriter
}

func newListColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor, element ColumnWriter) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &listColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewCountingBuilder(),
		element:          element,
	}, nil
}

func (w *listColumnWriter) Variant() string { return "list" }

func (w *listColumnWriter) NestedWriters() []ColumnWriter {
	return []ColumnWriter{w.element}
}

func (w *listColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	var elements []interface{}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		row, ok := v.([]interface{})
		if !ok {
			return orcerrors.Newf(orcerrors.ErrorTypeData,
				"value of type %T is not writable as a list", v).
				WithDetail("column", w.ordinal)
		}
		w.appendPresent(true)
		w.buf = binary.AppendUvarint(w.buf, uint64(len(row)))
		elements = append(elements, row...)
		w.stats.AddValue()
	}
	if len(elements) == 0 {
		return nil
	}
	return w.element.WriteBatch(elements)
}

func (w *listColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *listColumnWriter) EstimatedSize() int64 {
	return int64(len(w.buf)) + w.element.EstimatedSize()
}

func (w *listColumnWriter) Close() error {
	if err := w.element.Close(); err != nil {
		return err
	}
	return w.flush(w.stats.Build())
}

// mapColumnWriter owns a key writer and a value writer, in that order. Its
// own stream holds entry counts.
type mapColumnWriter struct {
	columnWriterBase
	stats *statistics.CountingBuilder
	key   ColumnWriter
	value ColumnWriter
}

func newMapColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor, key, value ColumnWriter) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &mapColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewCountingBuilder(),
		key:              key,
		value:            value,
	}, nil
}

func (w *mapColumnWriter) Variant() string { return "map" }

func (w *mapColumnWriter) NestedWriters() []ColumnWriter {
	return []ColumnWriter{w.key, w.value}
}

func (w *mapColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	var keys, vals []interface{}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		entries, ok := v.([]MapEntry)
		if !ok {
			return orcerrors.Newf(orcerrors.ErrorTypeData,
				"value of type %T is not writable as a map", v).
				WithDetail("column", w.ordinal)
		}
		w.appendPresent(true)
		w.buf = binary.AppendUvarint(w.buf, uint64(len(entries)))
		for _, entry := range entries {
			keys = append(keys, entry.Key)
			vals = append(vals, entry.Value)
		}
		w.stats.AddValue()
	}
	if len(keys) == 0 {
		return nil
	}
	if err := w.key.WriteBatch(keys); err != nil {
		return err
	}
	return w.value.WriteBatch(vals)
}

func (w *mapColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *mapColumnWriter) EstimatedSize() int64 {
	return int64(len(w.buf)) + w.key.EstimatedSize() + w.value.EstimatedSize()
}

func (w *mapColumnWriter) Close() error {
	if err := w.key.Close(); err != nil {
		return err
	}
	if err := w.value.Close(); err != nil {
		return err
	}
	return w.flush(w.stats.Build())
}

// structColumnWriter owns one writer per declared field, in declared order.
// Its own stream is just row presence.
type structColumnWriter struct {
	columnWriterBase
	stats  *statistics.CountingBuilder
	fields []ColumnWriter
}

func newStructColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor, fields []ColumnWriter) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &structColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewCountingBuilder(),
		fields:           fields,
	}, nil
}

func (w *structColumnWriter) Variant() string { return "struct" }

func (w *structColumnWriter) NestedWriters() []ColumnWriter {
	return w.fields
}

func (w *structColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	columns := make([][]interface{}, len(w.fields))
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			// absent rows still occupy a slot in every field column
			for i := range columns {
				columns[i] = append(columns[i], nil)
			}
			continue
		}
		row, ok := v.([]interface{})
		if !ok {
			return orcerrors.Newf(orcerrors.ErrorTypeData,
				"value of type %T is not writable as a struct row", v).
				WithDetail("column", w.ordinal)
		}
		if len(row) != len(w.fields) {
			return orcerrors.Newf(orcerrors.ErrorTypeData,
				"struct row has %d fields, writer has %d", len(row), len(w.fields)).
				WithDetail("column", w.ordinal)
		}
		w.appendPresent(true)
		for i, field := range row {
			columns[i] = append(columns[i], field)
		}
		w.stats.AddValue()
	}
	for i, field := range w.fields {
		if err := field.WriteBatch(columns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *structColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *structColumnWriter) EstimatedSize() int64 {
	size := int64(len(w.buf))
	for _, field := range w.fields {
		size += field.EstimatedSize()
	}
	return size
}

func (w *structColumnWriter) Close() error {
	for _, field := range w.fields {
		if err := field.Close(); err != nil {
			return err
		}
	}
	return w.flush(w.stats.Build())
}
