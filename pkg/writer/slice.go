package writer

import (
	"encoding/binary"

	"github.com/skylarkdata/orcio/pkg/encryption"
	"github.com/skylarkdata/orcio/pkg/metadata/statistics"
	"github.com/skylarkdata/orcio/pkg/types"
)

// sliceDirectColumnWriter encodes variable-length values inline: a length
// prefix followed by the raw bytes. Binary columns use it with a
// binary-statistics factory.
type sliceDirectColumnWriter struct {
	columnWriterBase
	stats statistics.SliceStatisticsBuilder
}

func newSliceDirectColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor, newStats statistics.SliceBuilderFactory) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &sliceDirectColumnWriter{
		columnWriterBase: base,
		stats:            newStats(),
	}, nil
}

func (w *sliceDirectColumnWriter) Variant() string { return "slice-direct" }

func (w *sliceDirectColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		b, err := coerceBytes(v, w.ordinal)
		if err != nil {
			return err
		}
		w.appendPresent(true)
		w.buf = binary.AppendUvarint(w.buf, uint64(len(b)))
		w.buf = append(w.buf, b...)
		w.stats.AddSlice(b)
	}
	return nil
}

func (w *sliceDirectColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *sliceDirectColumnWriter) Close() error {
	return w.flush(w.stats.Build())
}

// sliceDictionaryColumnWriter encodes char/varchar/string values through a
// dictionary: distinct values are collected once and rows become dictionary
// indexes. Its string statistics retain at most the configured amount of
// string content.
type sliceDictionaryColumnWriter struct {
	columnWriterBase
	stats          *statistics.StringStatisticsBuilder
	dictionary     map[string]uint64
	dictionaryKeys []string
	dictionarySize int64
}

func newSliceDictionaryColumnWriter(ordinal int, logical types.Type, opts Options, encryptor *encryption.DataEncryptor) (ColumnWriter, error) {
	base, err := newColumnWriterBase(ordinal, logical, opts, encryptor)
	if err != nil {
		return nil, err
	}
	return &sliceDictionaryColumnWriter{
		columnWriterBase: base,
		stats:            statistics.NewStringStatisticsBuilder(opts.StringStatisticsLimit),
		dictionary:       make(map[string]uint64),
	}, nil
}

func (w *sliceDictionaryColumnWriter) Variant() string { return "slice-dictionary" }

func (w *sliceDictionaryColumnWriter) WriteBatch(values []interface{}) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	for _, v := range values {
		if v == nil {
			w.appendPresent(false)
			w.stats.AddNull()
			continue
		}
		s, err := coerceString(v, w.ordinal)
		if err != nil {
			return err
		}
		index, ok := w.dictionary[s]
		if !ok {
			index = uint64(len(w.dictionaryKeys))
			w.dictionary[s] = index
			w.dictionaryKeys = append(w.dictionaryKeys, s)
			w.dictionarySize += int64(len(s))
		}
		w.appendPresent(true)
		w.buf = binary.AppendUvarint(w.buf, index)
		w.stats.AddValue(s)
	}
	return nil
}

func (w *sliceDictionaryColumnWriter) ColumnStatistics() statistics.ColumnStatistics {
	return w.stats.Build()
}

func (w *sliceDictionaryColumnWriter) EstimatedSize() int64 {
	return int64(len(w.buf)) + w.dictionarySize
}

// Close appends the dictionary after the index stream, then flushes.
func (w *sliceDictionaryColumnWriter) Close() error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.buf = binary.AppendUvarint(w.buf, uint64(len(w.dictionaryKeys)))
	for _, key := range w.dictionaryKeys {
		w.buf = binary.AppendUvarint(w.buf, uint64(len(key)))
		w.buf = append(w.buf, key...)
	}
	return w.flush(w.stats.Build())
}
