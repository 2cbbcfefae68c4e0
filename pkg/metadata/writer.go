package metadata

import (
	"encoding/binary"
	"io"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/skylarkdata/orcio/pkg/metadata/statistics"
)

// Writer is the metadata sink handed to every column writer at construction
// time. Writers report their final statistics into it when they close; the
// sink later serializes the file footer.
type Writer interface {
	// RecordColumnStatistics records the final statistics for one column,
	// keyed by its schema ordinal.
	RecordColumnStatistics(ordinal int, stats statistics.ColumnStatistics) error

	// RecordBytesOnDisk records the compressed size one column contributed.
	RecordBytesOnDisk(ordinal int, n int64) error
}

// FooterWriter is the default metadata sink. It accumulates per-column
// reports and serializes a varint-framed footer section.
//
// Safe for use by the sequential close of one writer tree; a fresh
// FooterWriter is expected per file.
type FooterWriter struct {
	mu          sync.Mutex
	stats       map[int]statistics.ColumnStatistics
	bytesOnDisk map[int]int64
}

// NewFooterWriter creates an empty footer sink.
func NewFooterWriter() *FooterWriter {
	return &FooterWriter{
		stats:       make(map[int]statistics.ColumnStatistics),
		bytesOnDisk: make(map[int]int64),
	}
}

// RecordColumnStatistics implements Writer.
func (fw *FooterWriter) RecordColumnStatistics(ordinal int, stats statistics.ColumnStatistics) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.stats[ordinal] = stats
	return nil
}

// RecordBytesOnDisk implements Writer.
func (fw *FooterWriter) RecordBytesOnDisk(ordinal int, n int64) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.bytesOnDisk[ordinal] += n
	return nil
}

// ColumnStatistics returns the recorded statistics for one ordinal.
func (fw *FooterWriter) ColumnStatistics(ordinal int) (statistics.ColumnStatistics, bool) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	s, ok := fw.stats[ordinal]
	return s, ok
}

// Ordinals returns the ordinals that have reported statistics, ascending.
func (fw *FooterWriter) Ordinals() []int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	ordinals := make([]int, 0, len(fw.stats))
	for ordinal := range fw.stats {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)
	return ordinals
}

// WriteFooter serializes the schema and the recorded statistics to w and
// returns the number of bytes written. The layout is varint-framed: type
// count, then each node (kind, child count, child ordinals, field names),
// then a statistics entry per reported ordinal.
func (fw *FooterWriter) WriteFooter(w io.Writer, schema []OrcType) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	footer := make([]byte, 0, 1024)

	footer = binary.AppendUvarint(footer, uint64(len(schema)))
	for _, t := range schema {
		footer = binary.AppendUvarint(footer, uint64(t.Kind))
		footer = binary.AppendUvarint(footer, uint64(len(t.Children)))
		for _, child := range t.Children {
			footer = binary.AppendUvarint(footer, uint64(child))
		}
		footer = binary.AppendUvarint(footer, uint64(len(t.FieldNames)))
		for _, name := range t.FieldNames {
			footer = binary.AppendUvarint(footer, uint64(len(name)))
			footer = append(footer, name...)
		}
	}

	ordinals := make([]int, 0, len(fw.stats))
	for ordinal := range fw.stats {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)

	footer = binary.AppendUvarint(footer, uint64(len(ordinals)))
	for _, ordinal := range ordinals {
		stats := fw.stats[ordinal]
		footer = binary.AppendUvarint(footer, uint64(ordinal))
		footer = binary.AppendUvarint(footer, stats.NumberOfValues)
		if stats.HasNull {
			footer = append(footer, 1)
		} else {
			footer = append(footer, 0)
		}
		footer = binary.AppendUvarint(footer, uint64(fw.bytesOnDisk[ordinal]))
	}

	return w.Write(footer)
}

// footerDump is the JSON shape DumpJSON produces, one entry per column.
type footerDump struct {
	Ordinal        int    `json:"ordinal"`
	NumberOfValues uint64 `json:"number_of_values"`
	HasNull        bool   `json:"has_null"`
	BytesOnDisk    int64  `json:"bytes_on_disk"`
}

// DumpJSON renders the recorded per-column summary as JSON, for tooling and
// debugging output.
func (fw *FooterWriter) DumpJSON() ([]byte, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	ordinals := make([]int, 0, len(fw.stats))
	for ordinal := range fw.stats {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)

	dump := make([]footerDump, 0, len(ordinals))
	for _, ordinal := range ordinals {
		stats := fw.stats[ordinal]
		dump = append(dump, footerDump{
			Ordinal:        ordinal,
			NumberOfValues: stats.NumberOfValues,
			HasNull:        stats.HasNull,
			BytesOnDisk:    fw.bytesOnDisk[ordinal],
		})
	}
	return json.Marshal(dump)
}
