// Package metadata models the flattened physical schema of an ORC file and
// the metadata sink that column writers report into.
//
// The physical schema is an ordered slice of OrcType nodes. A node's position
// in the slice is its ordinal, which doubles as its identity for encryption
// lookup and cross-referencing. Composite nodes (list, map, struct) carry the
// ordinals of their children; the subtree of a node is numbered pre-order.
package metadata

import "fmt"

// TypeKind identifies the physical type of one schema node.
type TypeKind uint32

const (
	BOOLEAN TypeKind = iota
	BYTE
	SHORT
	INT
	LONG
	FLOAT
	DOUBLE
	STRING
	DATE
	VARCHAR
	CHAR
	BINARY
	DECIMAL
	TIMESTAMP
	LIST
	MAP
	STRUCT
	UNION
)

var typeKindNames = map[TypeKind]string{
	BOOLEAN:   "BOOLEAN",
	BYTE:      "BYTE",
	SHORT:     "SHORT",
	INT:       "INT",
	LONG:      "LONG",
	FLOAT:     "FLOAT",
	DOUBLE:    "DOUBLE",
	STRING:    "STRING",
	DATE:      "DATE",
	VARCHAR:   "VARCHAR",
	CHAR:      "CHAR",
	BINARY:    "BINARY",
	DECIMAL:   "DECIMAL",
	TIMESTAMP: "TIMESTAMP",
	LIST:      "LIST",
	MAP:       "MAP",
	STRUCT:    "STRUCT",
	UNION:     "UNION",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", uint32(k))
}

// IsComposite reports whether nodes of this kind carry child ordinals.
func (k TypeKind) IsComposite() bool {
	return k == LIST || k == MAP || k == STRUCT
}

// CompressionKind identifies the compression codec recorded in the file
// postscript and applied to every stream.
type CompressionKind uint32

const (
	NONE CompressionKind = iota
	ZLIB
	SNAPPY
	LZO
	LZ4
	ZSTD
)

var compressionKindNames = map[CompressionKind]string{
	NONE:   "NONE",
	ZLIB:   "ZLIB",
	SNAPPY: "SNAPPY",
	LZO:    "LZO",
	LZ4:    "LZ4",
	ZSTD:   "ZSTD",
}

func (k CompressionKind) String() string {
	if name, ok := compressionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CompressionKind(%d)", uint32(k))
}

// ParseCompressionKind maps a codec name (case-sensitive, as it appears in
// configuration) to its CompressionKind.
func ParseCompressionKind(name string) (CompressionKind, error) {
	switch name {
	case "", "none":
		return NONE, nil
	case "zlib":
		return ZLIB, nil
	case "snappy":
		return SNAPPY, nil
	case "lzo":
		return LZO, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	}
	return NONE, fmt.Errorf("unknown compression kind %q", name)
}

// OrcType is one entry in the flattened physical schema.
type OrcType struct {
	Kind TypeKind

	// Children holds the ordinals of child nodes for composite kinds, in
	// declared order. Leaf kinds have none.
	Children []int

	// FieldNames holds struct field names, parallel to Children. Lists and
	// maps leave it empty.
	FieldNames []string

	// MaximumLength bounds char/varchar content; zero means unbounded.
	MaximumLength uint32

	// Precision and Scale parameterize decimal nodes.
	Precision uint32
	Scale     uint32
}

// FieldCount returns the number of child nodes.
func (t OrcType) FieldCount() int {
	return len(t.Children)
}

// ChildOrdinal returns the ordinal of the i-th child node.
func (t OrcType) ChildOrdinal(i int) int {
	return t.Children[i]
}
