// Package orcio builds ORC column-writer trees from a flattened physical
// schema and its parallel logical type tree, with the statistics, compression,
// and encryption plumbing a columnar file writer needs around them.
//
// # Architecture
//
// An ORC schema is stored flat: every type node carries an ordinal assigned
// pre-order, and composite nodes reference their children by ordinal. The
// logical type tree mirrors the same shape with SQL-level types. The writer
// package walks both trees in lock-step and produces one ColumnWriter per
// node, wired with the compressor, statistics builder, and optional
// per-column encryptor that node requires.
//
// # Quick Start
//
// Build a writer tree for a two-column schema:
//
//	import (
//	    "time"
//
//	    "github.com/skylarkdata/orcio/pkg/metadata"
//	    "github.com/skylarkdata/orcio/pkg/types"
//	    "github.com/skylarkdata/orcio/pkg/writer"
//	)
//
//	schema := []metadata.OrcType{
//	    {Kind: metadata.STRUCT, Children: []int{1, 2}, FieldNames: []string{"id", "name"}},
//	    {Kind: metadata.LONG},
//	    {Kind: metadata.STRING},
//	}
//	logical := types.Row(types.BigInt(), types.Varchar(0))
//
//	opts := writer.Options{
//	    Compression:           metadata.ZSTD,
//	    BufferSize:            256 * 1024,
//	    Encoding:              writer.ORC,
//	    Timezone:              time.UTC,
//	    StringStatisticsLimit: 64,
//	    MetadataSink:          metadata.NewFooterWriter(),
//	}
//	root, err := writer.CreateColumnWriter(0, schema, logical, opts)
//
// Schemas can also come from JSON documents (pkg/schemadoc) or Arrow schemas
// (pkg/arrowconv) instead of being hand-built.
//
// # Key Packages
//
//	pkg/writer     - Column writer construction and the writer implementations
//	pkg/metadata   - Physical schema nodes, compression kinds, footer sink
//	pkg/types      - Logical type tree
//	pkg/compression - Stream compressors keyed by metadata.CompressionKind
//	pkg/encryption - Per-column AES-CTR encryption
//	pkg/schemadoc  - JSON schema document parsing
//	pkg/arrowconv  - Arrow schema conversion
//	pkg/orcerrors  - Structured error handling
//	pkg/logger     - Structured logging
//
// # Dialects
//
// Two format dialects are supported. ORC accepts every type kind; DWRF
// rejects DATE, DECIMAL, and CHAR anywhere in the schema, and construction
// fails with a dialect error naming the offending kind.
package orcio
