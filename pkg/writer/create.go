package writer

import (
	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/metadata/statistics"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
	"github.com/skylarkdata/orcio/pkg/types"
)

// CreateColumnWriter builds the writer tree rooted at the given ordinal.
//
// orcTypes is the flattened physical schema and logical the parallel type
// tree; the two must be structurally aligned. Construction walks them
// pre-order with a single synchronized cursor pair, so at every composite
// node the i-th child ordinal is built against the i-th type parameter.
//
// All failures are synchronous and fatal: an unrecognized kind, a kind the
// dialect cannot encode (checked per node, at any depth), or a structural
// mismatch between the two trees aborts the whole build.
func CreateColumnWriter(ordinal int, orcTypes []metadata.OrcType, logical types.Type, opts Options) (ColumnWriter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return createColumnWriter(ordinal, orcTypes, logical, opts)
}

func createColumnWriter(ordinal int, orcTypes []metadata.OrcType, logical types.Type, opts Options) (ColumnWriter, error) {
	if ordinal < 0 || ordinal >= len(orcTypes) {
		return nil, orcerrors.Newf(orcerrors.ErrorTypeMalformedSchema,
			"node ordinal %d out of range for schema of %d nodes", ordinal, len(orcTypes)).
			WithDetail("ordinal", ordinal)
	}
	node := orcTypes[ordinal]
	encryptor, _ := opts.Encryption.EncryptorByNode(ordinal)

	switch node.Kind {
	case metadata.BOOLEAN:
		return newBooleanColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.FLOAT:
		return newFloatColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.DOUBLE:
		return newDoubleColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.BYTE:
		return newByteColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.DATE:
		if opts.Encoding == DWRF {
			return nil, dialectUnsupported(node.Kind, logical, opts.Encoding)
		}
		return newLongColumnWriter(ordinal, logical, opts, encryptor, statistics.NewDateStatisticsBuilder)

	case metadata.SHORT, metadata.INT, metadata.LONG:
		return newLongColumnWriter(ordinal, logical, opts, encryptor, statistics.NewIntegerStatisticsBuilder)

	case metadata.DECIMAL:
		if opts.Encoding == DWRF {
			return nil, dialectUnsupported(node.Kind, logical, opts.Encoding)
		}
		return newDecimalColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.TIMESTAMP:
		if opts.Timezone == nil {
			return nil, orcerrors.Newf(orcerrors.ErrorTypeConfig,
				"storage timezone is required for timestamp node %d", ordinal)
		}
		return newTimestampColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.BINARY:
		return newSliceDirectColumnWriter(ordinal, logical, opts, encryptor, statistics.NewBinaryStatisticsBuilder)

	case metadata.CHAR:
		if opts.Encoding == DWRF {
			return nil, dialectUnsupported(node.Kind, logical, opts.Encoding)
		}
		fallthrough

	case metadata.VARCHAR, metadata.STRING:
		return newSliceDictionaryColumnWriter(ordinal, logical, opts, encryptor)

	case metadata.LIST:
		if err := checkAlignment(ordinal, node, logical, 1); err != nil {
			return nil, err
		}
		element, err := createColumnWriter(node.ChildOrdinal(0), orcTypes, logical.Parameters[0], opts)
		if err != nil {
			return nil, err
		}
		return newListColumnWriter(ordinal, logical, opts, encryptor, element)

	case metadata.MAP:
		if err := checkAlignment(ordinal, node, logical, 2); err != nil {
			return nil, err
		}
		key, err := createColumnWriter(node.ChildOrdinal(0), orcTypes, logical.Parameters[0], opts)
		if err != nil {
			return nil, err
		}
		value, err := createColumnWriter(node.ChildOrdinal(1), orcTypes, logical.Parameters[1], opts)
		if err != nil {
			return nil, err
		}
		return newMapColumnWriter(ordinal, logical, opts, encryptor, key, value)

	case metadata.STRUCT:
		if err := checkAlignment(ordinal, node, logical, -1); err != nil {
			return nil, err
		}
		fields := make([]ColumnWriter, 0, node.FieldCount())
		for i := 0; i < node.FieldCount(); i++ {
			field, err := createColumnWriter(node.ChildOrdinal(i), orcTypes, logical.Parameters[i], opts)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return newStructColumnWriter(ordinal, logical, opts, encryptor, fields)
	}

	return nil, orcerrors.Newf(orcerrors.ErrorTypeUnsupportedKind,
		"unsupported type kind %s at node %d", node.Kind, ordinal).
		WithDetail("kind", node.Kind.String()).
		WithDetail("ordinal", ordinal)
}

// checkAlignment verifies the structural invariant at one composite node:
// the physical child-ordinal count equals the logical type-parameter count,
// and both match the arity the kind demands (want < 0 accepts any arity).
func checkAlignment(ordinal int, node metadata.OrcType, logical types.Type, want int) error {
	if node.FieldCount() != len(logical.TypeParameters()) {
		return orcerrors.Newf(orcerrors.ErrorTypeMalformedSchema,
			"%s node %d has %d physical children but %d logical type parameters",
			node.Kind, ordinal, node.FieldCount(), len(logical.TypeParameters())).
			WithDetail("ordinal", ordinal).
			WithDetail("kind", node.Kind.String())
	}
	if want >= 0 && node.FieldCount() != want {
		return orcerrors.Newf(orcerrors.ErrorTypeMalformedSchema,
			"%s node %d must have exactly %d children, got %d",
			node.Kind, ordinal, want, node.FieldCount()).
			WithDetail("ordinal", ordinal).
			WithDetail("kind", node.Kind.String())
	}
	return nil
}

func dialectUnsupported(kind metadata.TypeKind, logical types.Type, encoding Encoding) error {
	return orcerrors.Newf(orcerrors.ErrorTypeDialect,
		"%s does not support %s type", encoding, kind).
		WithDetail("kind", kind.String()).
		WithDetail("dialect", encoding.String()).
		WithDetail("type", logical.String())
}
