// Package arrowconv converts Arrow schemas into the flattened physical
// schema and parallel logical type tree that writer construction takes, so
// Arrow-described datasets can be written without hand-building both trees.
package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
	"github.com/skylarkdata/orcio/pkg/types"
)

// ConvertSchema flattens an Arrow schema into physical nodes numbered
// pre-order, rooted at a struct node holding the schema's top-level fields,
// and the matching logical row type.
func ConvertSchema(schema *arrow.Schema) ([]metadata.OrcType, types.Type, error) {
	var orcTypes []metadata.OrcType
	root := metadata.OrcType{Kind: metadata.STRUCT}
	orcTypes = append(orcTypes, root)

	fields := make([]types.Type, 0, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		field := schema.Field(i)
		fieldOrdinal := len(orcTypes)
		logical, err := appendDataType(field.Type, &orcTypes)
		if err != nil {
			return nil, types.Type{}, err
		}
		root.Children = append(root.Children, fieldOrdinal)
		root.FieldNames = append(root.FieldNames, field.Name)
		fields = append(fields, logical)
	}
	orcTypes[0] = root
	return orcTypes, types.Row(fields...), nil
}

func appendDataType(dt arrow.DataType, out *[]metadata.OrcType) (types.Type, error) {
	ordinal := len(*out)
	*out = append(*out, metadata.OrcType{})

	var physical metadata.OrcType
	var logical types.Type

	switch t := dt.(type) {
	case *arrow.BooleanType:
		physical.Kind = metadata.BOOLEAN
		logical = types.Boolean()
	case *arrow.Int8Type:
		physical.Kind = metadata.BYTE
		logical = types.TinyInt()
	case *arrow.Int16Type:
		physical.Kind = metadata.SHORT
		logical = types.SmallInt()
	case *arrow.Int32Type:
		physical.Kind = metadata.INT
		logical = types.Integer()
	case *arrow.Int64Type:
		physical.Kind = metadata.LONG
		logical = types.BigInt()
	case *arrow.Float32Type:
		physical.Kind = metadata.FLOAT
		logical = types.Real()
	case *arrow.Float64Type:
		physical.Kind = metadata.DOUBLE
		logical = types.Double()
	case *arrow.StringType:
		physical.Kind = metadata.STRING
		logical = types.Varchar(0)
	case *arrow.LargeStringType:
		physical.Kind = metadata.STRING
		logical = types.Varchar(0)
	case *arrow.BinaryType:
		physical.Kind = metadata.BINARY
		logical = types.VarBinary()
	case *arrow.LargeBinaryType:
		physical.Kind = metadata.BINARY
		logical = types.VarBinary()
	case *arrow.FixedSizeBinaryType:
		physical.Kind = metadata.BINARY
		logical = types.VarBinary()
	case *arrow.Date32Type:
		physical.Kind = metadata.DATE
		logical = types.Date()
	case *arrow.TimestampType:
		physical.Kind = metadata.TIMESTAMP
		logical = types.Timestamp()
	case *arrow.Decimal128Type:
		physical.Kind = metadata.DECIMAL
		physical.Precision = uint32(t.Precision)
		physical.Scale = uint32(t.Scale)
		logical = types.Decimal(int(t.Precision), int(t.Scale))

	case *arrow.ListType:
		elementOrdinal := len(*out)
		element, err := appendDataType(t.Elem(), out)
		if err != nil {
			return types.Type{}, err
		}
		physical.Kind = metadata.LIST
		physical.Children = []int{elementOrdinal}
		logical = types.Array(element)

	case *arrow.LargeListType:
		elementOrdinal := len(*out)
		element, err := appendDataType(t.Elem(), out)
		if err != nil {
			return types.Type{}, err
		}
		physical.Kind = metadata.LIST
		physical.Children = []int{elementOrdinal}
		logical = types.Array(element)

	case *arrow.MapType:
		keyOrdinal := len(*out)
		key, err := appendDataType(t.KeyType(), out)
		if err != nil {
			return types.Type{}, err
		}
		valueOrdinal := len(*out)
		value, err := appendDataType(t.ItemType(), out)
		if err != nil {
			return types.Type{}, err
		}
		physical.Kind = metadata.MAP
		physical.Children = []int{keyOrdinal, valueOrdinal}
		logical = types.Map(key, value)

	case *arrow.StructType:
		physical.Kind = metadata.STRUCT
		fields := make([]types.Type, 0, t.NumFields())
		for i := 0; i < t.NumFields(); i++ {
			field := t.Field(i)
			fieldOrdinal := len(*out)
			fieldLogical, err := appendDataType(field.Type, out)
			if err != nil {
				return types.Type{}, err
			}
			physical.Children = append(physical.Children, fieldOrdinal)
			physical.FieldNames = append(physical.FieldNames, field.Name)
			fields = append(fields, fieldLogical)
		}
		logical = types.Row(fields...)

	default:
		return types.Type{}, orcerrors.Newf(orcerrors.ErrorTypeUnsupportedKind,
			"arrow type %s has no ORC mapping", dt.Name()).
			WithDetail("arrowType", dt.String())
	}

	(*out)[ordinal] = physical
	return logical, nil
}
