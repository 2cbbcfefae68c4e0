// Package schemadoc parses JSON schema documents into the flattened physical
// schema and the parallel logical type tree that writer construction takes.
//
// A document is a recursive type node:
//
//	{"kind": "struct", "fields": [
//	    {"name": "id", "type": {"kind": "long"}},
//	    {"name": "tags", "type": {"kind": "list", "element": {"kind": "string"}}},
//	    {"name": "price", "type": {"kind": "decimal", "precision": 10, "scale": 2}}
//	]}
//
// Nodes are flattened pre-order, so the document root is ordinal 0 and every
// composite node's children follow it, exactly the layout the builder walks.
package schemadoc

import (
	"github.com/goccy/go-json"

	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
	"github.com/skylarkdata/orcio/pkg/types"
)

// Node is one type node of a schema document.
type Node struct {
	Kind      string  `json:"kind"`
	Fields    []Field `json:"fields,omitempty"`
	Element   *Node   `json:"element,omitempty"`
	Key       *Node   `json:"key,omitempty"`
	Value     *Node   `json:"value,omitempty"`
	Length    int     `json:"length,omitempty"`
	Precision int     `json:"precision,omitempty"`
	Scale     int     `json:"scale,omitempty"`
}

// Field is one named struct field.
type Field struct {
	Name string `json:"name"`
	Type *Node  `json:"type"`
}

// Parse decodes a schema document and flattens it.
func Parse(data []byte) ([]metadata.OrcType, types.Type, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, types.Type{}, orcerrors.Wrap(err, orcerrors.ErrorTypeConfig, "invalid schema document")
	}
	return Flatten(&root)
}

// Flatten converts a document tree into the flattened physical schema plus
// the logical type tree, numbering nodes pre-order.
func Flatten(root *Node) ([]metadata.OrcType, types.Type, error) {
	var orcTypes []metadata.OrcType
	logical, err := appendNode(root, &orcTypes)
	if err != nil {
		return nil, types.Type{}, err
	}
	return orcTypes, logical, nil
}

func appendNode(n *Node, out *[]metadata.OrcType) (types.Type, error) {
	if n == nil {
		return types.Type{}, orcerrors.New(orcerrors.ErrorTypeConfig, "schema document node is missing")
	}

	ordinal := len(*out)
	*out = append(*out, metadata.OrcType{})

	var physical metadata.OrcType
	var logical types.Type

	switch n.Kind {
	case "boolean":
		physical.Kind = metadata.BOOLEAN
		logical = types.Boolean()
	case "byte", "tinyint":
		physical.Kind = metadata.BYTE
		logical = types.TinyInt()
	case "short", "smallint":
		physical.Kind = metadata.SHORT
		logical = types.SmallInt()
	case "int", "integer":
		physical.Kind = metadata.INT
		logical = types.Integer()
	case "long", "bigint":
		physical.Kind = metadata.LONG
		logical = types.BigInt()
	case "float", "real":
		physical.Kind = metadata.FLOAT
		logical = types.Real()
	case "double":
		physical.Kind = metadata.DOUBLE
		logical = types.Double()
	case "date":
		physical.Kind = metadata.DATE
		logical = types.Date()
	case "timestamp":
		physical.Kind = metadata.TIMESTAMP
		logical = types.Timestamp()
	case "binary", "varbinary":
		physical.Kind = metadata.BINARY
		logical = types.VarBinary()
	case "string":
		physical.Kind = metadata.STRING
		logical = types.Varchar(0)
	case "varchar":
		physical.Kind = metadata.VARCHAR
		physical.MaximumLength = uint32(n.Length)
		logical = types.Varchar(n.Length)
	case "char":
		physical.Kind = metadata.CHAR
		physical.MaximumLength = uint32(n.Length)
		logical = types.Char(n.Length)
	case "decimal":
		physical.Kind = metadata.DECIMAL
		physical.Precision = uint32(n.Precision)
		physical.Scale = uint32(n.Scale)
		logical = types.Decimal(n.Precision, n.Scale)

	case "list", "array":
		elementOrdinal := len(*out)
		element, err := appendNode(n.Element, out)
		if err != nil {
			return types.Type{}, err
		}
		physical.Kind = metadata.LIST
		physical.Children = []int{elementOrdinal}
		logical = types.Array(element)

	case "map":
		keyOrdinal := len(*out)
		key, err := appendNode(n.Key, out)
		if err != nil {
			return types.Type{}, err
		}
		valueOrdinal := len(*out)
		value, err := appendNode(n.Value, out)
		if err != nil {
			return types.Type{}, err
		}
		physical.Kind = metadata.MAP
		physical.Children = []int{keyOrdinal, valueOrdinal}
		logical = types.Map(key, value)

	case "struct", "row":
		physical.Kind = metadata.STRUCT
		fields := make([]types.Type, 0, len(n.Fields))
		for _, f := range n.Fields {
			fieldOrdinal := len(*out)
			field, err := appendNode(f.Type, out)
			if err != nil {
				return types.Type{}, err
			}
			physical.Children = append(physical.Children, fieldOrdinal)
			physical.FieldNames = append(physical.FieldNames, f.Name)
			fields = append(fields, field)
		}
		logical = types.Row(fields...)

	default:
		return types.Type{}, orcerrors.Newf(orcerrors.ErrorTypeUnsupportedKind,
			"unknown type kind %q in schema document", n.Kind)
	}

	(*out)[ordinal] = physical
	return logical, nil
}
