// Package types models the logical type tree that parallels the flattened
// physical schema. Composite types expose their ordered type parameters;
// leaf types carry none.
package types

import (
	"fmt"
	"strings"
)

// Type is one node of the logical type tree. Values are immutable once
// constructed; the builder walks them alongside the physical nodes.
type Type struct {
	// Name is the base type name, e.g. "bigint", "varchar", "row".
	Name string

	// Parameters holds the ordered type parameters of composite types:
	// one for array, two (key, value) for map, one per field for row.
	Parameters []Type

	// Length bounds char/varchar content; zero means unbounded.
	Length int

	// Precision and Scale parameterize decimals.
	Precision int
	Scale     int
}

// TypeParameters returns the ordered type parameters.
func (t Type) TypeParameters() []Type {
	return t.Parameters
}

// String renders the type in SQL-ish form, e.g. "row(bigint, varchar(10))".
func (t Type) String() string {
	switch t.Name {
	case "decimal":
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	case "char", "varchar":
		if t.Length > 0 {
			return fmt.Sprintf("%s(%d)", t.Name, t.Length)
		}
		return t.Name
	}
	if len(t.Parameters) == 0 {
		return t.Name
	}
	params := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		params[i] = p.String()
	}
	return t.Name + "(" + strings.Join(params, ", ") + ")"
}

func Boolean() Type   { return Type{Name: "boolean"} }
func TinyInt() Type   { return Type{Name: "tinyint"} }
func SmallInt() Type  { return Type{Name: "smallint"} }
func Integer() Type   { return Type{Name: "integer"} }
func BigInt() Type    { return Type{Name: "bigint"} }
func Real() Type      { return Type{Name: "real"} }
func Double() Type    { return Type{Name: "double"} }
func Date() Type      { return Type{Name: "date"} }
func Timestamp() Type { return Type{Name: "timestamp"} }
func VarBinary() Type { return Type{Name: "varbinary"} }

// Varchar returns a bounded varchar; length zero means unbounded.
func Varchar(length int) Type {
	return Type{Name: "varchar", Length: length}
}

func Char(length int) Type {
	return Type{Name: "char", Length: length}
}

func Decimal(precision, scale int) Type {
	return Type{Name: "decimal", Precision: precision, Scale: scale}
}

// Array returns a list type with one element parameter.
func Array(element Type) Type {
	return Type{Name: "array", Parameters: []Type{element}}
}

// Map returns a map type with key and value parameters, in that order.
func Map(key, value Type) Type {
	return Type{Name: "map", Parameters: []Type{key, value}}
}

// Row returns a struct type with one parameter per field, in declared order.
// Zero fields and duplicate field types are legal.
func Row(fields ...Type) Type {
	return Type{Name: "row", Parameters: fields}
}
