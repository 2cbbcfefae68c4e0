package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafTypeStrings(t *testing.T) {
	assert.Equal(t, "boolean", Boolean().String())
	assert.Equal(t, "tinyint", TinyInt().String())
	assert.Equal(t, "bigint", BigInt().String())
	assert.Equal(t, "varbinary", VarBinary().String())
	assert.Equal(t, "timestamp", Timestamp().String())
}

func TestParameterizedTypeStrings(t *testing.T) {
	assert.Equal(t, "varchar", Varchar(0).String())
	assert.Equal(t, "varchar(25)", Varchar(25).String())
	assert.Equal(t, "char(4)", Char(4).String())
	assert.Equal(t, "decimal(10,2)", Decimal(10, 2).String())
}

func TestCompositeTypeStrings(t *testing.T) {
	assert.Equal(t, "array(bigint)", Array(BigInt()).String())
	assert.Equal(t, "map(varchar, double)", Map(Varchar(0), Double()).String())
	assert.Equal(t, "row(bigint, array(date))", Row(BigInt(), Array(Date())).String())
	assert.Equal(t, "row", Row().String())
}

func TestTypeParameters(t *testing.T) {
	assert.Empty(t, BigInt().TypeParameters())

	list := Array(Varchar(10))
	assert.Len(t, list.TypeParameters(), 1)
	assert.Equal(t, "varchar(10)", list.TypeParameters()[0].String())

	m := Map(Varchar(0), BigInt())
	params := m.TypeParameters()
	assert.Len(t, params, 2)
	assert.Equal(t, "varchar", params[0].String())
	assert.Equal(t, "bigint", params[1].String())

	row := Row(Boolean(), Boolean())
	assert.Len(t, row.TypeParameters(), 2)
}
