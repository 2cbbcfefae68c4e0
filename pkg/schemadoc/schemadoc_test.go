package schemadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/orcerrors"
)

func TestParseFlatStruct(t *testing.T) {
	doc := `{"kind": "struct", "fields": [
		{"name": "id", "type": {"kind": "long"}},
		{"name": "name", "type": {"kind": "string"}}
	]}`

	orcTypes, logical, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, orcTypes, 3)

	assert.Equal(t, metadata.STRUCT, orcTypes[0].Kind)
	assert.Equal(t, []int{1, 2}, orcTypes[0].Children)
	assert.Equal(t, []string{"id", "name"}, orcTypes[0].FieldNames)
	assert.Equal(t, metadata.LONG, orcTypes[1].Kind)
	assert.Equal(t, metadata.STRING, orcTypes[2].Kind)

	assert.Equal(t, "row(bigint, varchar)", logical.String())
}

func TestParseNestedComposites(t *testing.T) {
	doc := `{"kind": "struct", "fields": [
		{"name": "tags", "type": {"kind": "list", "element": {"kind": "varchar", "length": 20}}},
		{"name": "attrs", "type": {"kind": "map",
			"key": {"kind": "string"},
			"value": {"kind": "decimal", "precision": 10, "scale": 2}}}
	]}`

	orcTypes, logical, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, orcTypes, 6)

	// pre-order: struct, list, varchar, map, string, decimal
	assert.Equal(t, metadata.STRUCT, orcTypes[0].Kind)
	assert.Equal(t, []int{1, 3}, orcTypes[0].Children)
	assert.Equal(t, metadata.LIST, orcTypes[1].Kind)
	assert.Equal(t, []int{2}, orcTypes[1].Children)
	assert.Equal(t, metadata.VARCHAR, orcTypes[2].Kind)
	assert.Equal(t, uint32(20), orcTypes[2].MaximumLength)
	assert.Equal(t, metadata.MAP, orcTypes[3].Kind)
	assert.Equal(t, []int{4, 5}, orcTypes[3].Children)
	assert.Equal(t, metadata.DECIMAL, orcTypes[5].Kind)
	assert.Equal(t, uint32(10), orcTypes[5].Precision)
	assert.Equal(t, uint32(2), orcTypes[5].Scale)

	assert.Equal(t, "row(array(varchar(20)), map(varchar, decimal(10,2)))", logical.String())
}

func TestParseUnknownKind(t *testing.T) {
	_, _, err := Parse([]byte(`{"kind": "uuid"}`))
	require.Error(t, err)
	assert.True(t, orcerrors.IsType(err, orcerrors.ErrorTypeUnsupportedKind))
}

func TestParseMissingChildNode(t *testing.T) {
	_, _, err := Parse([]byte(`{"kind": "list"}`))
	require.Error(t, err)
	assert.True(t, orcerrors.IsType(err, orcerrors.ErrorTypeConfig))
}

func TestParseInvalidJSON(t *testing.T) {
	_, _, err := Parse([]byte(`{`))
	require.Error(t, err)
	assert.True(t, orcerrors.IsType(err, orcerrors.ErrorTypeConfig))
}
