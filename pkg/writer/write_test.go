package writer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/types"
)

func TestLongWriterStatistics(t *testing.T) {
	sink := metadata.NewFooterWriter()
	opts := testOptions()
	opts.MetadataSink = sink

	schema := []metadata.OrcType{{Kind: metadata.LONG}}
	w, err := CreateColumnWriter(0, schema, types.BigInt(), opts)
	require.NoError(t, err)

	require.NoError(t, w.WriteBatch([]interface{}{int64(5), nil, int64(-3), int64(10)}))
	require.NoError(t, w.Close())

	stats, ok := sink.ColumnStatistics(0)
	require.True(t, ok)
	assert.Equal(t, uint64(3), stats.NumberOfValues)
	assert.True(t, stats.HasNull)
	require.NotNil(t, stats.IntegerStatistics)
	assert.Equal(t, int64(-3), stats.IntegerStatistics.Minimum)
	assert.Equal(t, int64(10), stats.IntegerStatistics.Maximum)
	assert.Equal(t, int64(12), stats.IntegerStatistics.Sum)
}

func TestDateWriterStatistics(t *testing.T) {
	sink := metadata.NewFooterWriter()
	opts := testOptions()
	opts.MetadataSink = sink

	schema := []metadata.OrcType{{Kind: metadata.DATE}}
	w, err := CreateColumnWriter(0, schema, types.Date(), opts)
	require.NoError(t, err)

	require.NoError(t, w.WriteBatch([]interface{}{int64(18000), int64(17000)}))
	require.NoError(t, w.Close())

	stats, ok := sink.ColumnStatistics(0)
	require.True(t, ok)
	require.NotNil(t, stats.DateStatistics, "date columns carry date statistics, not integer statistics")
	assert.Nil(t, stats.IntegerStatistics)
	assert.Equal(t, int32(17000), stats.DateStatistics.Minimum)
	assert.Equal(t, int32(18000), stats.DateStatistics.Maximum)
}

func TestDictionaryWriterDeduplicates(t *testing.T) {
	sink := metadata.NewFooterWriter()
	opts := testOptions()
	opts.MetadataSink = sink

	schema := []metadata.OrcType{{Kind: metadata.STRING}}
	w, err := CreateColumnWriter(0, schema, types.Varchar(0), opts)
	require.NoError(t, err)

	require.NoError(t, w.WriteBatch([]interface{}{"a", "b", "a", "a", nil}))
	stats := w.ColumnStatistics()
	assert.Equal(t, uint64(4), stats.NumberOfValues)
	require.NotNil(t, stats.StringStatistics)
	assert.Equal(t, "a", stats.StringStatistics.Minimum)
	assert.Equal(t, "b", stats.StringStatistics.Maximum)
	assert.Equal(t, int64(4), stats.StringStatistics.Sum)
	require.NoError(t, w.Close())
}

func TestStringStatisticsLimitDropsMinMax(t *testing.T) {
	opts := testOptions()
	opts.StringStatisticsLimit = 4

	schema := []metadata.OrcType{{Kind: metadata.VARCHAR}}
	w, err := CreateColumnWriter(0, schema, types.Varchar(0), opts)
	require.NoError(t, err)

	require.NoError(t, w.WriteBatch([]interface{}{"abc", "longer-than-limit"}))
	stats := w.ColumnStatistics()
	require.NotNil(t, stats.StringStatistics)
	assert.Empty(t, stats.StringStatistics.Minimum)
	assert.Empty(t, stats.StringStatistics.Maximum)
	assert.Equal(t, int64(20), stats.StringStatistics.Sum)
	require.NoError(t, w.Close())
}

func TestTimestampWriterUsesStorageTimezone(t *testing.T) {
	location, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	opts := testOptions()
	opts.Timezone = location

	schema := []metadata.OrcType{{Kind: metadata.TIMESTAMP}}
	w, err := CreateColumnWriter(0, schema, types.Timestamp(), opts)
	require.NoError(t, err)

	instant := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, w.WriteBatch([]interface{}{instant}))
	require.NoError(t, w.Close())

	stats := w.ColumnStatistics()
	require.NotNil(t, stats.TimestampStatistics)
	assert.Equal(t, instant.UnixMilli(), stats.TimestampStatistics.Minimum)
}

func TestStructWriterFansOutColumns(t *testing.T) {
	sink := metadata.NewFooterWriter()
	opts := testOptions()
	opts.MetadataSink = sink

	schema := []metadata.OrcType{
		{Kind: metadata.STRUCT, Children: []int{1, 2}, FieldNames: []string{"id", "name"}},
		{Kind: metadata.LONG},
		{Kind: metadata.STRING},
	}
	logical := types.Row(types.BigInt(), types.Varchar(0))
	w, err := CreateColumnWriter(0, schema, logical, opts)
	require.NoError(t, err)

	rows := []interface{}{
		[]interface{}{int64(1), "alice"},
		nil,
		[]interface{}{int64(2), "bob"},
	}
	require.NoError(t, w.WriteBatch(rows))
	require.NoError(t, w.Close())

	rootStats, ok := sink.ColumnStatistics(0)
	require.True(t, ok)
	assert.Equal(t, uint64(2), rootStats.NumberOfValues)
	assert.True(t, rootStats.HasNull)

	idStats, ok := sink.ColumnStatistics(1)
	require.True(t, ok)
	require.NotNil(t, idStats.IntegerStatistics)
	assert.Equal(t, int64(1), idStats.IntegerStatistics.Minimum)
	assert.Equal(t, int64(2), idStats.IntegerStatistics.Maximum)

	nameStats, ok := sink.ColumnStatistics(2)
	require.True(t, ok)
	assert.True(t, nameStats.HasNull, "absent rows are nulls in every field column")
}

func TestStructWriterRejectsArityMismatch(t *testing.T) {
	schema := []metadata.OrcType{
		{Kind: metadata.STRUCT, Children: []int{1}, FieldNames: []string{"id"}},
		{Kind: metadata.LONG},
	}
	w, err := CreateColumnWriter(0, schema, types.Row(types.BigInt()), testOptions())
	require.NoError(t, err)

	err = w.WriteBatch([]interface{}{[]interface{}{int64(1), "extra"}})
	assert.Error(t, err)
}

func TestListWriterRoutesElements(t *testing.T) {
	sink := metadata.NewFooterWriter()
	opts := testOptions()
	opts.MetadataSink = sink

	schema := []metadata.OrcType{
		{Kind: metadata.LIST, Children: []int{1}},
		{Kind: metadata.LONG},
	}
	w, err := CreateColumnWriter(0, schema, types.Array(types.BigInt()), opts)
	require.NoError(t, err)

	values := []interface{}{
		[]interface{}{int64(1), int64(2)},
		[]interface{}{},
		nil,
		[]interface{}{int64(3)},
	}
	require.NoError(t, w.WriteBatch(values))
	require.NoError(t, w.Close())

	listStats, ok := sink.ColumnStatistics(0)
	require.True(t, ok)
	assert.Equal(t, uint64(3), listStats.NumberOfValues)
	assert.True(t, listStats.HasNull)

	elementStats, ok := sink.ColumnStatistics(1)
	require.True(t, ok)
	assert.Equal(t, uint64(3), elementStats.NumberOfValues)
}

func TestMapWriterRoutesEntries(t *testing.T) {
	sink := metadata.NewFooterWriter()
	opts := testOptions()
	opts.MetadataSink = sink

	schema := []metadata.OrcType{
		{Kind: metadata.MAP, Children: []int{1, 2}},
		{Kind: metadata.STRING},
		{Kind: metadata.LONG},
	}
	w, err := CreateColumnWriter(0, schema, types.Map(types.Varchar(0), types.BigInt()), opts)
	require.NoError(t, err)

	values := []interface{}{
		[]MapEntry{{Key: "a", Value: int64(1)}, {Key: "b", Value: int64(2)}},
		nil,
	}
	require.NoError(t, w.WriteBatch(values))
	require.NoError(t, w.Close())

	keyStats, ok := sink.ColumnStatistics(1)
	require.True(t, ok)
	assert.Equal(t, uint64(2), keyStats.NumberOfValues)

	valueStats, ok := sink.ColumnStatistics(2)
	require.True(t, ok)
	require.NotNil(t, valueStats.IntegerStatistics)
	assert.Equal(t, int64(3), valueStats.IntegerStatistics.Sum)
}

func TestWriterRejectsWrongValueType(t *testing.T) {
	schema := []metadata.OrcType{{Kind: metadata.BOOLEAN}}
	w, err := CreateColumnWriter(0, schema, types.Boolean(), testOptions())
	require.NoError(t, err)
	assert.Error(t, w.WriteBatch([]interface{}{"not a bool"}))
}

func TestCloseTwiceFails(t *testing.T) {
	schema := []metadata.OrcType{{Kind: metadata.DOUBLE}}
	w, err := CreateColumnWriter(0, schema, types.Double(), testOptions())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Error(t, w.Close())
	assert.Error(t, w.WriteBatch([]interface{}{1.5}))
}

func TestEstimatedSizeGrowsWithData(t *testing.T) {
	schema := []metadata.OrcType{
		{Kind: metadata.STRUCT, Children: []int{1}, FieldNames: []string{"v"}},
		{Kind: metadata.DOUBLE},
	}
	w, err := CreateColumnWriter(0, schema, types.Row(types.Double()), testOptions())
	require.NoError(t, err)

	before := w.EstimatedSize()
	require.NoError(t, w.WriteBatch([]interface{}{[]interface{}{1.5}, []interface{}{2.5}}))
	assert.Greater(t, w.EstimatedSize(), before)
}
