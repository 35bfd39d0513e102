package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := FromRecords(
		[]string{"a", " b ", "c"},
		[][]string{
			{"1", "x", ""},
			{"2"},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestValue_Or(t *testing.T) {
	assert.Equal(t, "x", Of("x").Or(Of("y")).String())
	assert.Equal(t, "y", Null.Or(Of("y")).String())
	assert.False(t, Null.Or(Null).Valid())
}

func TestText_EmptyIsNull(t *testing.T) {
	assert.False(t, Text("").Valid())
	assert.True(t, Of("").Valid())
}

func TestFromRecords_PadsAndTrimsHeader(t *testing.T) {
	tbl := sample(t)
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())
	assert.False(t, tbl.Get(0, "c").Valid())
	assert.False(t, tbl.Get(1, "b").Valid())
	assert.Equal(t, "2", tbl.Get(1, "a").String())
}

func TestFromRecords_DuplicateHeader(t *testing.T) {
	_, err := FromRecords([]string{"a", "a"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestFromRecords_BlankHeaderCells(t *testing.T) {
	tbl, err := FromRecords(
		[]string{"a", "", "c", "", " "},
		[][]string{
			{"1", "x", "3", "", "", "", "note"},
			{"2", "", "", "", "", ""},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1", "c", "Unnamed: 3", "Unnamed: 4", "Unnamed: 5", "Unnamed: 6"}, tbl.Columns())
	assert.Equal(t, "x", tbl.Get(0, "Unnamed: 1").String())
	assert.Equal(t, "note", tbl.Get(0, "Unnamed: 6").String())
	assert.False(t, tbl.Get(1, "Unnamed: 6").Valid())
}

func TestFromRecords_TrailingBlankDataCells(t *testing.T) {
	tbl, err := FromRecords([]string{"a"}, [][]string{{"1", "", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tbl.Columns())
}

func TestSelectAndDrop(t *testing.T) {
	tbl := sample(t)

	sel, err := tbl.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sel.Columns())
	assert.Equal(t, "1", sel.Get(0, "a").String())

	dropped, err := tbl.Drop("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, dropped.Columns())

	_, err = tbl.Drop("zzz")
	require.Error(t, err)
	_, err = tbl.Select("zzz")
	require.Error(t, err)
}

func TestRename(t *testing.T) {
	tbl := sample(t)
	out, err := tbl.Rename(map[string]string{"a": "alpha"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "b", "c"}, out.Columns())
	assert.Equal(t, "1", out.Get(0, "alpha").String())

	_, err = tbl.Rename(map[string]string{"a": "b"})
	require.Error(t, err)
}

func TestWithColumn(t *testing.T) {
	tbl := sample(t)

	out, err := tbl.WithColumn("d", []Value{Of("p"), Null})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, out.Columns())
	assert.Equal(t, "p", out.Get(0, "d").String())
	assert.False(t, tbl.Has("d"), "source table must not change")

	out, err = tbl.WithColumn("a", []Value{Of("9"), Of("8")})
	require.NoError(t, err)
	assert.Equal(t, "9", out.Get(0, "a").String())
	assert.Equal(t, "1", tbl.Get(0, "a").String())

	_, err = tbl.WithColumn("d", []Value{Null})
	require.Error(t, err)
}

func TestAppend(t *testing.T) {
	tbl := New("a", "b")
	require.NoError(t, tbl.Append(Row{Of("1"), Null}))
	require.Error(t, tbl.Append(Row{Of("1")}))
	assert.Equal(t, [][]string{{"1", ""}}, tbl.Records())
}

func TestColumn(t *testing.T) {
	tbl := sample(t)
	vals, err := tbl.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []Value{Of("1"), Of("2")}, vals)

	_, err = tbl.Column("nope")
	require.Error(t, err)
}
