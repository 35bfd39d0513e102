package dedupe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/obt-cli/internal/table"
)

func TestRows_FirstOccurrenceWins(t *testing.T) {
	in, err := table.FromRecords([]string{"A", "B", "v"}, [][]string{
		{"1", "1", "x"},
		{"1", "1", "y"},
		{"2", "1", "z"},
	})
	require.NoError(t, err)

	out, err := Rows(in, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "1", "x"}, {"2", "1", "z"}}, out.Records())

	rep, err := Loss(in.Len(), out.Len())
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Raw)
	assert.Equal(t, 2, rep.Kept)
	assert.InDelta(t, 33.33, rep.LossPct, 0.0001)
}

func TestRows_WholeRow(t *testing.T) {
	in, err := table.FromRecords([]string{"A", "B"}, [][]string{
		{"1", ""},
		{"1", ""},
		{"1", "2"},
	})
	require.NoError(t, err)

	out, err := Rows(in)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", ""}, {"1", "2"}}, out.Records())
}

func TestRows_AbsentDistinctFromEmptyText(t *testing.T) {
	in := table.New("A")
	require.NoError(t, in.Append(table.Row{table.Null}))
	require.NoError(t, in.Append(table.Row{table.Of("")}))
	require.NoError(t, in.Append(table.Row{table.Null}))

	out, err := Rows(in, "A")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
}

func TestRows_UnknownKey(t *testing.T) {
	_, err := Rows(table.New("A"), "B")
	require.Error(t, err)
}

func TestRows_DoesNotAliasInput(t *testing.T) {
	in, err := table.FromRecords([]string{"A"}, [][]string{{"1"}})
	require.NoError(t, err)
	out, err := Rows(in)
	require.NoError(t, err)
	out.Rows[0][0] = table.Of("9")
	assert.Equal(t, "1", in.Get(0, "A").String())
}

func TestLoss_EmptyInput(t *testing.T) {
	_, err := Loss(0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestLoss_NoLoss(t *testing.T) {
	rep, err := Loss(10, 10)
	require.NoError(t, err)
	assert.Zero(t, rep.LossPct)
}
