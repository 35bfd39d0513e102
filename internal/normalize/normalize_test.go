package normalize

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/obt-cli/internal/table"
)

func TestIntegral(t *testing.T) {
	tests := []struct {
		in    table.Value
		want  table.Value
		isErr bool
	}{
		{table.Null, table.Null, false},
		{table.Of(""), table.Null, false},
		{table.Of("  "), table.Null, false},
		{table.Of("nan"), table.Null, false},
		{table.Of("NaN"), table.Null, false},
		{table.Of("<NA>"), table.Null, false},
		{table.Of("5551234567"), table.Of("5551234567"), false},
		{table.Of(" 5551234567 "), table.Of("5551234567"), false},
		{table.Of("5551234567.0"), table.Of("5551234567"), false},
		{table.Of("5.551234567e+09"), table.Of("5551234567"), false},
		{table.Of("+42"), table.Of("42"), false},
		{table.Of("12.5"), table.Null, true},
		{table.Of("abc"), table.Null, true},
		{table.Of("inf"), table.Null, true},
		{table.Of("1e30"), table.Null, true},
	}
	for _, tt := range tests {
		got, err := Integral(tt.in)
		if tt.isErr {
			assert.Error(t, err, "input %q", tt.in.String())
			continue
		}
		require.NoError(t, err, "input %q", tt.in.String())
		assert.Equal(t, tt.want, got, "input %q", tt.in.String())
	}
}

func TestUpper(t *testing.T) {
	assert.Equal(t, table.Of("MARY ANN"), Upper(table.Of("Mary Ann")))
	assert.Equal(t, table.Of("JOSÉ"), Upper(table.Of("josé")))
	assert.False(t, Upper(table.Null).Valid())
	assert.False(t, Upper(table.Of("")).Valid())
}

func TestLanguageLabel(t *testing.T) {
	assert.Equal(t, table.Of(English), LanguageLabel(table.Of("en_US")))
	assert.Equal(t, table.Of(Spanish), LanguageLabel(table.Of("es_MX")))
	assert.Equal(t, table.Of(Spanish), LanguageLabel(table.Of("spanish")))
	assert.Equal(t, table.Of(English), LanguageLabel(table.Of(" English ")))
	assert.False(t, LanguageLabel(table.Of("French")).Valid())
	assert.False(t, LanguageLabel(table.Null).Valid())
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, table.Of(English), Language(table.Of("en_US")))
	assert.Equal(t, table.Of(Spanish), Language(table.Of("es_ES")))
	assert.Equal(t, table.Of(Spanish), Language(table.Of("es_MX")))
	assert.False(t, Language(table.Of("English")).Valid(), "labels are not locale codes")
	assert.False(t, Language(table.Of("spanish")).Valid())
	assert.False(t, Language(table.Of("fr_FR")).Valid())
	assert.False(t, Language(table.Of("")).Valid())
	assert.False(t, Language(table.Null).Valid())
}

func leadTable(t *testing.T, records [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(
		[]string{"lead_id", "lead_first_name", "lead_phone", "lead_language_name", "policy_type", "notes"},
		records,
	)
	require.NoError(t, err)
	return tbl
}

var leadSchema = Schema{
	Source: "lead",
	Columns: []Column{
		{Name: "lead_id", Role: RoleText},
		{Name: "lead_first_name", Role: RoleUpper},
		{Name: "lead_phone", Role: RoleIntegral},
		{Name: "lead_language_name", Role: RoleLanguage},
		{Name: "policy_type", Role: RoleDrop},
	},
}

func TestApply_KeepsUndeclaredAndDrops(t *testing.T) {
	in := leadTable(t, [][]string{
		{"L1", "mary", "5551234567.0", "en_US", "ACA", "hello"},
		{"L2", "", "", "fr_FR", "ACA", ""},
	})

	out, err := Apply(in, leadSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"lead_id", "lead_first_name", "lead_phone", "lead_language_name", "notes"}, out.Columns())

	assert.Equal(t, "MARY", out.Get(0, "lead_first_name").String())
	assert.Equal(t, "5551234567", out.Get(0, "lead_phone").String())
	assert.Equal(t, English, out.Get(0, "lead_language_name").String())
	assert.Equal(t, "hello", out.Get(0, "notes").String())

	assert.False(t, out.Get(1, "lead_first_name").Valid())
	assert.False(t, out.Get(1, "lead_phone").Valid())
	assert.False(t, out.Get(1, "lead_language_name").Valid())
	assert.False(t, out.Get(1, "notes").Valid())

	// input untouched
	assert.Equal(t, "mary", in.Get(0, "lead_first_name").String())
}

func TestApply_IdentifierColumnsAreDigitsOrAbsent(t *testing.T) {
	in := leadTable(t, [][]string{
		{"L1", "a", "5551234567.0", "", "", ""},
		{"L2", "b", "nan", "", "", ""},
		{"L3", "c", "5.551234568e9", "", "", ""},
		{"L4", "d", "", "", "", ""},
	})
	out, err := Apply(in, leadSchema)
	require.NoError(t, err)

	digits := regexp.MustCompile(`^-?[0-9]+$`)
	phones, err := out.Column("lead_phone")
	require.NoError(t, err)
	for _, p := range phones {
		if p.Valid() {
			assert.Regexp(t, digits, p.String())
			assert.NotContains(t, p.String(), ".")
			assert.NotEqual(t, "nan", p.String())
		}
	}
}

func TestApply_Project(t *testing.T) {
	in := leadTable(t, [][]string{{"L1", "mary", "1", "en_US", "ACA", "x"}})
	s := Schema{
		Source:  "sales",
		Project: true,
		Columns: []Column{
			{Name: "lead_phone", Role: RoleIntegral},
			{Name: "lead_id", Role: RoleText},
		},
	}
	out, err := Apply(in, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"lead_phone", "lead_id"}, out.Columns())
}

func TestApply_MissingColumn(t *testing.T) {
	in := leadTable(t, nil)
	s := leadSchema
	s.Columns = append(append([]Column(nil), s.Columns...), Column{Name: "lead_state"}, Column{Name: "vendor"})

	_, err := Apply(in, s)
	require.Error(t, err)

	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "lead", se.Source)
	assert.Equal(t, []string{"lead_state", "vendor"}, se.Missing)
}

func TestApply_CoercionIsFatal(t *testing.T) {
	in := leadTable(t, [][]string{
		{"L1", "a", "555", "", "", ""},
		{"L2", "b", "call me", "", "", ""},
	})
	_, err := Apply(in, leadSchema)
	require.Error(t, err)

	var ce *CoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "lead_phone", ce.Column)
	assert.Equal(t, 1, ce.Row)
	assert.Equal(t, "call me", ce.Value)
}
