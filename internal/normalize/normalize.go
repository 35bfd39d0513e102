// Package normalize canonicalizes raw sheet values so equality joins across
// sources compare like with like.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/obt-cli/internal/table"
)

// Canonical language labels.
const (
	English = "English"
	Spanish = "Spanish"
)

// Spreadsheet exports render missing numbers with these tokens.
var nullTokens = map[string]bool{
	"nan":  true,
	"<na>": true,
	"null": true,
	"none": true,
}

// 2^63, the first float64 past the int64 range
const int64Bound = 1 << 63

// Integral coerces an identifier cell to canonical integer text.
// Absent, blank and NaN-like cells become absent. Float-like text with a zero
// fraction ("5551234567.0", "5.551234567e9") is accepted. Anything else is an error.
func Integral(v table.Value) (table.Value, error) {
	if !v.Valid() {
		return table.Null, nil
	}
	s := strings.TrimSpace(v.String())
	if s == "" || nullTokens[strings.ToLower(s)] {
		return table.Null, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.Of(strconv.FormatInt(n, 10)), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return table.Null, eris.New("not numeric")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return table.Null, eris.New("not finite")
	}
	if f != math.Trunc(f) {
		return table.Null, eris.New("fractional value")
	}
	if f >= int64Bound || f < -int64Bound {
		return table.Null, eris.New("out of int64 range")
	}
	return table.Of(strconv.FormatInt(int64(f), 10)), nil
}

// Text renders a cell as text; an empty cell is absent.
func Text(v table.Value) table.Value {
	if !v.Valid() {
		return table.Null
	}
	return table.Text(v.String())
}

// Upper upper-cases a name cell after NFC composition so that precomposed and
// decomposed accents compare equal.
func Upper(v table.Value) table.Value {
	v = Text(v)
	if !v.Valid() {
		return v
	}
	return table.Of(cases.Upper(language.Und).String(norm.NFC.String(v.String())))
}

var languageCodes = map[string]string{
	"en_US": English,
	"es_ES": Spanish,
	"es_MX": Spanish,
}

// Language maps a locale code to English, Spanish, or absent.
func Language(v table.Value) table.Value {
	if !v.Valid() {
		return table.Null
	}
	if label, ok := languageCodes[strings.TrimSpace(v.String())]; ok {
		return table.Of(label)
	}
	return table.Null
}

// LanguageLabel is Language for columns that may already carry the English
// or Spanish label, matched case-insensitively.
func LanguageLabel(v table.Value) table.Value {
	if l := Language(v); l.Valid() || !v.Valid() {
		return l
	}
	s := strings.TrimSpace(v.String())
	switch {
	case strings.EqualFold(s, English):
		return table.Of(English)
	case strings.EqualFold(s, Spanish):
		return table.Of(Spanish)
	}
	return table.Null
}
