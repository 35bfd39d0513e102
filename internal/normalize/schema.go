package normalize

import (
	"github.com/sells-group/obt-cli/internal/table"
)

// Role tells Apply how to canonicalize a column.
type Role int

const (
	RoleText     Role = iota // rendered as text, empty → absent
	RoleIntegral             // identifier coerced to integer text
	RoleUpper                // name, upper-cased
	RoleLanguage             // locale code mapped to a language label
	RoleLanguageLabel        // locale code or language label
	RoleDrop                 // required on input, removed from output
)

// Column declares one required input column and its role.
type Column struct {
	Name string
	Role Role
}

// Schema declares the columns a source sheet must carry.
type Schema struct {
	Source  string
	Columns []Column
	// Project keeps only declared columns, in declared order. Otherwise
	// undeclared columns pass through as text in input order.
	Project bool
}

// Apply validates t against s and returns a new, canonicalized table.
// A missing declared column yields *SchemaError; an identifier that cannot be
// read as an integer yields *CoercionError.
func Apply(t *table.Table, s Schema) (*table.Table, error) {
	roles := make(map[string]Role, len(s.Columns))
	var missing []string
	for _, c := range s.Columns {
		roles[c.Name] = c.Role
		if !t.Has(c.Name) {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: s.Source, Missing: missing}
	}

	var names []string
	if s.Project {
		for _, c := range s.Columns {
			if c.Role != RoleDrop {
				names = append(names, c.Name)
			}
		}
	} else {
		for _, c := range t.Columns() {
			if r, ok := roles[c]; !ok || r != RoleDrop {
				names = append(names, c)
			}
		}
	}

	out, err := t.Select(names...)
	if err != nil {
		return nil, err
	}
	for r, row := range out.Rows {
		for i, name := range names {
			v, err := apply(roles[name], row[i])
			if err != nil {
				return nil, &CoercionError{
					Source: s.Source,
					Column: name,
					Row:    r,
					Value:  row[i].String(),
					Err:    err,
				}
			}
			row[i] = v
		}
	}
	return out, nil
}

func apply(role Role, v table.Value) (table.Value, error) {
	switch role {
	case RoleIntegral:
		return Integral(v)
	case RoleUpper:
		return Upper(v), nil
	case RoleLanguage:
		return Language(v), nil
	case RoleLanguageLabel:
		return LanguageLabel(v), nil
	default:
		return Text(v), nil
	}
}
