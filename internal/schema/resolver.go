// Package schema maps the column names of marketplace exports onto canonical
// field names using static, ordered alias lists.
package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	apierrors "autoreport/internal/errors"
)

// Mapping maps a canonical field to the source column that carries it
type Mapping map[string]string

// Column returns the source column for field
func (m Mapping) Column(field string) (string, bool) {
	col, ok := m[field]
	return col, ok
}

// Fields returns the resolved canonical fields in alias-map order
func (m Mapping) Fields(am AliasMap) []string {
	out := make([]string, 0, len(m))
	for _, fa := range am.Fields {
		if _, ok := m[fa.Field]; ok {
			out = append(out, fa.Field)
		}
	}
	return out
}

// Resolve maps columns onto the fields of am. For each field the aliases are
// tried in order; an alias matches a column exactly, or failing that after
// NFKC normalization and case folding. The first matching alias wins.
// A required field without a match yields a *errors.SchemaError.
func Resolve(columns []string, am AliasMap) (Mapping, error) {
	folder := cases.Fold()

	exact := make(map[string]string, len(columns))
	folded := make(map[string]string, len(columns))
	for _, col := range columns {
		if _, seen := exact[col]; !seen {
			exact[col] = col
		}
		key := foldKey(folder, col)
		if _, seen := folded[key]; !seen {
			folded[key] = col
		}
	}

	mapping := make(Mapping, len(am.Fields))
	for _, fa := range am.Fields {
		if col, ok := match(fa.Aliases, exact, folded, folder); ok {
			mapping[fa.Field] = col
			continue
		}
		if fa.Required {
			return nil, apierrors.NewSchemaError(string(am.Family), fa.Field, columns)
		}
	}

	return mapping, nil
}

// ResolveFamily resolves columns against a registered family
func ResolveFamily(columns []string, f Family) (Mapping, error) {
	am, ok := Lookup(f)
	if !ok {
		return nil, apierrors.NewConfigError("unknown source family "+string(f), nil)
	}
	return Resolve(columns, am)
}

func match(aliases []string, exact, folded map[string]string, folder cases.Caser) (string, bool) {
	for _, alias := range aliases {
		if col, ok := exact[alias]; ok {
			return col, true
		}
		if col, ok := folded[foldKey(folder, alias)]; ok {
			return col, true
		}
	}
	return "", false
}

func foldKey(folder cases.Caser, s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	return folder.String(norm.NFKC.String(s))
}
