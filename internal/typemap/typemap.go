// Package typemap suggests a Go type for a parsed SQLite column, and renders
// a Go struct from a table's column mappings.
package typemap

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/sqlitetools/ddlparse/internal/schema/model"
)

// Mapping is the resolved Go-side representation of one column.
type Mapping struct {
	ColumnName string
	SQLiteType string
	GoType     string
	GoImport   string
	Pointer    bool
}

// override pairs a custom SQLite-type-to-Go-type rule with its import.
type override struct {
	goType   string
	goImport string
}

// Resolver maps SQLite column types to Go types, consulting config-provided
// overrides before falling back to ddlparse's built-in suggestions.
type Resolver struct {
	overrides map[string]override
}

// NewResolver builds a Resolver from CLI-configured custom type overrides.
// overrides is typically config.Plan.CustomTypes; it is accepted here as a
// minimal structural type so that internal/typemap does not depend on
// internal/config.
func NewResolver(overrides []CustomTypeMapping) *Resolver {
	r := &Resolver{overrides: make(map[string]override, len(overrides))}
	for _, o := range overrides {
		r.overrides[normalizeType(o.SQLiteType)] = override{goType: o.GoType, goImport: o.GoImport}
	}
	return r
}

// CustomTypeMapping mirrors config.CustomTypeMapping's shape. Declared here
// rather than imported to keep internal/typemap free of a dependency on
// internal/config; internal/config depends on nothing schema-related, so
// either direction would work, but callers already hold a
// []config.CustomTypeMapping and this keeps the conversion at the call site
// trivial (identical field names, an explicit slice-literal copy).
type CustomTypeMapping struct {
	SQLiteType string
	GoType     string
	GoImport   string
}

// Resolve suggests a Go type for column, consulting overrides first, then
// ddlparse's built-in heuristics: ID-like TEXT columns suggest uuid.UUID,
// NUMERIC/DECIMAL columns suggest decimal.Decimal, and otherwise the plain
// SQLite type-affinity mapping applies.
func (r *Resolver) Resolve(column *model.Column) Mapping {
	base := normalizeType(column.Type)
	nullable := !hasNotNullConstraint(column)

	m := Mapping{ColumnName: column.Name, SQLiteType: column.Type}

	if r != nil {
		if o, ok := r.overrides[base]; ok {
			m.GoType, m.GoImport = o.goType, o.goImport
			m.Pointer = nullable
			return m
		}
	}

	switch {
	case base == "TEXT" && looksLikeUUIDColumn(column.Name):
		m.GoType, m.GoImport = "uuid.UUID", "github.com/google/uuid"
	case base == "NUMERIC" || base == "DECIMAL":
		m.GoType, m.GoImport = "decimal.Decimal", "github.com/shopspring/decimal"
	default:
		m.GoType = defaultGoType(base)
	}
	m.Pointer = nullable
	return m
}

func looksLikeUUIDColumn(name string) bool {
	lower := strings.ToLower(name)
	return lower == "id" || lower == "uuid" || strings.HasSuffix(lower, "_id") || strings.HasSuffix(lower, "_uuid")
}

func defaultGoType(base string) string {
	switch base {
	case "INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT":
		return "int64"
	case "REAL", "FLOAT", "DOUBLE":
		return "float64"
	case "TEXT", "VARCHAR", "CHAR", "CLOB":
		return "string"
	case "BLOB":
		return "[]byte"
	case "BOOLEAN", "BOOL":
		return "bool"
	default:
		return "any"
	}
}

// hasNotNullConstraint reports whether column carries a NOT NULL constraint,
// i.e. whether its suggested Go type should NOT be a pointer.
func hasNotNullConstraint(column *model.Column) bool {
	for _, c := range column.Constraints {
		if _, ok := c.(model.NotNullConstraint); ok {
			return true
		}
	}
	return false
}

// normalizeType extracts the bare type keyword from a column's raw type
// text, stripping any size/precision spec, e.g. "VARCHAR(255)" -> "VARCHAR".
func normalizeType(sqliteType string) string {
	s := strings.TrimSpace(sqliteType)
	upper := strings.ToUpper(s)
	for i, r := range upper {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return upper[:i]
		}
	}
	return upper
}

const structTemplate = `package {{.Package}}

{{range .Imports}}import "{{.}}"
{{end}}
type {{.TypeName}} struct {
{{range .Fields}}	{{.FieldName}} {{if .Pointer}}*{{end}}{{.GoType}} ` + "`" + `json:"{{.JSONName}}"` + "`" + `
{{end}}}
`

type structField struct {
	FieldName string
	GoType    string
	Pointer   bool
	JSONName  string
}

// RenderStruct renders a Go struct for tableName from its resolved column
// mappings, formatting the result with goimports, matching the way the
// teacher formats generated output before writing it to disk.
func RenderStruct(pkg, tableName string, columns []Mapping) ([]byte, error) {
	imps := make(map[string]struct{})
	fields := make([]structField, 0, len(columns))
	for _, c := range columns {
		if c.GoImport != "" {
			imps[c.GoImport] = struct{}{}
		}
		fields = append(fields, structField{
			FieldName: exportedFieldName(c.ColumnName),
			GoType:    c.GoType,
			Pointer:   c.Pointer,
			JSONName:  c.ColumnName,
		})
	}
	importPaths := make([]string, 0, len(imps))
	for imp := range imps {
		importPaths = append(importPaths, imp)
	}

	tmpl, err := template.New("struct").Parse(structTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse struct template: %w", err)
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Package  string
		TypeName string
		Imports  []string
		Fields   []structField
	}{
		Package:  pkg,
		TypeName: exportedFieldName(tableName),
		Imports:  importPaths,
		Fields:   fields,
	})
	if err != nil {
		return nil, fmt.Errorf("render struct template for %s: %w", tableName, err)
	}

	formatted, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("goimports %s: %w", tableName, err)
	}
	return formatted, nil
}

// exportedFieldName converts a snake_case SQL identifier to an exported Go
// identifier, e.g. "user_id" -> "UserID".
func exportedFieldName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if upper := strings.ToUpper(p); isCommonInitialism(upper) {
			b.WriteString(upper)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

var commonInitialisms = map[string]struct{}{
	"ID": {}, "UUID": {}, "URL": {}, "API": {}, "JSON": {}, "HTTP": {}, "SQL": {},
}

func isCommonInitialism(s string) bool {
	_, ok := commonInitialisms[s]
	return ok
}
