package typemap

import (
	"strings"
	"testing"

	"github.com/sqlitetools/ddlparse/internal/schema/model"
)

func TestResolveDefaultAffinities(t *testing.T) {
	r := NewResolver(nil)
	cases := []struct {
		colType string
		want    string
	}{
		{"INTEGER", "int64"},
		{"BIGINT", "int64"},
		{"REAL", "float64"},
		{"BLOB", "[]byte"},
		{"BOOLEAN", "bool"},
		{"VARCHAR(255)", "string"},
	}
	for _, tc := range cases {
		col := &model.Column{Name: "x", Type: tc.colType}
		got := r.Resolve(col)
		if got.GoType != tc.want {
			t.Errorf("Resolve(%q).GoType = %q, want %q", tc.colType, got.GoType, tc.want)
		}
	}
}

func TestResolveNullablePointer(t *testing.T) {
	r := NewResolver(nil)

	notNull := &model.Column{Name: "n", Type: "INTEGER", Constraints: []model.ColumnConstraint{model.NotNullConstraint{}}}
	if got := r.Resolve(notNull); got.Pointer {
		t.Fatal("NOT NULL column should not suggest a pointer type")
	}

	nullable := &model.Column{Name: "n", Type: "INTEGER"}
	if got := r.Resolve(nullable); !got.Pointer {
		t.Fatal("nullable column should suggest a pointer type")
	}
}

func TestResolveUUIDHeuristic(t *testing.T) {
	r := NewResolver(nil)
	for _, name := range []string{"id", "uuid", "user_id", "owner_uuid"} {
		col := &model.Column{Name: name, Type: "TEXT"}
		got := r.Resolve(col)
		if got.GoType != "uuid.UUID" {
			t.Errorf("Resolve(%q TEXT).GoType = %q, want uuid.UUID", name, got.GoType)
		}
		if got.GoImport != "github.com/google/uuid" {
			t.Errorf("Resolve(%q TEXT).GoImport = %q", name, got.GoImport)
		}
	}

	col := &model.Column{Name: "description", Type: "TEXT"}
	if got := r.Resolve(col); got.GoType != "string" {
		t.Fatalf("non-id TEXT column GoType = %q, want string", got.GoType)
	}
}

func TestResolveDecimalForNumeric(t *testing.T) {
	r := NewResolver(nil)
	for _, colType := range []string{"NUMERIC", "DECIMAL(10,2)"} {
		col := &model.Column{Name: "amount", Type: colType}
		got := r.Resolve(col)
		if got.GoType != "decimal.Decimal" {
			t.Errorf("Resolve(%q).GoType = %q, want decimal.Decimal", colType, got.GoType)
		}
	}
}

func TestResolveCustomTypeOverride(t *testing.T) {
	r := NewResolver([]CustomTypeMapping{
		{SQLiteType: "TEXT", GoType: "MyString", GoImport: "example.com/mypkg"},
	})
	col := &model.Column{Name: "id", Type: "TEXT"}
	got := r.Resolve(col)
	if got.GoType != "MyString" || got.GoImport != "example.com/mypkg" {
		t.Fatalf("override not applied: %+v", got)
	}
}

func TestRenderStructProducesValidGo(t *testing.T) {
	columns := []Mapping{
		{ColumnName: "id", GoType: "uuid.UUID", GoImport: "github.com/google/uuid"},
		{ColumnName: "email", GoType: "string", Pointer: true},
	}
	out, err := RenderStruct("models", "users", columns)
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	src := string(out)
	if !strings.Contains(src, "package models") {
		t.Fatalf("missing package clause: %s", src)
	}
	if !strings.Contains(src, "type Users struct") {
		t.Fatalf("missing struct type: %s", src)
	}
	if !strings.Contains(src, "uuid.UUID") {
		t.Fatalf("missing field type: %s", src)
	}
	if !strings.Contains(src, "*string") {
		t.Fatalf("missing pointer field: %s", src)
	}
}
