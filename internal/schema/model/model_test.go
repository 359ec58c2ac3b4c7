package model

import "testing"

// TestCheckConstraintImplementsBothVariants verifies at compile time that
// CheckConstraint satisfies both the column- and table-level constraint
// interfaces, since its shape is identical in both grammar positions.
func TestCheckConstraintImplementsBothVariants(t *testing.T) {
	var _ ColumnConstraint = CheckConstraint{}
	var _ TableConstraint = CheckConstraint{}
}

func TestDefaultValueVariantsImplementInterface(t *testing.T) {
	variants := []DefaultValue{
		DefaultLiteral{Text: "x", Quoted: true},
		DefaultNumber{Raw: "1"},
		DefaultKeyword{Name: "NULL"},
		DefaultExpression{Expr: "1+1"},
	}
	if len(variants) != 4 {
		t.Fatalf("expected 4 DefaultValue variants, got %d", len(variants))
	}
}

func TestBareIdentifierDefaultIsUnquotedLiteral(t *testing.T) {
	dv := DefaultLiteral{Text: "some_ident", Quoted: false}
	if dv.Quoted {
		t.Fatal("bare identifier default must report Quoted=false")
	}
}
