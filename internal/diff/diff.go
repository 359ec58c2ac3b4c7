// Package diff compares two parsed tables column by column and constraint
// by constraint, the way a schema-migration tool inspects a before/after
// pair of CREATE TABLE statements.
package diff

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/sqlitetools/ddlparse/internal/schema/model"
)

// ChangeKind identifies what a Change describes.
type ChangeKind int

const (
	ColumnAdded ChangeKind = iota
	ColumnRemoved
	ColumnModified
	TableConstraintAdded
	TableConstraintRemoved
	TableOptionChanged
)

func (k ChangeKind) String() string {
	switch k {
	case ColumnAdded:
		return "column added"
	case ColumnRemoved:
		return "column removed"
	case ColumnModified:
		return "column modified"
	case TableConstraintAdded:
		return "table constraint added"
	case TableConstraintRemoved:
		return "table constraint removed"
	case TableOptionChanged:
		return "table option changed"
	default:
		return "unknown"
	}
}

// Change describes a single structural difference between two table
// definitions.
type Change struct {
	Kind   ChangeKind
	Name   string // column name, or a constraint/option label
	Detail string // human-readable description of what changed
}

// ignoreSpans drops byte-offset bookkeeping from the comparison: two
// columns with identical grammar but different source positions (e.g. after
// reordering other columns) are not a structural difference.
var ignoreSpans = cmp.FilterPath(func(p cmp.Path) bool {
	return p.Last().String() == ".Span"
}, cmp.Ignore())

// Tables compares before and after column-by-column and constraint-by-
// constraint, returning every structural difference in before's column
// order, then after's newly-added columns, then table constraints.
func Tables(before, after *model.Table) []Change {
	var changes []Change

	beforeCols := indexColumns(before)
	afterCols := indexColumns(after)

	for _, c := range before.Columns {
		bCol := beforeCols[c.Name]
		aCol, ok := afterCols[c.Name]
		if !ok {
			changes = append(changes, Change{Kind: ColumnRemoved, Name: c.Name})
			continue
		}
		if d := cmp.Diff(bCol, aCol, ignoreSpans); d != "" {
			changes = append(changes, Change{Kind: ColumnModified, Name: c.Name, Detail: d})
		}
	}
	for _, c := range after.Columns {
		if _, ok := beforeCols[c.Name]; !ok {
			changes = append(changes, Change{Kind: ColumnAdded, Name: c.Name})
		}
	}

	changes = append(changes, diffTableConstraints(before.TableConstraints, after.TableConstraints)...)
	changes = append(changes, diffTableOptions(before, after)...)

	return changes
}

func indexColumns(t *model.Table) map[string]*model.Column {
	idx := make(map[string]*model.Column, len(t.Columns))
	for _, c := range t.Columns {
		idx[c.Name] = c
	}
	return idx
}

func diffTableConstraints(before, after []model.TableConstraint) []Change {
	var changes []Change
	beforeSet := constraintSignatures(before)
	afterSet := constraintSignatures(after)

	for sig := range beforeSet {
		if _, ok := afterSet[sig]; !ok {
			changes = append(changes, Change{Kind: TableConstraintRemoved, Name: sig})
		}
	}
	for sig := range afterSet {
		if _, ok := beforeSet[sig]; !ok {
			changes = append(changes, Change{Kind: TableConstraintAdded, Name: sig})
		}
	}
	return changes
}

func constraintSignatures(cs []model.TableConstraint) map[string]struct{} {
	sigs := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		sigs[constraintSignature(c)] = struct{}{}
	}
	return sigs
}

// constraintSignature renders a table constraint as a stable string key for
// set comparison, since table constraints carry no identity beyond their
// shape and optional name.
func constraintSignature(c model.TableConstraint) string {
	switch v := c.(type) {
	case model.PrimaryKeyTableConstraint:
		return fmt.Sprintf("PRIMARY KEY(%v) name=%q conflict=%v", columnNames(v.Columns), v.Name, v.Conflict)
	case model.UniqueTableConstraint:
		return fmt.Sprintf("UNIQUE(%v) name=%q conflict=%v", columnNames(v.Columns), v.Name, v.Conflict)
	case model.ForeignKeyTableConstraint:
		return fmt.Sprintf("FOREIGN KEY(%v) -> %s(%v) name=%q", v.LocalColumns, v.FK.Table, v.FK.Columns, v.Name)
	case model.CheckConstraint:
		return fmt.Sprintf("CHECK(%s) name=%q", v.Expr, v.Name)
	default:
		return fmt.Sprintf("%T", c)
	}
}

func columnNames(cols []model.IndexedColumn) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func diffTableOptions(before, after *model.Table) []Change {
	var changes []Change
	if before.WithoutRowID != after.WithoutRowID {
		changes = append(changes, Change{Kind: TableOptionChanged, Name: "WITHOUT ROWID", Detail: fmt.Sprintf("%v -> %v", before.WithoutRowID, after.WithoutRowID)})
	}
	if before.Strict != after.Strict {
		changes = append(changes, Change{Kind: TableOptionChanged, Name: "STRICT", Detail: fmt.Sprintf("%v -> %v", before.Strict, after.Strict)})
	}
	return changes
}
