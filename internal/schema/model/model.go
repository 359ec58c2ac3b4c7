// Package model defines the in-memory representation produced by parsing a
// single SQLite CREATE TABLE or ALTER TABLE statement. Every string-valued
// field is either a substring of a string copy of the input made during the
// parse or, for quoted identifiers and string literals, the value with its
// escapes already reversed. The model does not reference the caller's input
// slice; Span offsets are byte offsets into it.
package model

import "github.com/sqlitetools/ddlparse/internal/schema/tokenizer"

// Order is a column's sort direction within an indexed-column list.
type Order int

const (
	OrderUnspecified Order = iota
	OrderAsc
	OrderDesc
)

// FKAction is one of the actions a foreign key's ON DELETE/ON UPDATE clause
// may name.
type FKAction int

const (
	FKActionNone FKAction = iota
	FKActionSetNull
	FKActionSetDefault
	FKActionCascade
	FKActionRestrict
	FKActionNoAction
)

// ConflictClause is the action named by an ON CONFLICT clause.
type ConflictClause int

const (
	ConflictNone ConflictClause = iota
	ConflictRollback
	ConflictAbort
	ConflictFail
	ConflictIgnore
	ConflictReplace
)

// Deferrable is a foreign key's DEFERRABLE state.
type Deferrable int

const (
	DeferrableUnspecified Deferrable = iota
	IsDeferrable
	NotDeferrable
)

// Initially is a deferred foreign key's enforcement timing.
type Initially int

const (
	InitiallyUnspecified Initially = iota
	InitiallyDeferred
	InitiallyImmediate
)

// IndexedColumn is a column reference inside a PRIMARY KEY or UNIQUE list.
// Autoincrement is legal SQLite only on a single-column table PK, but the
// grammar (spec.md §4.3) accepts it positionally regardless — see DESIGN.md
// for the Open Question this preserves.
type IndexedColumn struct {
	Name          string
	Collate       string
	Order         Order
	Autoincrement bool
	Span          tokenizer.Span
}

// ForeignKeyClause is the REFERENCES tail shared by column- and table-level
// foreign keys.
type ForeignKeyClause struct {
	Table      string
	Columns    []string
	OnDelete   FKAction
	OnUpdate   FKAction
	MatchName  string // captured verbatim, never validated (spec.md §9)
	Deferrable Deferrable
	Initially  Initially
	Span       tokenizer.Span
}

// DefaultValue is the tagged variant a column's DEFAULT clause carries.
// Exactly one of the concrete implementations below is stored.
type DefaultValue interface {
	defaultValue()
}

// DefaultLiteral is a quoted string literal default. Quoted is true for
// both single- and double-quoted spellings: SQLite's lenient rule treats a
// double-quoted DEFAULT as a string, not an identifier (spec.md §9).
type DefaultLiteral struct {
	Text   string
	Quoted bool
}

func (DefaultLiteral) defaultValue() {}

// DefaultNumber is a signed numeric literal default, captured verbatim.
type DefaultNumber struct {
	Raw string
}

func (DefaultNumber) defaultValue() {}

// DefaultKeyword is one of NULL, TRUE, FALSE, CURRENT_TIME, CURRENT_DATE, or
// CURRENT_TIMESTAMP.
type DefaultKeyword struct {
	Name string
}

func (DefaultKeyword) defaultValue() {}

// DefaultExpression is a parenthesised default, captured verbatim by the
// expression capturer with the outer parentheses stripped.
type DefaultExpression struct {
	Expr string
}

func (DefaultExpression) defaultValue() {}

// ColumnConstraint is the tagged variant a single column_constraint clause
// produces. Name is the optional CONSTRAINT name prefix.
type ColumnConstraint interface {
	columnConstraint()
}

type PrimaryKeyColumnConstraint struct {
	Name          string
	Order         Order
	Autoincrement bool
	Conflict      ConflictClause
	Span          tokenizer.Span
}

func (PrimaryKeyColumnConstraint) columnConstraint() {}

type NotNullConstraint struct {
	Name     string
	Conflict ConflictClause
	Span     tokenizer.Span
}

func (NotNullConstraint) columnConstraint() {}

type UniqueColumnConstraint struct {
	Name     string
	Conflict ConflictClause
	Span     tokenizer.Span
}

func (UniqueColumnConstraint) columnConstraint() {}

// CheckConstraint is shared verbatim between column- and table-level CHECK
// clauses; both carry the same shape (optional name, verbatim expression).
type CheckConstraint struct {
	Name string
	Expr string
	Span tokenizer.Span
}

func (CheckConstraint) columnConstraint() {}
func (CheckConstraint) tableConstraint()  {}

type DefaultConstraint struct {
	Name  string
	Value DefaultValue
	Span  tokenizer.Span
}

func (DefaultConstraint) columnConstraint() {}

type CollateConstraint struct {
	Name      string
	Collation string
	Span      tokenizer.Span
}

func (CollateConstraint) columnConstraint() {}

type ReferencesConstraint struct {
	Name string
	FK   ForeignKeyClause
	Span tokenizer.Span
}

func (ReferencesConstraint) columnConstraint() {}

// GeneratedConstraint is a [GENERATED ALWAYS] AS (expr) [STORED|VIRTUAL]
// column constraint. Stored is false for VIRTUAL, the grammar's default
// when neither keyword follows the expression.
type GeneratedConstraint struct {
	Name   string
	Expr   string
	Stored bool
	Span   tokenizer.Span
}

func (GeneratedConstraint) columnConstraint() {}

// TableConstraint is the tagged variant a single table_constraint clause
// produces.
type TableConstraint interface {
	tableConstraint()
}

type PrimaryKeyTableConstraint struct {
	Name     string
	Columns  []IndexedColumn
	Conflict ConflictClause
	Span     tokenizer.Span
}

func (PrimaryKeyTableConstraint) tableConstraint() {}

type UniqueTableConstraint struct {
	Name     string
	Columns  []IndexedColumn
	Conflict ConflictClause
	Span     tokenizer.Span
}

func (UniqueTableConstraint) tableConstraint() {}

type ForeignKeyTableConstraint struct {
	Name         string
	LocalColumns []string
	FK           ForeignKeyClause
	Span         tokenizer.Span
}

func (ForeignKeyTableConstraint) tableConstraint() {}

// Column is a single column_def: a name, its raw (possibly empty) type
// name, and its constraints in source order.
type Column struct {
	Name        string
	Type        string
	Constraints []ColumnConstraint
	Span        tokenizer.Span
}

// Table is the output of a CREATE TABLE statement.
type Table struct {
	Name             string
	Schema           string
	IsTemp           bool
	IfNotExists      bool
	Columns          []*Column
	TableConstraints []TableConstraint
	WithoutRowID     bool
	Strict           bool
	Span             tokenizer.Span
}

// AlterKind identifies which alter_action an AlterTable statement performed.
type AlterKind int

const (
	AlterRenameTable AlterKind = iota
	AlterRenameColumn
	AlterAddColumn
	AlterDropColumn
)

// AlterTable is the output of an ALTER TABLE statement. Only the fields
// relevant to Kind are populated; the rest are zero values.
type AlterTable struct {
	Name   string
	Schema string
	Kind   AlterKind

	RenameTo    string // AlterRenameTable
	RenameFrom  string // AlterRenameColumn
	RenameColTo string // AlterRenameColumn
	AddColumn   *Column
	DropColumn  string // AlterDropColumn

	Span tokenizer.Span
}
