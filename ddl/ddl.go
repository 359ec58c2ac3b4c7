// Package ddl is the public entry point for parsing a single SQLite
// CREATE TABLE or ALTER TABLE statement. It wraps internal/schema/parser
// and internal/schema/model behind the stable surface described by the
// external interface: one Parse call, one ParseError type, and a Model
// carrying exactly one of a Table or an AlterTable.
package ddl

import (
	"github.com/sqlitetools/ddlparse/internal/schema/model"
	"github.com/sqlitetools/ddlparse/internal/schema/parser"
)

// ErrorCode is the stable, ABI-fixed error taxonomy. Numeric values are
// fixed by declaration order and must not be reordered.
type ErrorCode = parser.ErrorCode

const (
	OK                   = parser.OK
	MemoryError          = parser.MemoryError
	SyntaxError          = parser.SyntaxError
	UnsupportedStatement = parser.UnsupportedStatement
	UnterminatedLiteral  = parser.UnterminatedLiteral
	UnterminatedComment  = parser.UnterminatedComment
)

// ParseError is the only error type Parse ever returns.
type ParseError = parser.ParseError

// Table is the parsed shape of a CREATE TABLE statement.
type Table = model.Table

// AlterTable is the parsed shape of an ALTER TABLE statement.
type AlterTable = model.AlterTable

// Column is a single column_def within a Table or an AlterTable's
// ADD COLUMN action.
type Column = model.Column

// AlterKind identifies which alter_action an AlterTable statement performed.
type AlterKind = model.AlterKind

const (
	AlterRenameTable  = model.AlterRenameTable
	AlterRenameColumn = model.AlterRenameColumn
	AlterAddColumn    = model.AlterAddColumn
	AlterDropColumn   = model.AlterDropColumn
)

// Model wraps the result of a successful Parse call. Exactly one of
// Table() or AlterTable() is non-nil.
type Model struct {
	table *model.Table
	alter *model.AlterTable
}

// Table returns the parsed CREATE TABLE result, or nil if the input was an
// ALTER TABLE statement.
func (m *Model) Table() *Table {
	if m == nil {
		return nil
	}
	return m.table
}

// AlterTable returns the parsed ALTER TABLE result, or nil if the input was
// a CREATE TABLE statement.
func (m *Model) AlterTable() *AlterTable {
	if m == nil {
		return nil
	}
	return m.alter
}

// Release is a no-op retained for API parity with the destructor described
// by the original resource model; the model's memory is reclaimed by the
// garbage collector once the last reference to it is dropped.
func (m *Model) Release() {}

// Parse parses a single CREATE TABLE or ALTER TABLE statement from input.
// On any failure it returns a *ParseError identifying one of the five
// stable error codes and, where applicable, the byte offset the failure
// was detected at. Parsing is all-or-nothing: the first mismatch aborts
// the parse, there is no diagnostic accumulation or recovery.
func Parse(input []byte) (*Model, error) {
	table, alter, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return &Model{table: table, alter: alter}, nil
}
