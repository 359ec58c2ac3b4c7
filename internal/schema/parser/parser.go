// Package parser implements a recursive-descent parser for a single SQLite
// CREATE TABLE or ALTER TABLE statement (spec.md §4.3). Parsing is
// all-or-nothing: on the first grammar mismatch the parser returns a
// *ParseError identifying the failure category and stops — there is no
// diagnostic-accumulation or error recovery, unlike a multi-statement
// schema-catalog parser.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sqlitetools/ddlparse/internal/schema/model"
	"github.com/sqlitetools/ddlparse/internal/schema/tokenizer"
)

// ErrorCode is the external-visible, stable error taxonomy from spec.md §6.
// Numeric values are part of the ABI surface callers may key on.
type ErrorCode int

const (
	OK ErrorCode = iota
	MemoryError
	SyntaxError
	UnsupportedStatement
	UnterminatedLiteral
	UnterminatedComment
)

func (c ErrorCode) String() string {
	switch c {
	case OK:
		return "OK"
	case MemoryError:
		return "MemoryError"
	case SyntaxError:
		return "SyntaxError"
	case UnsupportedStatement:
		return "UnsupportedStatement"
	case UnterminatedLiteral:
		return "UnterminatedLiteral"
	case UnterminatedComment:
		return "UnterminatedComment"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// ParseError is the single error type Parse ever returns.
type ParseError struct {
	Code   ErrorCode
	Offset int // byte offset into the input; -1 if not applicable
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Msg)
}

// Parse parses a single CREATE TABLE or ALTER TABLE statement. Exactly one
// of the two return values is non-nil on success.
func Parse(input []byte) (*model.Table, *model.AlterTable, error) {
	tokens, err := tokenizer.Scan(input)
	if err != nil {
		lexErr, ok := err.(*tokenizer.Error)
		if !ok {
			return nil, nil, &ParseError{Code: SyntaxError, Offset: -1, Msg: err.Error()}
		}
		code := UnterminatedLiteral
		if lexErr.Category == tokenizer.CategoryComment {
			code = UnterminatedComment
		} else if lexErr.Category == tokenizer.CategorySyntax {
			code = SyntaxError
		}
		return nil, nil, &ParseError{Code: code, Offset: lexErr.Offset, Msg: lexErr.Message}
	}

	p := &Parser{tokens: tokens, src: string(input)}
	return p.parseStatement()
}

// Parser is a token-slice cursor over one statement, in the spirit of a
// classic recursive-descent driver: tokens are scanned eagerly up front and
// the parser only ever looks at the current and (rarely) next token.
type Parser struct {
	tokens []tokenizer.Token
	pos    int
	src    string
}

func (p *Parser) current() tokenizer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() tokenizer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() tokenizer.Token {
	tok := p.current()
	if tok.Kind != tokenizer.KindEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) isEOF() bool {
	return p.current().Kind == tokenizer.KindEOF
}

func (p *Parser) errf(code ErrorCode, format string, args ...any) error {
	return &ParseError{Code: code, Offset: p.current().Offset, Msg: fmt.Sprintf(format, args...)}
}

// isKeyword reports whether the current token is the named keyword,
// matched case-insensitively against the token's as-scanned spelling —
// keyword case is never normalized by the lexer so that Text stays a true
// view into the input.
func (p *Parser) isKeyword(kw string) bool {
	tok := p.current()
	return tok.Kind == tokenizer.KindKeyword && strings.EqualFold(tok.Text, kw)
}

func (p *Parser) peekIsKeyword(kw string) bool {
	tok := p.peekNext()
	return tok.Kind == tokenizer.KindKeyword && strings.EqualFold(tok.Text, kw)
}

func (p *Parser) isSymbol(sym string) bool {
	tok := p.current()
	return tok.Kind == tokenizer.KindSymbol && tok.Text == sym
}

// expectKeyword consumes the current token if it is kw, else fails with
// SyntaxError.
func (p *Parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return p.errf(SyntaxError, "expected %s, got %q", kw, p.current().Text)
	}
	p.advance()
	return nil
}

func (p *Parser) expectSymbol(sym string) error {
	if !p.isSymbol(sym) {
		return p.errf(SyntaxError, "expected %q, got %q", sym, p.current().Text)
	}
	p.advance()
	return nil
}

// identifierToken reports whether tok may stand as an identifier: either a
// bare/quoted identifier token, or — per spec.md §4.3's keyword/identifier
// ambiguity rule — a keyword token, since a column may legally be named
// after a reserved word (e.g. a column called "key").
func identifierToken(tok tokenizer.Token) bool {
	return tok.Kind == tokenizer.KindIdentifier || tok.Kind == tokenizer.KindKeyword
}

// parseIdentifierName consumes the current token as an identifier and
// returns its normalized (unquoted, unescaped) spelling.
func (p *Parser) parseIdentifierName() (string, error) {
	tok := p.current()
	if !identifierToken(tok) {
		return "", p.errf(SyntaxError, "expected identifier, got %q", tok.Text)
	}
	if tok.Text == "" {
		return "", p.errf(SyntaxError, "empty identifier")
	}
	p.advance()
	name := tokenizer.NormalizeIdentifier(tok.Text)
	if name == "" {
		return "", p.errf(SyntaxError, "empty identifier")
	}
	return name, nil
}

// parseNameToken parses a `name` production — CONSTRAINT name, COLLATE
// name — which, unlike a plain identifier, SQLite also accepts spelled as
// a quoted string literal (original_source exercises this, e.g.
// CONSTRAINT 'PrimaryKey' PRIMARY KEY).
func (p *Parser) parseNameToken() (string, error) {
	tok := p.current()
	if tok.Kind == tokenizer.KindString {
		p.advance()
		return tokenizer.NormalizeString(tok.Text), nil
	}
	return p.parseIdentifierName()
}

// parseQualifiedName parses `identifier ['.' identifier]`; the first
// component is the schema only when a '.' follows it.
func (p *Parser) parseQualifiedName() (schema, name string, err error) {
	first, err := p.parseIdentifierName()
	if err != nil {
		return "", "", err
	}
	if p.isSymbol(".") {
		p.advance()
		second, err := p.parseIdentifierName()
		if err != nil {
			return "", "", err
		}
		return first, second, nil
	}
	return "", first, nil
}

// captureParenExpr consumes the current '(' token, captures the verbatim
// expression up to its matching ')', and resynchronizes the token cursor
// past the closing paren.
func (p *Parser) captureParenExpr() (string, error) {
	openTok := p.current()
	if openTok.Kind != tokenizer.KindSymbol || openTok.Text != "(" {
		return "", p.errf(SyntaxError, "expected '(', got %q", openTok.Text)
	}
	expr, endOffset, err := tokenizer.CaptureParenExpression([]byte(p.src), openTok.Offset)
	if err != nil {
		code := UnterminatedLiteral
		if errors.Is(err, tokenizer.ErrNestingTooDeep) {
			code = MemoryError
		}
		return "", &ParseError{Code: code, Offset: openTok.Offset, Msg: err.Error()}
	}
	p.resyncTo(endOffset)
	return expr, nil
}

// resyncTo advances the token cursor to the first token at or beyond
// offset — used after a raw byte-level scan (the paren capturer) to return
// control to the ordinary token stream.
func (p *Parser) resyncTo(offset int) {
	for p.tokens[p.pos].Offset < offset && p.tokens[p.pos].Kind != tokenizer.KindEOF {
		p.pos++
	}
}

// parseStatement is the top-level dispatch: CREATE TABLE or ALTER TABLE.
func (p *Parser) parseStatement() (*model.Table, *model.AlterTable, error) {
	switch {
	case p.isKeyword("CREATE"):
		table, err := p.parseCreateTable()
		if err != nil {
			return nil, nil, err
		}
		return table, nil, nil
	case p.isKeyword("ALTER"):
		alter, err := p.parseAlterTable()
		if err != nil {
			return nil, nil, err
		}
		return nil, alter, nil
	default:
		return nil, nil, p.errf(UnsupportedStatement, "expected CREATE or ALTER, got %q", p.current().Text)
	}
}

// parseCreateTable parses:
//
//	'CREATE' [TEMP|TEMPORARY] 'TABLE' ['IF' 'NOT' 'EXISTS'] qualified_name
//	'(' column_def (',' column_def)* (',' table_constraint)* ')'
//	table_options? ';'?
func (p *Parser) parseCreateTable() (*model.Table, error) {
	startTok := p.current()
	p.advance() // CREATE

	table := &model.Table{}
	if p.isKeyword("TEMP") || p.isKeyword("TEMPORARY") {
		table.IsTemp = true
		p.advance()
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	if p.isKeyword("IF") {
		p.advance()
		if err := p.expectKeyword("NOT"); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		table.IfNotExists = true
	}

	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	table.Schema, table.Name = schema, name

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	sawTableConstraint := false
	for {
		// The first entry is always a column_def, so a leading keyword such
		// as CHECK is read there as a column name.
		if (len(table.Columns) > 0 && p.startsTableConstraint()) || sawTableConstraint {
			tc, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			table.TableConstraints = append(table.TableConstraints, tc)
			sawTableConstraint = true
		} else {
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			table.Columns = append(table.Columns, col)
		}
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	withoutRowID, strict, err := p.parseTableOptions()
	if err != nil {
		return nil, err
	}
	table.WithoutRowID = withoutRowID
	table.Strict = strict

	if p.isSymbol(";") {
		p.advance()
	}

	lastTok := p.tokens[max(p.pos-1, 0)]
	table.Span = tokenizer.SpanBetween(startTok, lastTok)
	return table, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var tableConstraintStarters = []string{"PRIMARY", "UNIQUE", "CHECK", "FOREIGN", "CONSTRAINT"}

func (p *Parser) startsTableConstraint() bool {
	for _, kw := range tableConstraintStarters {
		if p.isKeyword(kw) {
			return true
		}
	}
	return false
}

// columnConstraintStarters are the keywords that may open a column
// constraint, used both to detect the end of a type name (spec.md §4.3)
// and to drive the constraint-parsing loop.
var columnConstraintStarters = []string{
	"CONSTRAINT", "PRIMARY", "NOT", "UNIQUE", "CHECK", "DEFAULT",
	"COLLATE", "REFERENCES", "GENERATED", "AS",
}

func (p *Parser) startsColumnConstraint() bool {
	for _, kw := range columnConstraintStarters {
		if p.isKeyword(kw) {
			return true
		}
	}
	return false
}

// parseColumnDef parses `identifier [type_name] column_constraint*`.
func (p *Parser) parseColumnDef() (*model.Column, error) {
	startTok := p.current()
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	col := &model.Column{Name: name}

	col.Type = p.parseTypeName()

	for p.startsColumnConstraint() {
		cc, err := p.parseColumnConstraint()
		if err != nil {
			return nil, err
		}
		col.Constraints = append(col.Constraints, cc)
	}

	lastTok := p.tokens[max(p.pos-1, 0)]
	col.Span = tokenizer.SpanBetween(startTok, lastTok)
	return col, nil
}

// parseTypeName consumes a run of bare identifiers (the type name is empty
// when the next token is ',', ')', CONSTRAINT, or a column-constraint
// starter) plus an optional parenthesised size spec, and returns the
// verbatim source text from the first identifier through the size spec's
// closing ')'.
func (p *Parser) parseTypeName() string {
	if p.isSymbol(",") || p.isSymbol(")") || p.startsColumnConstraint() {
		return ""
	}
	start := p.current().Offset
	end := start
	for p.current().Kind == tokenizer.KindIdentifier {
		tok := p.advance()
		end = tok.Offset + len(tok.Text)
	}
	if p.isSymbol("(") {
		depth := 0
		for {
			tok := p.current()
			if tok.Kind == tokenizer.KindEOF {
				break
			}
			if tok.Kind == tokenizer.KindSymbol && tok.Text == "(" {
				depth++
			}
			if tok.Kind == tokenizer.KindSymbol && tok.Text == ")" {
				depth--
				p.advance()
				end = tok.Offset + len(tok.Text)
				if depth == 0 {
					break
				}
				continue
			}
			p.advance()
			end = tok.Offset + len(tok.Text)
		}
	}
	return p.src[start:end]
}

// parseColumnConstraint parses one optional `CONSTRAINT name` prefix
// followed by exactly one constraint clause.
func (p *Parser) parseColumnConstraint() (model.ColumnConstraint, error) {
	startTok := p.current()
	name := ""
	if p.isKeyword("CONSTRAINT") {
		p.advance()
		n, err := p.parseNameToken()
		if err != nil {
			return nil, err
		}
		name = n
	}

	switch {
	case p.isKeyword("PRIMARY"):
		p.advance()
		if err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		order := model.OrderUnspecified
		if p.isKeyword("ASC") {
			order = model.OrderAsc
			p.advance()
		} else if p.isKeyword("DESC") {
			order = model.OrderDesc
			p.advance()
		}
		conflict, err := p.parseConflictClause()
		if err != nil {
			return nil, err
		}
		autoincrement := false
		if p.isKeyword("AUTOINCREMENT") {
			autoincrement = true
			p.advance()
		}
		return model.PrimaryKeyColumnConstraint{
			Name: name, Order: order, Autoincrement: autoincrement, Conflict: conflict,
			Span: p.spanSince(startTok),
		}, nil

	case p.isKeyword("NOT"):
		p.advance()
		if err := p.expectKeyword("NULL"); err != nil {
			return nil, err
		}
		conflict, err := p.parseConflictClause()
		if err != nil {
			return nil, err
		}
		return model.NotNullConstraint{Name: name, Conflict: conflict, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("UNIQUE"):
		p.advance()
		conflict, err := p.parseConflictClause()
		if err != nil {
			return nil, err
		}
		return model.UniqueColumnConstraint{Name: name, Conflict: conflict, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("CHECK"):
		p.advance()
		expr, err := p.captureParenExpr()
		if err != nil {
			return nil, err
		}
		return model.CheckConstraint{Name: name, Expr: expr, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("DEFAULT"):
		p.advance()
		value, err := p.parseDefaultValue()
		if err != nil {
			return nil, err
		}
		return model.DefaultConstraint{Name: name, Value: value, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("COLLATE"):
		p.advance()
		collation, err := p.parseNameToken()
		if err != nil {
			return nil, err
		}
		return model.CollateConstraint{Name: name, Collation: collation, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("REFERENCES"):
		p.advance()
		fk, err := p.parseForeignKeyClause()
		if err != nil {
			return nil, err
		}
		return model.ReferencesConstraint{Name: name, FK: fk, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("GENERATED") || p.isKeyword("AS"):
		if p.isKeyword("GENERATED") {
			p.advance()
			if err := p.expectKeyword("ALWAYS"); err != nil {
				return nil, err
			}
		}
		if err := p.expectKeyword("AS"); err != nil {
			return nil, err
		}
		expr, err := p.captureParenExpr()
		if err != nil {
			return nil, err
		}
		stored := false
		if p.isKeyword("STORED") {
			stored = true
			p.advance()
		} else if p.isKeyword("VIRTUAL") {
			p.advance()
		}
		return model.GeneratedConstraint{Name: name, Expr: expr, Stored: stored, Span: p.spanSince(startTok)}, nil

	default:
		return nil, p.errf(SyntaxError, "expected a column constraint, got %q", p.current().Text)
	}
}

func (p *Parser) spanSince(start tokenizer.Token) tokenizer.Span {
	last := p.tokens[max(p.pos-1, 0)]
	return tokenizer.SpanBetween(start, last)
}

// parseDefaultValue parses default_value (spec.md §4.3).
func (p *Parser) parseDefaultValue() (model.DefaultValue, error) {
	tok := p.current()
	switch {
	case tok.Kind == tokenizer.KindSymbol && (tok.Text == "+" || tok.Text == "-") && p.signedNumberFollows():
		p.advance()
		numTok := p.advance()
		return model.DefaultNumber{Raw: tok.Text + numTok.Text}, nil

	case tok.Kind == tokenizer.KindNumber:
		p.advance()
		return model.DefaultNumber{Raw: tok.Text}, nil

	case tok.Kind == tokenizer.KindString:
		p.advance()
		return model.DefaultLiteral{Text: tokenizer.NormalizeString(tok.Text), Quoted: true}, nil

	case tok.Kind == tokenizer.KindIdentifier && strings.HasPrefix(tok.Text, `"`):
		// Double-quoted DEFAULT literals are strings, not identifiers,
		// per SQLite's historical quirk (spec.md §9).
		p.advance()
		return model.DefaultLiteral{Text: tokenizer.NormalizeIdentifier(tok.Text), Quoted: true}, nil

	case tok.Kind == tokenizer.KindKeyword && isDefaultKeyword(tok.Text):
		p.advance()
		return model.DefaultKeyword{Name: strings.ToUpper(tok.Text)}, nil

	case tok.Kind == tokenizer.KindIdentifier:
		p.advance()
		return model.DefaultLiteral{Text: tokenizer.NormalizeIdentifier(tok.Text), Quoted: false}, nil

	case tok.Kind == tokenizer.KindSymbol && tok.Text == "(":
		expr, err := p.captureParenExpr()
		if err != nil {
			return nil, err
		}
		return model.DefaultExpression{Expr: expr}, nil

	default:
		return nil, p.errf(SyntaxError, "expected a default value, got %q", tok.Text)
	}
}

// signedNumberFollows reports whether the token after the current +/- Punct
// is a Number, the condition under which the sign is folded into the
// literal rather than treated as a bare Punct (spec.md §4.1). Whitespace or
// a comment between the sign and the number does not affect this: the
// model is invariant under inserted whitespace between any two adjacent
// tokens (spec.md §8), so folding must not depend on source adjacency.
func (p *Parser) signedNumberFollows() bool {
	return p.peekNext().Kind == tokenizer.KindNumber
}

func isDefaultKeyword(text string) bool {
	switch strings.ToUpper(text) {
	case "NULL", "TRUE", "FALSE", "CURRENT_TIME", "CURRENT_DATE", "CURRENT_TIMESTAMP":
		return true
	}
	return false
}

// parseConflictClause parses an optional `ON CONFLICT {...}` clause,
// returning ConflictNone without consuming input when absent.
func (p *Parser) parseConflictClause() (model.ConflictClause, error) {
	if !p.isKeyword("ON") || !p.peekIsKeyword("CONFLICT") {
		return model.ConflictNone, nil
	}
	p.advance() // ON
	p.advance() // CONFLICT
	tok := p.current()
	var clause model.ConflictClause
	switch {
	case p.isKeyword("ROLLBACK"):
		clause = model.ConflictRollback
	case p.isKeyword("ABORT"):
		clause = model.ConflictAbort
	case p.isKeyword("FAIL"):
		clause = model.ConflictFail
	case p.isKeyword("IGNORE"):
		clause = model.ConflictIgnore
	case p.isKeyword("REPLACE"):
		clause = model.ConflictReplace
	default:
		return model.ConflictNone, p.errf(SyntaxError, "expected conflict action, got %q", tok.Text)
	}
	p.advance()
	return clause, nil
}

// parseForeignKeyClause parses the REFERENCES tail shared by column- and
// table-level foreign keys: `table_name ['(' id_list ')'] fk_tail*`.
func (p *Parser) parseForeignKeyClause() (model.ForeignKeyClause, error) {
	startTok := p.current()
	_, tableName, err := p.parseQualifiedName()
	if err != nil {
		return model.ForeignKeyClause{}, err
	}
	fk := model.ForeignKeyClause{Table: tableName}

	if p.isSymbol("(") {
		p.advance()
		cols, err := p.parseIdentifierList()
		if err != nil {
			return model.ForeignKeyClause{}, err
		}
		fk.Columns = cols
		if err := p.expectSymbol(")"); err != nil {
			return model.ForeignKeyClause{}, err
		}
	}

	if err := p.parseForeignKeyTail(&fk); err != nil {
		return model.ForeignKeyClause{}, err
	}
	fk.Span = p.spanSince(startTok)
	return fk, nil
}

// parseForeignKeyTail parses fk_tail* in any order and any count:
// ON DELETE/ON UPDATE actions, MATCH <name>, and [NOT] DEFERRABLE
// [INITIALLY {DEFERRED|IMMEDIATE}].
func (p *Parser) parseForeignKeyTail(fk *model.ForeignKeyClause) error {
	for {
		switch {
		case p.isKeyword("ON") && p.peekIsKeyword("DELETE"):
			p.advance()
			p.advance()
			action, err := p.parseFKAction()
			if err != nil {
				return err
			}
			fk.OnDelete = action

		case p.isKeyword("ON") && p.peekIsKeyword("UPDATE"):
			p.advance()
			p.advance()
			action, err := p.parseFKAction()
			if err != nil {
				return err
			}
			fk.OnUpdate = action

		case p.isKeyword("MATCH"):
			p.advance()
			// Captured verbatim, never validated (spec.md §9).
			name, err := p.parseIdentifierName()
			if err != nil {
				return err
			}
			fk.MatchName = name

		case p.isKeyword("NOT") && p.peekIsKeyword("DEFERRABLE"):
			p.advance()
			p.advance()
			fk.Deferrable = model.NotDeferrable
			if err := p.parseInitially(fk); err != nil {
				return err
			}

		case p.isKeyword("DEFERRABLE"):
			p.advance()
			fk.Deferrable = model.IsDeferrable
			if err := p.parseInitially(fk); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

func (p *Parser) parseInitially(fk *model.ForeignKeyClause) error {
	if !p.isKeyword("INITIALLY") {
		return nil
	}
	p.advance()
	switch {
	case p.isKeyword("DEFERRED"):
		fk.Initially = model.InitiallyDeferred
	case p.isKeyword("IMMEDIATE"):
		fk.Initially = model.InitiallyImmediate
	default:
		return p.errf(SyntaxError, "expected DEFERRED or IMMEDIATE, got %q", p.current().Text)
	}
	p.advance()
	return nil
}

// parseFKAction parses `SET NULL | SET DEFAULT | CASCADE | RESTRICT | NO ACTION`.
func (p *Parser) parseFKAction() (model.FKAction, error) {
	switch {
	case p.isKeyword("SET") && p.peekIsKeyword("NULL"):
		p.advance()
		p.advance()
		return model.FKActionSetNull, nil
	case p.isKeyword("SET") && p.peekIsKeyword("DEFAULT"):
		p.advance()
		p.advance()
		return model.FKActionSetDefault, nil
	case p.isKeyword("CASCADE"):
		p.advance()
		return model.FKActionCascade, nil
	case p.isKeyword("RESTRICT"):
		p.advance()
		return model.FKActionRestrict, nil
	case p.isKeyword("NO") && p.peekIsKeyword("ACTION"):
		p.advance()
		p.advance()
		return model.FKActionNoAction, nil
	default:
		return model.FKActionNone, p.errf(SyntaxError, "expected a foreign key action, got %q", p.current().Text)
	}
}

// parseIdentifierList parses a comma-separated list of plain identifiers,
// with no parentheses of its own — the caller consumes those.
func (p *Parser) parseIdentifierList() ([]string, error) {
	var names []string
	for {
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	return names, nil
}

// parseIndexedColumnList parses indexed_column_list: comma-separated
// `identifier [COLLATE name] [ASC|DESC] [AUTOINCREMENT]`.
func (p *Parser) parseIndexedColumnList() ([]model.IndexedColumn, error) {
	var cols []model.IndexedColumn
	for {
		startTok := p.current()
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		ic := model.IndexedColumn{Name: name}
		if p.isKeyword("COLLATE") {
			p.advance()
			collation, err := p.parseNameToken()
			if err != nil {
				return nil, err
			}
			ic.Collate = collation
		}
		if p.isKeyword("ASC") {
			ic.Order = model.OrderAsc
			p.advance()
		} else if p.isKeyword("DESC") {
			ic.Order = model.OrderDesc
			p.advance()
		}
		if p.isKeyword("AUTOINCREMENT") {
			ic.Autoincrement = true
			p.advance()
		}
		ic.Span = p.spanSince(startTok)
		cols = append(cols, ic)
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	return cols, nil
}

// parseTableConstraint parses an optional `CONSTRAINT name` prefix followed
// by PRIMARY KEY/UNIQUE/CHECK/FOREIGN KEY.
func (p *Parser) parseTableConstraint() (model.TableConstraint, error) {
	startTok := p.current()
	name := ""
	if p.isKeyword("CONSTRAINT") {
		p.advance()
		n, err := p.parseNameToken()
		if err != nil {
			return nil, err
		}
		name = n
	}

	switch {
	case p.isKeyword("PRIMARY"):
		p.advance()
		if err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		cols, err := p.parseIndexedColumnList()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		conflict, err := p.parseConflictClause()
		if err != nil {
			return nil, err
		}
		return model.PrimaryKeyTableConstraint{Name: name, Columns: cols, Conflict: conflict, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("UNIQUE"):
		p.advance()
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		cols, err := p.parseIndexedColumnList()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		conflict, err := p.parseConflictClause()
		if err != nil {
			return nil, err
		}
		return model.UniqueTableConstraint{Name: name, Columns: cols, Conflict: conflict, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("CHECK"):
		p.advance()
		expr, err := p.captureParenExpr()
		if err != nil {
			return nil, err
		}
		return model.CheckConstraint{Name: name, Expr: expr, Span: p.spanSince(startTok)}, nil

	case p.isKeyword("FOREIGN"):
		p.advance()
		if err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		localCols, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("REFERENCES"); err != nil {
			return nil, err
		}
		fk, err := p.parseForeignKeyClause()
		if err != nil {
			return nil, err
		}
		return model.ForeignKeyTableConstraint{Name: name, LocalColumns: localCols, FK: fk, Span: p.spanSince(startTok)}, nil

	default:
		return nil, p.errf(SyntaxError, "expected a table constraint, got %q", p.current().Text)
	}
}

// parseTableOptions parses zero or more of `WITHOUT ROWID` and `STRICT`,
// comma-separated, in any order.
func (p *Parser) parseTableOptions() (withoutRowID, strict bool, err error) {
	for {
		switch {
		case p.isKeyword("WITHOUT"):
			p.advance()
			if err := p.expectKeyword("ROWID"); err != nil {
				return false, false, err
			}
			withoutRowID = true
		case p.isKeyword("STRICT"):
			p.advance()
			strict = true
		default:
			return withoutRowID, strict, nil
		}
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		return withoutRowID, strict, nil
	}
}

// parseAlterTable parses `'ALTER' 'TABLE' qualified_name alter_action ';'?`.
func (p *Parser) parseAlterTable() (*model.AlterTable, error) {
	startTok := p.current()
	p.advance() // ALTER
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	alter := &model.AlterTable{Schema: schema, Name: name}

	switch {
	case p.isKeyword("RENAME") && p.peekIsKeyword("TO"):
		p.advance()
		p.advance()
		to, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		alter.Kind = model.AlterRenameTable
		alter.RenameTo = to

	case p.isKeyword("RENAME"):
		p.advance()
		if p.isKeyword("COLUMN") {
			p.advance()
		}
		from, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("TO"); err != nil {
			return nil, err
		}
		to, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		alter.Kind = model.AlterRenameColumn
		alter.RenameFrom = from
		alter.RenameColTo = to

	case p.isKeyword("ADD"):
		p.advance()
		if p.isKeyword("COLUMN") {
			p.advance()
		}
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		alter.Kind = model.AlterAddColumn
		alter.AddColumn = col

	case p.isKeyword("DROP"):
		p.advance()
		if p.isKeyword("COLUMN") {
			p.advance()
		}
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		alter.Kind = model.AlterDropColumn
		alter.DropColumn = name

	default:
		return nil, p.errf(SyntaxError, "expected RENAME, ADD, or DROP, got %q", p.current().Text)
	}

	if p.isSymbol(";") {
		p.advance()
	}

	lastTok := p.tokens[max(p.pos-1, 0)]
	alter.Span = tokenizer.SpanBetween(startTok, lastTok)
	return alter, nil
}
