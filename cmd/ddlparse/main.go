// Package main implements the ddlparse CLI: a thin driver around the ddl
// package that renders a parsed CREATE TABLE/ALTER TABLE statement as text,
// JSON, or YAML, and optionally cross-checks it against a real SQLite
// connection.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	_ "modernc.org/sqlite"

	"github.com/sqlitetools/ddlparse/ddl"
	"github.com/sqlitetools/ddlparse/internal/cli"
	"github.com/sqlitetools/ddlparse/internal/config"
	"github.com/sqlitetools/ddlparse/internal/diff"
	"github.com/sqlitetools/ddlparse/internal/logging"
	"github.com/sqlitetools/ddlparse/internal/typemap"
)

func main() {
	code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(stdout, err.Error())
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}

	logger := logging.New(logging.Options{Verbose: opts.Verbose, Writer: stderr})

	plan := config.Default()
	if _, statErr := os.Stat(opts.ConfigPath); statErr == nil {
		loaded, loadErr := config.Load(opts.ConfigPath, config.LoadOptions{Strict: opts.StrictConfig})
		if loadErr != nil {
			_, _ = fmt.Fprintf(stderr, "Error loading config: %v\n", loadErr)
			return 1
		}
		for _, w := range loaded.Warnings {
			logger.Warn(w)
		}
		plan = loaded.Plan
	}

	output := plan.Output
	if opts.Output != "" {
		output = config.OutputFormat(opts.Output)
	}

	input, err := readInput(opts.Args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	model, err := ddl.Parse(input)
	if err != nil {
		var perr *ddl.ParseError
		if errors.As(err, &perr) {
			_, _ = fmt.Fprintf(stderr, "parse error [%s] at offset %d: %s\n", perr.Code, perr.Offset, perr.Msg)
		} else {
			_, _ = fmt.Fprintln(stderr, err.Error())
		}
		return 1
	}
	defer model.Release()

	verifySQLite := plan.VerifySQLite || opts.VerifySQLite
	if verifySQLite {
		if err := verifyAgainstSQLite(ctx, input); err != nil {
			_, _ = fmt.Fprintf(stderr, "sqlite verification failed: %v\n", err)
			return 1
		}
		logger.Debug("sqlite verification passed")
	}

	if opts.DiffAgainst != "" {
		if err := runDiff(stdout, opts.DiffAgainst, model); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error diffing against %s: %v\n", opts.DiffAgainst, err)
			return 1
		}
		return 0
	}

	if opts.EmitGoStruct != "" {
		if err := runEmitGoStruct(stdout, opts.EmitGoStruct, plan.CustomTypes, model); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error rendering Go struct: %v\n", err)
			return 1
		}
		return 0
	}

	if err := render(stdout, output, model); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error rendering output: %v\n", err)
		return 1
	}
	return 0
}

// runDiff parses the table defined at beforePath and reports the column,
// constraint, and table-option changes between it and model's table.
func runDiff(w io.Writer, beforePath string, model *ddl.Model) error {
	after := model.Table()
	if after == nil {
		return fmt.Errorf("--diff only applies to a CREATE TABLE statement, not ALTER TABLE")
	}

	beforeInput, err := readInput(beforePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", beforePath, err)
	}
	beforeModel, err := ddl.Parse(beforeInput)
	if err != nil {
		return fmt.Errorf("parse %s: %w", beforePath, err)
	}
	before := beforeModel.Table()
	if before == nil {
		return fmt.Errorf("%s is not a CREATE TABLE statement", beforePath)
	}

	changes := diff.Tables(before, after)
	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	for _, c := range changes {
		if _, err := fmt.Fprintf(w, "%s: %s\n", c.Kind, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// runEmitGoStruct renders a Go struct for model's table, applying any
// config-provided custom type overrides before falling back to typemap's
// built-in heuristics.
func runEmitGoStruct(w io.Writer, pkg string, customTypes []config.CustomTypeMapping, model *ddl.Model) error {
	table := model.Table()
	if table == nil {
		return fmt.Errorf("--emit-go-struct only applies to a CREATE TABLE statement, not ALTER TABLE")
	}

	overrides := make([]typemap.CustomTypeMapping, len(customTypes))
	for i, c := range customTypes {
		overrides[i] = typemap.CustomTypeMapping{SQLiteType: c.SQLiteType, GoType: c.GoType, GoImport: c.GoImport}
	}
	resolver := typemap.NewResolver(overrides)

	mappings := make([]typemap.Mapping, len(table.Columns))
	for i, col := range table.Columns {
		mappings[i] = resolver.Resolve(col)
	}

	src, err := typemap.RenderStruct(pkg, table.Name, mappings)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func render(w io.Writer, format config.OutputFormat, m *ddl.Model) error {
	switch format {
	case config.OutputJSON:
		return renderJSON(w, m)
	case config.OutputYAML:
		return renderYAML(w, m)
	default:
		return renderText(w, m)
	}
}

func renderJSON(w io.Writer, m *ddl.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if t := m.Table(); t != nil {
		return enc.Encode(t)
	}
	return enc.Encode(m.AlterTable())
}

func renderYAML(w io.Writer, m *ddl.Model) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if t := m.Table(); t != nil {
		return enc.Encode(t)
	}
	return enc.Encode(m.AlterTable())
}

func renderText(w io.Writer, m *ddl.Model) error {
	if t := m.Table(); t != nil {
		_, err := fmt.Fprintf(w, "TABLE %s (%d columns, %d table constraints)\n", t.Name, len(t.Columns), len(t.TableConstraints))
		if err != nil {
			return err
		}
		for _, c := range t.Columns {
			if _, err := fmt.Fprintf(w, "  %-20s %-15s (%d constraints)\n", c.Name, c.Type, len(c.Constraints)); err != nil {
				return err
			}
		}
		return nil
	}
	a := m.AlterTable()
	_, err := fmt.Fprintf(w, "ALTER TABLE %s: %s\n", a.Name, describeAlter(a))
	return err
}

func describeAlter(a *ddl.AlterTable) string {
	switch a.Kind {
	case ddl.AlterRenameTable:
		return fmt.Sprintf("RENAME TO %s", a.RenameTo)
	case ddl.AlterRenameColumn:
		return fmt.Sprintf("RENAME COLUMN %s TO %s", a.RenameFrom, a.RenameColTo)
	case ddl.AlterAddColumn:
		return fmt.Sprintf("ADD COLUMN %s", a.AddColumn.Name)
	case ddl.AlterDropColumn:
		return fmt.Sprintf("DROP COLUMN %s", a.DropColumn)
	default:
		return "unknown"
	}
}

func verifyAgainstSQLite(ctx context.Context, input []byte) error {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("open in-memory sqlite: %w", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, string(input))
	if err != nil {
		return fmt.Errorf("execute statement: %w", err)
	}
	return nil
}
