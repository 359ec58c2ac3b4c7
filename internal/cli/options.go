// Package cli provides the command-line interface logic for ddlparse.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Options holds the configuration derived from command-line arguments.
type Options struct {
	ConfigPath   string
	Output       string
	VerifySQLite bool
	StrictConfig bool
	Verbose      bool
	EmitGoStruct string
	DiffAgainst  string
	Args         []string
}

// Parse processes command-line arguments and returns the options.
func Parse(args []string) (Options, error) {
	opts := Options{
		ConfigPath: "ddlparse.toml",
	}

	fs := flag.NewFlagSet("ddlparse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", opts.ConfigPath, "Path to configuration file")
	fs.StringVar(&opts.Output, "output", "", "Render format: text, json, or yaml")
	fs.BoolVar(&opts.VerifySQLite, "verify-sqlite", false, "Cross-check the parsed statement against an in-memory SQLite connection")
	fs.BoolVar(&opts.StrictConfig, "strict-config", false, "Treat configuration warnings as errors")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.Verbose, "v", false, "Enable verbose logging")
	fs.StringVar(&opts.EmitGoStruct, "emit-go-struct", "", "Render a Go struct for the parsed CREATE TABLE, using the given package name")
	fs.StringVar(&opts.DiffAgainst, "diff", "", "Diff the parsed CREATE TABLE against the table defined in the given schema file")

	if err := fs.Parse(args); err != nil {
		usage := Usage(fs)
		return Options{}, fmt.Errorf("%w\n\n%s", err, usage)
	}

	opts.Args = fs.Args()
	if len(opts.Args) == 0 {
		usage := Usage(fs)
		return Options{}, fmt.Errorf("%w: no input file given (use \"-\" for stdin)\n\n%s", flag.ErrHelp, usage)
	}

	return opts, nil
}

// Usage returns the usage string for the command-line interface.
func Usage(fs *flag.FlagSet) string {
	if fs == nil {
		return ""
	}
	var buf strings.Builder
	_, _ = fmt.Fprintf(&buf, "Usage of %s:\n", fs.Name())
	out := fs.Output()
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	fs.SetOutput(out)
	return buf.String()
}
