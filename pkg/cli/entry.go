// Package cli implements the funvec command line: resolving common
// types, casting columns and combining columns from CSV and SQLite
// sources.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/funvec/internal/config"
	"github.com/funvibe/funvec/internal/dataset"
	"github.com/funvibe/funvec/internal/printer"
	"github.com/funvibe/funvec/pkg/kinds"
	"github.com/funvibe/funvec/pkg/vec"
)

var (
	stdout = printer.New(os.Stdout)
	stderr = printer.New(os.Stderr)
)

// Run executes the command line and exits the process on failure.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			// Print stack trace for debugging
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	// Handle version flag
	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "-v", "-version", "--version":
			fmt.Println("funvec " + config.Version)
			return
		}
	}

	if handleHelp() {
		return
	}
	if handleResolve() {
		return
	}
	if handleCast() {
		return
	}
	if handleCombine() {
		return
	}

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
	fmt.Fprintf(os.Stderr, "Use '%s help' to see the available commands\n", os.Args[0])
	os.Exit(1)
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	switch os.Args[1] {
	case config.HelpCommand, "-help", "--help", "-h":
		printUsage(os.Stdout)
		return true
	}
	return false
}

func handleResolve() bool {
	if len(os.Args) < 2 || os.Args[1] != config.ResolveCommand {
		return false
	}

	names, flags, err := parseArgs(os.Args[2:])
	if err != nil {
		fail(err)
	}
	if len(names) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s resolve <type> <type>... [--lax]\n", os.Args[0])
		os.Exit(1)
	}

	d, err := resolveTypes(names, flags.lax)
	if err != nil {
		fail(err)
	}

	stdout.Descriptor(d)
	return true
}

func handleCast() bool {
	if len(os.Args) < 2 || os.Args[1] != config.CastCommand {
		return false
	}

	files, flags, err := parseArgs(os.Args[2:])
	if err != nil {
		fail(err)
	}
	if len(files) != 1 || flags.column == "" || flags.to == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s cast <file> --column <name> --to <type> [--table <table>]\n", os.Args[0])
		os.Exit(1)
	}

	target, err := kinds.ParseType(flags.to)
	if err != nil {
		fail(err)
	}

	out, loadLoss, castLoss, err := castColumn(files[0], flags.table, flags.column, target)
	if err != nil {
		fail(err)
	}

	stderr.LossyPositions(files[0], loadLoss)
	stderr.LossyPositions("cast to "+target.String(), castLoss)
	stdout.Vector(out)
	return true
}

func handleCombine() bool {
	if len(os.Args) < 2 || os.Args[1] != config.CombineCommand {
		return false
	}

	files, flags, err := parseArgs(os.Args[2:])
	if err != nil {
		fail(err)
	}
	if flags.column == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s combine [<file>...] --column <name> [--to <type>] [--lax] [--table <table>] [--manifest <path>]\n", os.Args[0])
		os.Exit(1)
	}

	var (
		baseDir string
		sources []dataset.Source
		typeOf  func(string) (vec.Descriptor, error)
		opts    = vec.Options{Lax: flags.lax}
	)

	if flags.to != "" {
		opts.To, err = kinds.ParseType(flags.to)
		if err != nil {
			fail(err)
		}
	}

	if len(files) > 0 {
		if flags.manifest != "" {
			fail(fmt.Errorf("--manifest cannot be combined with explicit files"))
		}
		for _, file := range files {
			src, err := fileSource(file, flags.table)
			if err != nil {
				fail(err)
			}
			sources = append(sources, src)
		}
	} else {
		path := flags.manifest
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fail(err)
			}
			path, err = dataset.FindManifest(cwd)
			if err != nil {
				fail(err)
			}
			if path == "" {
				fail(fmt.Errorf("no files given and no funvec.yaml found, see '%s help'", os.Args[0]))
			}
		}

		m, err := dataset.LoadManifest(path)
		if err != nil {
			fail(err)
		}

		baseDir = filepath.Dir(path)
		sources = m.Sources
		typeOf = m.ColumnType
		opts.Lax = flags.lax || m.Lax
		if flags.to == "" && m.Target != "" {
			opts.To, err = m.TargetType()
			if err != nil {
				fail(err)
			}
		}
	}

	result, loads, reports, err := combineColumn(baseDir, sources, flags.column, typeOf, opts)
	if err != nil {
		fail(err)
	}

	for _, load := range loads {
		stderr.LossyPositions(sources[load.Input].Path, load.Positions)
	}
	for _, report := range reports {
		label := fmt.Sprintf("input %d (%s)", report.Input, sources[report.Input].Path)
		stderr.LossyPositions(label, report.Positions)
	}

	stdout.Vector(result)
	return true
}

// resolveTypes folds the common type of the named types left to right.
func resolveTypes(names []string, lax bool) (vec.Descriptor, error) {
	result, err := kinds.ParseType(names[0])
	if err != nil {
		return vec.Descriptor{}, err
	}
	for _, name := range names[1:] {
		d, err := kinds.ParseType(name)
		if err != nil {
			return vec.Descriptor{}, err
		}
		result, err = vec.ResolveCommonType(result, d, vec.Options{Lax: lax})
		if err != nil {
			return vec.Descriptor{}, err
		}
	}
	return result, nil
}

// castColumn reads one column in its natural type and casts it. The two
// position sets report loss during loading and during the cast.
func castColumn(file, table, column string, target vec.Descriptor) (vec.Vector, vec.LossySet, vec.LossySet, error) {
	src, err := fileSource(file, table)
	if err != nil {
		return nil, nil, nil, err
	}

	natural, loadLoss, err := dataset.LoadColumn("", src, column, vec.Descriptor{})
	if err != nil {
		return nil, nil, nil, err
	}

	out, castLoss, err := vec.CastTo(natural, target)
	if err != nil {
		return nil, nil, nil, err
	}

	return out, loadLoss, castLoss, nil
}

// combineColumn loads the column from every source and concatenates the
// vectors under their common type. typeOf may be nil when no column
// types are declared. Load loss comes back with Input set to the source
// index, alongside the combiner's own reports.
func combineColumn(baseDir string, sources []dataset.Source, column string, typeOf func(string) (vec.Descriptor, error), opts vec.Options) (vec.Vector, []vec.Lossy, []vec.Lossy, error) {
	declared := vec.Descriptor{}
	if typeOf != nil {
		var err error
		declared, err = typeOf(column)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	var (
		vectors []vec.Vector
		loads   []vec.Lossy
	)
	for i, src := range sources {
		v, lossy, err := dataset.LoadColumn(baseDir, src, column, declared)
		if err != nil {
			return nil, nil, nil, err
		}
		if !lossy.Empty() {
			loads = append(loads, vec.Lossy{Input: i, Positions: lossy})
		}
		vectors = append(vectors, v)
	}

	result, reports, err := vec.Combine(vectors, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	return result, loads, reports, nil
}

// fileSource builds a source from a bare file argument, inferring the
// format from the extension.
func fileSource(path, table string) (dataset.Source, error) {
	format := dataset.FormatForPath(path)
	switch format {
	case "":
		return dataset.Source{}, fmt.Errorf("cannot infer the format of %q, expected a .csv, .db, .sqlite or .sqlite3 file", path)
	case "csv":
		if table != "" {
			return dataset.Source{}, fmt.Errorf("--table only applies to sqlite sources")
		}
		return dataset.Source{Path: path, Format: format}, nil
	default:
		if table == "" {
			return dataset.Source{}, fmt.Errorf("sqlite source %q needs --table", path)
		}
		return dataset.Source{Path: path, Format: format, Table: table}, nil
	}
}

// cliFlags holds the flag values shared by the subcommands.
type cliFlags struct {
	lax      bool
	to       string
	column   string
	table    string
	manifest string
}

// parseArgs splits arguments into positionals and flags. Value flags
// take the next argument.
func parseArgs(args []string) ([]string, cliFlags, error) {
	var (
		positional []string
		flags      cliFlags
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--lax", "-lax":
			flags.lax = true
			continue
		case "--to", "-to", "--column", "-column", "--table", "-table", "--manifest", "-manifest":
			i++
			if i >= len(args) {
				return nil, flags, fmt.Errorf("%s needs a value", arg)
			}
			value := args[i]
			switch strings.TrimLeft(arg, "-") {
			case "to":
				flags.to = value
			case "column":
				flags.column = value
			case "table":
				flags.table = value
			case "manifest":
				flags.manifest = value
			}
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			return nil, flags, fmt.Errorf("unknown flag %s", arg)
		}
		positional = append(positional, arg)
	}
	return positional, flags, nil
}

func fail(err error) {
	stderr.Errorf("%v", err)
	os.Exit(1)
}

func printUsage(out *os.File) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(out, `%[1]s — combine columns of values under a common type

Usage:
  %[1]s resolve <type> <type>... [--lax]
        Print the common type of the given types.
  %[1]s cast <file> --column <name> --to <type> [--table <table>]
        Read a column, cast it to a type and print it. Positions the
        cast could not keep exactly are reported on stderr.
  %[1]s combine [<file>...] --column <name> [--to <type>] [--lax]
                [--table <table>] [--manifest <path>]
        Read the column from every file and concatenate under the
        common type. With no files the sources come from the nearest
        funvec.yaml.
  %[1]s help
        Show this help.

Types:
  null, logical, integer, double, character, date, datetime, list,
  categorical[a,b,...], binned[0,10,20,...]

Flags:
  --lax       widen resolution: categorical types unite their levels
  --to        force the result type instead of resolving it
  --column    column to read from each source
  --table     table to read from sqlite sources
  --manifest  manifest path instead of searching for funvec.yaml
`, name)
}
