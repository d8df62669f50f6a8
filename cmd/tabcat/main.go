package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/tabcat/internal/logging"
	"github.com/vegasq/tabcat/internal/output"
	"github.com/vegasq/tabcat/internal/query"
	"github.com/vegasq/tabcat/internal/reader"
	"github.com/vegasq/tabcat/internal/record"
)

const (
	msgNoNumericData = "Cannot perform aggregation - no numeric data"
	msgNoMatchingRow = "No data matching filter conditions"
)

var errColor = color.New(color.FgRed)

type config struct {
	file      string
	where     string
	aggregate string
	delimiter string
	logLevel  string
}

func newApp(cfg *config) *kingpin.Application {
	app := kingpin.New("tabcat", "Filter and aggregate a tabular data file and print it as a table.")
	app.HelpFlag.Short('h')

	app.Flag("file", "Input file: CSV, TSV or Parquet, optionally .gz or .zst compressed.").
		Envar("TABCAT_FILE").Required().StringVar(&cfg.file)
	app.Flag("where", "Filter condition <column><op><value>, op is one of = > < >= <= (e.g. \"age>=25\").").
		Envar("TABCAT_WHERE").StringVar(&cfg.where)
	app.Flag("aggregate", "Aggregate <column>=<avg|min|max> (e.g. \"score=avg\").").
		Envar("TABCAT_AGGREGATE").StringVar(&cfg.aggregate)
	app.Flag("delimiter", "Field delimiter for delimited text; \\t or tab for tabs. Defaults to ',' (tab for .tsv).").
		Envar("TABCAT_DELIMITER").StringVar(&cfg.delimiter)
	app.Flag("log.level", "Diagnostics level on stderr: debug, info, warn, error.").
		Envar("TABCAT_LOG_LEVEL").Default(logging.DefaultLevel).EnumVar(&cfg.logLevel, logging.Levels...)

	return app
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the whole pipeline and returns the process exit status:
// 0 on success (including a rejected WHERE condition), 1 when loading,
// aggregating or rendering fails, 2 for an invalid command line.
func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	app := newApp(&cfg)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	terminated := -1
	app.Terminate(func(code int) {
		if terminated < 0 {
			terminated = code
		}
	})

	_, err := app.Parse(args)
	if terminated >= 0 {
		return terminated
	}
	if err != nil {
		printError(stderr, fmt.Sprintf("Error: %v", err))
		fmt.Fprintf(stderr, "Try '%s --help' for usage.\n", app.Name)
		return 2
	}

	logger, err := logging.New(stderr, cfg.logLevel)
	if err != nil {
		printError(stderr, fmt.Sprintf("Error: %v", err))
		return 2
	}

	delim, err := parseDelimiter(cfg.delimiter)
	if err != nil {
		printError(stderr, fmt.Sprintf("Error: %v", err))
		return 2
	}

	rows, err := load(cfg.file, reader.Options{Delimiter: delim, Logger: logger}, logger)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			printError(stderr, fmt.Sprintf("Error: file '%s' not found", cfg.file))
			fmt.Fprintf(stderr, "Please check the file path and try again.\n")
		} else {
			printError(stderr, fmt.Sprintf("Error: %v", err))
		}
		return 1
	}

	if cfg.where != "" {
		filtered, err := where(rows, cfg.where)
		if err != nil {
			fmt.Fprintf(stdout, "Error in WHERE condition: %v\n", err)
			return 0
		}
		_ = level.Debug(logger).Log("msg", "filter applied", "condition", cfg.where, "before", len(rows), "after", len(filtered))
		rows = filtered
	}

	if cfg.aggregate != "" {
		res, err := query.Aggregate(rows, cfg.aggregate)
		if err != nil {
			printError(stderr, fmt.Sprintf("Error in AGGREGATE expression: %v", err))
			return 1
		}
		if res == nil {
			_ = level.Debug(logger).Log("msg", "no numeric values to aggregate", "expr", cfg.aggregate)
			fmt.Fprintln(stdout, msgNoNumericData)
			return 0
		}
		_ = level.Debug(logger).Log("msg", "aggregate computed", "function", res.Function, "value", res.Value)
		rows = res.Dataset()
	} else if len(rows) == 0 {
		fmt.Fprintln(stdout, msgNoMatchingRow)
		return 0
	}

	var formatter output.Formatter = output.NewTableFormatter(stdout)
	if err := formatter.Format(rows); err != nil {
		printError(stderr, fmt.Sprintf("Error formatting output: %v", err))
		return 1
	}
	return 0
}

// load reads the input file and logs what was loaded.
func load(path string, opts reader.Options, logger log.Logger) (record.Dataset, error) {
	start := time.Now()

	r, err := reader.Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	_ = level.Debug(logger).Log(
		"msg", "loaded dataset",
		"file", path,
		"size", humanize.Bytes(uint64(r.Size())),
		"rows", len(rows),
		"columns", len(rows.Columns()),
		"duration", time.Since(start),
	)
	return rows, nil
}

// where parses a WHERE condition and filters rows with it.
func where(rows record.Dataset, expr string) (record.Dataset, error) {
	cond, err := query.ParseCondition(expr)
	if err != nil {
		return nil, err
	}
	return query.ApplyCondition(rows, cond)
}

// parseDelimiter turns the --delimiter value into a rune. An empty
// value selects the default for the file type.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q must be a single character", reader.ErrInvalidDelimiter, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if err := reader.ValidateDelimiter(r); err != nil {
		return 0, err
	}
	return r, nil
}

func printError(w io.Writer, msg string) {
	_, _ = errColor.Fprintln(w, msg)
}
