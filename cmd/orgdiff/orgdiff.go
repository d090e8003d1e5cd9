package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/nicolagi/orgdiff/internal/config"
	"github.com/nicolagi/orgdiff/internal/diff"
	"github.com/nicolagi/orgdiff/internal/outline"
	"github.com/nicolagi/orgdiff/internal/source"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Exit statuses, as in diff(1).
const (
	exitSame    = 0
	exitChanged = 1
	exitTrouble = 2
)

var (
	// To set this at build time, use go build -ldflags '-X main.version=something'.
	version = "unknown"

	// Flag sets are associated with the fields of a corresponding context struct. The global context is for flags
	// that are part of all flag sets, that is, all sub-commands.
	globalContext struct {
		base     string
		logLevel string
	}

	diffContext struct {
		headersOnly bool
		context     int
		threshold   float64
		metric      string
		color       string
	}
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&globalContext.base, "base", config.DefaultBaseDirectoryPath, "`directory` holding the configuration")
	var levels []string
	for _, l := range log.AllLevels {
		levels = append(levels, l.String())
	}
	fs.StringVar(&globalContext.logLevel, "verbosity", "warning", "sets the log `level`, among "+strings.Join(levels, ", "))
	return fs
}

const usage = `Usage: %s COMMAND [ARGS]

Commands:

	diff [-H] [-U lines] [-t ratio] [-metric name] [-color mode] OLD NEW: structural diff of two outlines

		OLD and NEW are local paths or s3://bucket/key paths. The exit status is 0 if the outlines are the same,
		1 if they differ, 2 on trouble. Flags override the configuration file. Unified diffs of body text are
		labeled with the two paths, e.g., "--- OLD" and "+++ NEW", rather than with "old" and "new".

	init: initializes configuration given the base directory
	parse FILE: dump the tree parsed from an outline
	version: show version information
`

func exitUsage(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	_, _ = fmt.Fprintf(os.Stderr, usage, os.Args[0])
	os.Exit(exitTrouble)
}

func main() {
	diffFlags := newFlagSet("diff")
	diffFlags.BoolVar(&diffContext.headersOnly, "H", false, "ignore body text")
	diffFlags.IntVar(&diffContext.context, "U", diff.DefaultContextLines, "number of unified context `lines`")
	diffFlags.Float64Var(&diffContext.threshold, "t", diff.DefaultSimilarity.Threshold, "similarity `ratio` above which sibling headings are paired")
	diffFlags.StringVar(&diffContext.metric, "metric", diff.DefaultSimilarity.Metric.String(), "similarity `metric`, matching or levenshtein")
	diffFlags.StringVar(&diffContext.color, "color", config.ColorAuto, "color `mode`, among auto, always, never")

	parseFlags := newFlagSet("parse")

	// For all commands that don't take flags.
	emptyFlags := newFlagSet("empty")

	if len(os.Args) < 2 {
		exitUsage("Command name required")
	}

	switch cmd := os.Args[1]; cmd {
	case "diff":
		// Ignoring error - here and in all other cases below - because we configure flag sets to exit on error.
		_ = diffFlags.Parse(os.Args[2:])
		if narg := diffFlags.NArg(); narg != 2 {
			exitUsage(fmt.Sprintf("diff: 2 args expected, got %d", narg))
		}
	case "parse":
		_ = parseFlags.Parse(os.Args[2:])
		if narg := parseFlags.NArg(); narg != 1 {
			exitUsage(fmt.Sprintf("parse: 1 arg expected, got %d", narg))
		}
	case "init", "version":
		_ = emptyFlags.Parse(os.Args[2:])
		if narg := emptyFlags.NArg(); narg != 0 {
			exitUsage(fmt.Sprintf("%s: no args expected, got %d", cmd, narg))
		}
	default:
		exitUsage(fmt.Sprintf("%q: command not recognized", cmd))
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.JSONFormatter{})
	log.StandardLogger().ExitFunc = func(int) { os.Exit(exitTrouble) }
	ll, err := log.ParseLevel(globalContext.logLevel)
	if err != nil {
		log.Fatalf("Could not parse log level %q: %v", globalContext.logLevel, err)
	}
	log.SetLevel(ll)

	switch os.Args[1] {
	case "version":
		fmt.Println(version)
		return
	case "init":
		// The init subcommand must create configuration, not use it.
		if err := config.Initialize(globalContext.base); err != nil {
			log.WithField("cause", err).Fatalf("Could not initialize config in %q", globalContext.base)
		}
		return
	}

	cfg, err := config.Load(globalContext.base)
	if err != nil {
		log.WithField("cause", err).Fatalf("Could not load config from %q", globalContext.base)
	}
	store := source.NewStore(cfg)
	ctx := context.Background()

	switch os.Args[1] {
	case "diff":
		if err := applyDiffFlags(cfg, diffFlags); err != nil {
			exitUsage(err.Error())
		}
		changed, err := diffDocuments(ctx, store, cfg, diffFlags.Arg(0), diffFlags.Arg(1), os.Stdout, colored(cfg.Color, os.Stdout))
		if err != nil {
			log.WithField("cause", err).Fatal("Could not diff")
		}
		if changed {
			os.Exit(exitChanged)
		}
		os.Exit(exitSame)
	case "parse":
		if err := parseDocument(ctx, store, cfg.Grammar(), parseFlags.Arg(0), os.Stdout); err != nil {
			log.WithField("cause", err).Fatal("Could not parse")
		}
	}
}

// applyDiffFlags overrides the configuration with the flags given on the
// command line.
func applyDiffFlags(cfg *config.C, fs *flag.FlagSet) (err error) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "H":
			cfg.HeadersOnly = diffContext.headersOnly
		case "U":
			cfg.ContextLines = diffContext.context
		case "t":
			cfg.SimilarityThreshold = diffContext.threshold
		case "metric":
			var m diff.Metric
			if m, err = diff.ParseMetric(diffContext.metric); err == nil {
				cfg.SimilarityMetric = m
			}
		case "color":
			cfg.Color = diffContext.color
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func colored(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

func fetchDocuments(ctx context.Context, store source.Store, g *outline.Grammar, paths ...string) ([]*outline.Node, error) {
	contents, err := source.FetchAll(ctx, store, paths...)
	if err != nil {
		return nil, err
	}
	docs := make([]*outline.Node, len(paths))
	for i, b := range contents {
		if docs[i], err = outline.Parse(g, bytes.NewReader(b)); err != nil {
			return nil, errors.Wrapf(err, "%q", paths[i])
		}
	}
	return docs, nil
}

// diffDocuments writes the edit script between the two outlines and
// reports whether they differ.
func diffDocuments(ctx context.Context, store source.Store, cfg *config.C, oldPath, newPath string, w io.Writer, color bool) (changed bool, err error) {
	docs, err := fetchDocuments(ctx, store, cfg.Grammar(), oldPath, newPath)
	if err != nil {
		return false, err
	}
	options := append(cfg.DiffOptions(), diff.Labels(oldPath, newPath))
	records := diff.DiffDocuments(docs[0], docs[1], options...)
	if err := diff.NewPrinter(w, color).Print(records); err != nil {
		return false, errors.WithStack(err)
	}
	return diff.HasChanges(records), nil
}

func parseDocument(ctx context.Context, store source.Store, g *outline.Grammar, path string, w io.Writer) error {
	docs, err := fetchDocuments(ctx, store, g, path)
	if err != nil {
		return err
	}
	cs := spew.ConfigState{Indent: "\t", DisableMethods: true, DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cs.Fdump(w, docs[0])
	return nil
}
