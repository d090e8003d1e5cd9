package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nicolagi/orgdiff/internal/diff"
	"github.com/nicolagi/orgdiff/internal/outline"
	"github.com/pkg/errors"
)

// DefaultBaseDirectoryPath is where orgdiff looks for its configuration.
// It defaults to $ORGDIFF_BASE if it is set, otherwise it defaults to
// $HOME/lib/orgdiff. Commands override this via the -base flag.
var DefaultBaseDirectoryPath string

func init() {
	if base := os.Getenv("ORGDIFF_BASE"); base != "" {
		DefaultBaseDirectoryPath = base
	} else {
		DefaultBaseDirectoryPath = os.ExpandEnv("$HOME/lib/orgdiff")
	}
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type C struct {
	// Words recognized as heading status, e.g., TODO, NEXT, DONE.
	StatusKeywords []string

	// Sibling headings whose titles are more similar than this are
	// diffed as one updated section rather than a deletion and an
	// insertion.
	SimilarityThreshold float64
	SimilarityMetric    diff.Metric

	// Context lines in unified body diffs.
	ContextLines int

	// Only compare headings, properties and timestamps, ignoring body text.
	HeadersOnly bool

	// One of ColorAuto, ColorAlways, ColorNever.
	Color string

	// These only matter for s3:// document paths. An empty region or
	// profile defers to the AWS SDK's own configuration.
	S3Region  string
	S3Profile string

	base string
}

// Default returns the configuration used when there is no config file.
func Default() *C {
	return &C{
		StatusKeywords:      []string{"TODO", "DONE"},
		SimilarityThreshold: diff.DefaultSimilarity.Threshold,
		SimilarityMetric:    diff.DefaultSimilarity.Metric,
		ContextLines:        diff.DefaultContextLines,
		Color:               ColorAuto,
	}
}

// Load loads the configuration from the file called "config" in the provided base
// directory. A missing file is not an error; defaults are returned.
func Load(base string) (*C, error) {
	filename := filepath.Join(base, "config")
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		c := Default()
		c.base = base
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config.Load %q", filename)
	}
	defer func() {
		// Ignore error closing file opened only for reading.
		_ = f.Close()
	}()
	c, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", filename, err)
	}
	c.base = base
	return c, nil
}

func load(f io.Reader) (*C, error) {
	const method = "load"
	c := Default()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		i := strings.IndexAny(line, " 	")
		if i == -1 {
			return nil, errorf(method, "no separator in %q", line)
		}
		var err error
		switch key, val := line[:i], strings.TrimSpace(line[i:]); key {
		case "status-keywords":
			c.StatusKeywords = strings.Fields(val)
		case "similarity-threshold":
			c.SimilarityThreshold, err = strconv.ParseFloat(val, 64)
		case "similarity-metric":
			c.SimilarityMetric, err = diff.ParseMetric(val)
		case "context-lines":
			c.ContextLines, err = strconv.Atoi(val)
		case "headers-only":
			c.HeadersOnly, err = strconv.ParseBool(val)
		case "color":
			c.Color = val
		case "s3-region":
			c.S3Region = val
		case "s3-profile":
			c.S3Profile = val
		default:
			return nil, errorf(method, "unknown key %q", key)
		}
		if err != nil {
			return nil, errorf(method, "%q: %v", line, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "load")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges; load calls it, and commands call it again
// after applying flag overrides.
func (c *C) Validate() error {
	const method = "C.Validate"
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return errorf(method, "similarity threshold %v out of [0, 1]", c.SimilarityThreshold)
	}
	if c.ContextLines < 0 {
		return errorf(method, "negative context lines: %d", c.ContextLines)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errorf(method, "unknown color mode %q", c.Color)
	}
	return nil
}

func (c *C) Grammar() *outline.Grammar {
	return outline.NewGrammar(c.StatusKeywords...)
}

func (c *C) Similarity() diff.Similarity {
	return diff.Similarity{Threshold: c.SimilarityThreshold, Metric: c.SimilarityMetric}
}

// DiffOptions maps the configuration onto options for diff.DiffDocuments.
func (c *C) DiffOptions() []diff.DiffDocumentsOption {
	return []diff.DiffDocumentsOption{
		diff.HeadersOnly(c.HeadersOnly),
		diff.WithSimilarity(c.Similarity()),
		diff.ContextLines(c.ContextLines),
	}
}

// Base is the directory the configuration was loaded from.
func (c *C) Base() string {
	return c.base
}

// Initialize generates an initial configuration at the given directory.
func Initialize(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return fmt.Errorf("%q: could not mkdir: %w", baseDir, err)
	}
	path := filepath.Join(baseDir, "config")
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%q: already exists", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%q: could not determine if it exists: %w", path, err)
	}

	c := Default()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "status-keywords %s\n", strings.Join(c.StatusKeywords, " "))
	fmt.Fprintf(&buf, "similarity-threshold %v\n", c.SimilarityThreshold)
	fmt.Fprintf(&buf, "similarity-metric %v\n", c.SimilarityMetric)
	fmt.Fprintf(&buf, "context-lines %d\n", c.ContextLines)
	fmt.Fprintf(&buf, "headers-only %t\n", c.HeadersOnly)
	fmt.Fprintf(&buf, "color %s\n", c.Color)
	buf.WriteString("# s3-region eu-west-1\n")
	buf.WriteString("# s3-profile default\n")
	err = ioutil.WriteFile(path, buf.Bytes(), 0600)
	if err != nil {
		return fmt.Errorf("config.Initialize %q: %w", path, err)
	}
	return nil
}
