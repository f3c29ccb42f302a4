// Package site turns a directory of E2E test reports into a static website.
package site

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/spboyer/e2esite/internal/extract"
	"github.com/spboyer/e2esite/internal/models"
	"github.com/spboyer/e2esite/internal/render"
	"github.com/spboyer/e2esite/internal/reporting"
	"github.com/spboyer/e2esite/internal/utils"
)

// DefaultPattern matches the report files of a batch directory.
const DefaultPattern = "test_*.md"

// JUnitFile is the name of the optional JUnit XML export.
const JUnitFile = "junit.xml"

// Config controls a single site build.
type Config struct {
	InputDir      string
	OutputDir     string
	Pattern       string
	PassThreshold int
	SuiteName     string
	JUnit         bool
	Precompress   bool
}

// Result describes a finished build.
type Result struct {
	Records []*models.Record
	Files   []string
	Digest  models.SiteDigest
}

// Builder runs the extract and render pipeline over one batch.
type Builder struct {
	cfg      Config
	fs       fileSystem
	renderer *render.Renderer
	out      io.Writer
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithRenderer sets the page renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(b *Builder) { b.renderer = r }
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) { b.out = w }
}

// WithClock sets the clock used for the JUnit timestamp.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func withFileSystem(fs fileSystem) Option {
	return func(b *Builder) { b.fs = fs }
}

// New returns a Builder for cfg. Zero-valued pattern and threshold fall back
// to DefaultPattern and models.DefaultPassThreshold.
func New(cfg Config, opts ...Option) *Builder {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = models.DefaultPassThreshold
	}
	if cfg.SuiteName == "" {
		cfg.SuiteName = render.DefaultTitle
	}
	b := &Builder{
		cfg: cfg,
		fs:  osFS{},
		out: io.Discard,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil {
		b.renderer = render.New(render.WithClock(b.now))
	}
	return b
}

// Discover returns the report files in the input directory, sorted by name.
func (b *Builder) Discover() ([]string, error) {
	info, err := b.fs.Stat(b.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", b.cfg.InputDir)
	}

	matches, err := b.fs.Glob(filepath.Join(b.cfg.InputDir, b.cfg.Pattern))
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", b.cfg.Pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads and extracts a single report file.
func (b *Builder) Load(path string) (*models.Record, error) {
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rec := extract.Extract(string(data))
	rec.Filename = stem(path)
	rec.SourceBytes = len(data)
	rec.Status = models.StatusForSize(len(data), b.cfg.PassThreshold)
	utils.RecordToSlog(path, rec)
	return rec, nil
}

// LoadAll discovers and extracts every report without writing any output.
func (b *Builder) LoadAll() ([]*models.Record, error) {
	paths, err := b.Discover()
	if err != nil {
		return nil, err
	}
	records := make([]*models.Record, 0, len(paths))
	for _, p := range paths {
		rec, err := b.Load(p)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Build regenerates the whole site. The first read or write failure aborts
// the run.
func (b *Builder) Build() (*Result, error) {
	if err := b.fs.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", b.cfg.OutputDir, err)
	}

	paths, err := b.Discover()
	if err != nil {
		return nil, err
	}

	res := &Result{Records: make([]*models.Record, 0, len(paths))}
	for _, p := range paths {
		fmt.Fprintf(b.out, "Processing: %s\n", filepath.Base(p)) //nolint:errcheck

		rec, err := b.Load(p)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, rec)

		page, err := b.renderer.Detail(rec)
		if err != nil {
			return nil, err
		}
		name := render.PageName(rec.Filename)
		if err := b.write(res, name, page); err != nil {
			return nil, err
		}
		fmt.Fprintf(b.out, "  Created: %s\n", name) //nolint:errcheck
	}

	index, err := b.renderer.Index(res.Records)
	if err != nil {
		return nil, err
	}
	if err := b.write(res, render.IndexFile, index); err != nil {
		return nil, err
	}
	fmt.Fprintf(b.out, "\nCreated index: %s\n", render.IndexFile) //nolint:errcheck

	if b.cfg.JUnit {
		data, err := reporting.MarshalJUnitXML(b.cfg.SuiteName, res.Records, b.cfg.PassThreshold, b.now())
		if err != nil {
			return nil, err
		}
		if err := b.writeFile(res, JUnitFile, data); err != nil {
			return nil, err
		}
		fmt.Fprintf(b.out, "Created JUnit report: %s\n", JUnitFile) //nolint:errcheck
	}

	res.Digest = models.Digest(res.Records)
	fmt.Fprintf(b.out, "\n✅ Generated %d test reports + index page\n", len(res.Records)) //nolint:errcheck
	fmt.Fprintf(b.out, "📁 Output directory: %s\n", b.cfg.OutputDir)                     //nolint:errcheck
	return res, nil
}

// write stores a page and, when enabled, its gzip sibling.
func (b *Builder) write(res *Result, name string, data []byte) error {
	if err := b.writeFile(res, name, data); err != nil {
		return err
	}
	if !b.cfg.Precompress {
		return nil
	}
	gz, err := compress(data)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	return b.writeFile(res, name+".gz", gz)
}

func (b *Builder) writeFile(res *Result, name string, data []byte) error {
	path := filepath.Join(b.cfg.OutputDir, name)
	if err := b.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	res.Files = append(res.Files, path)
	return nil
}

// compress gzips data with a zero header timestamp so output is reproducible.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
