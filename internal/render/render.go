// Package render produces the static HTML pages of the report site.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/spboyer/e2esite/internal/labels"
	"github.com/spboyer/e2esite/internal/models"
	"github.com/yuin/goldmark"
	"golang.org/x/text/language"
)

// Default site texts.
const (
	DefaultTitle    = "דוחות בדיקות Agadah-Bot"
	DefaultSubtitle = "בדיקות קצה-לקצה ליצירת פעילויות חינוכיות"
	DefaultFooter   = "נוצר על ידי Agadah-Bot"
)

// PageExt is the file extension of every generated page.
const PageExt = ".html"

// IndexFile is the name of the summary page.
const IndexFile = "index" + PageExt

const noFinalOutput = "<p>לא נמצא פלט סופי</p>"

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

var pageLang = language.Hebrew

// Numbers are printed plain, without digit grouping.
var funcs = template.FuncMap{
	"count":   strconv.Itoa,
	"seconds": func(s float64) string { return strconv.FormatFloat(s, 'f', 1, 64) },
	"minutes": func(s float64) string { return strconv.FormatFloat(s/60, 'f', 1, 64) },
}

var (
	shellTmpl  = template.Must(template.New("shell.html").Funcs(funcs).ParseFS(templateFS, "templates/shell.html"))
	indexTmpl  = template.Must(template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/index.html"))
	detailTmpl = template.Must(template.New("detail.html").Funcs(funcs).ParseFS(templateFS, "templates/detail.html"))
	style      = template.CSS(mustReadFile("templates/style.css"))
)

func mustReadFile(name string) string {
	data, err := templateFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to read embedded %s: %v", name, err))
	}
	return string(data)
}

// Renderer renders index and detail pages.
type Renderer struct {
	now      func() time.Time
	title    string
	subtitle string
	footer   string
	md       goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock used for the footer date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithTitle overrides the index page title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithSubtitle overrides the index page subtitle.
func WithSubtitle(subtitle string) Option {
	return func(r *Renderer) {
		if subtitle != "" {
			r.subtitle = subtitle
		}
	}
}

// WithFooter overrides the footer text preceding the date.
func WithFooter(footer string) Option {
	return func(r *Renderer) {
		if footer != "" {
			r.footer = footer
		}
	}
}

// WithMarkdown replaces the converter used for final output blocks.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(r *Renderer) { r.md = md }
}

// New returns a Renderer with the default texts and the wall clock.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		now:      time.Now,
		title:    DefaultTitle,
		subtitle: DefaultSubtitle,
		footer:   DefaultFooter,
		md:       NewMarkdown(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PageName returns the detail page filename for a source stem.
func PageName(stem string) string {
	return stem + PageExt
}

type shellData struct {
	Lang           string
	Title          string
	Content        template.HTML
	Footer         string
	Date           string
	StructuredData map[string]string
	Style          template.CSS
}

type indexRow struct {
	Href            string
	Name            string
	StatusClass     string
	StatusIcon      string
	ActivityType    string
	AgeGroup        string
	DurationMinutes int
	TotalDuration   float64
}

type indexData struct {
	Title    string
	Subtitle string
	Digest   models.SiteDigest
	Rows     []indexRow
}

type detailData struct {
	Name                string
	UserRequest         string
	IndexHref           string
	ActivityType        string
	AgeGroup            string
	DurationMinutes     int
	MainTopic           string
	MainValues          string
	ClosingMessageTheme string
	Steps               []models.Step
	TotalDuration       float64
	FinalOutput         template.HTML
}

// Index renders the summary page for records, in the given order.
func (r *Renderer) Index(records []*models.Record) ([]byte, error) {
	data := indexData{
		Title:    r.title,
		Subtitle: r.subtitle,
		Digest:   models.Digest(records),
		Rows:     make([]indexRow, 0, len(records)),
	}
	for _, rec := range records {
		row := indexRow{
			Href:          PageName(rec.Filename),
			Name:          rec.DisplayName(),
			StatusClass:   "fail",
			StatusIcon:    "✗",
			TotalDuration: rec.TotalDuration,
		}
		if rec.Passed() {
			row.StatusClass, row.StatusIcon = "pass", "✓"
		}
		if d := rec.Details; d != nil {
			row.ActivityType = labels.ActivityType(d.ActivityType)
			row.AgeGroup = labels.AgeGroup(d.AgeGroup)
			row.DurationMinutes = d.DurationMinutes
		}
		data.Rows = append(data.Rows, row)
	}

	content, err := execute(indexTmpl, data)
	if err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	return r.shell(r.title, content)
}

// Detail renders the page for a single record.
func (r *Renderer) Detail(rec *models.Record) ([]byte, error) {
	data := detailData{
		Name:          rec.DisplayName(),
		UserRequest:   rec.UserRequest,
		IndexHref:     IndexFile,
		Steps:         rec.Steps,
		TotalDuration: rec.TotalDuration,
		FinalOutput:   r.finalOutput(rec.FinalOutput),
	}
	if d := rec.Details; d != nil {
		data.ActivityType = labels.ActivityType(d.ActivityType)
		data.AgeGroup = labels.AgeGroup(d.AgeGroup)
		data.DurationMinutes = d.DurationMinutes
		data.MainTopic = d.MainTopic
		data.MainValues = strings.Join(d.MainValues, ", ")
		data.ClosingMessageTheme = d.ClosingMessageTheme
	}

	content, err := execute(detailTmpl, data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", rec.Filename, err)
	}
	return r.shell(data.Name, content)
}

func (r *Renderer) finalOutput(src string) template.HTML {
	if src == "" {
		return noFinalOutput
	}
	return Markdown(r.md, src)
}

func (r *Renderer) shell(title string, content template.HTML) ([]byte, error) {
	now := r.now()
	data := shellData{
		Lang:    pageLang.String(),
		Title:   title,
		Content: content,
		Footer:  r.footer,
		Date:    now.Format("02/01/2006"),
		StructuredData: map[string]string{
			"@context":    "https://schema.org",
			"@type":       "Report",
			"name":        title,
			"dateCreated": now.Format(time.DateOnly),
			"inLanguage":  pageLang.String(),
		},
		Style: style,
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering page shell: %w", err)
	}
	return buf.Bytes(), nil
}

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of an html/template
}
