package render

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spboyer/e2esite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
)

var fixedClock = func() time.Time {
	return time.Date(2025, 11, 27, 1, 37, 55, 0, time.UTC)
}

func newTestRenderer(opts ...Option) *Renderer {
	return New(append([]Option{WithClock(fixedClock)}, opts...)...)
}

func sampleRecord() *models.Record {
	return &models.Record{
		Name:        "Kibud_Av_VaEm",
		Label:       "כיבוד אב ואם",
		UserRequest: "Plan an activity",
		Details: &models.ActivityDetails{
			ActivityType:        "values_education",
			AgeGroup:            "teen",
			DurationMinutes:     45,
			MainTopic:           "Honoring parents",
			MainValues:          []string{"respect", "gratitude"},
			ClosingMessageTheme: "Family",
		},
		FinalOutput: "# Title\n\nBody",
		Steps: []models.Step{
			{Name: "extract", Duration: 1.5, Status: "SUCCESS"},
			{Name: "generate", Duration: 2.5, Status: "TIMEOUT"},
		},
		TotalDuration: 4,
		Filename:      "test_01_kibud",
		Status:        models.StatusPass,
	}
}

type failingMarkdown struct {
	goldmark.Markdown
}

func (failingMarkdown) Convert(source []byte, w io.Writer, opts ...parser.ParseOption) error {
	return errors.New("boom")
}

func TestMarkdown_HeadingAndParagraph(t *testing.T) {
	html := string(Markdown(NewMarkdown(), "# Title\n\nBody"))
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<p>Body</p>")
}

func TestMarkdown_Blocks(t *testing.T) {
	src := strings.Join([]string{
		"## Section",
		"",
		"- one",
		"- two",
		"",
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
		"",
		"```",
		"code here",
		"```",
		"",
		"> quoted",
		"",
		"---",
	}, "\n")

	html := string(Markdown(NewMarkdown(), src))
	assert.Contains(t, html, "<h2>Section</h2>")
	assert.Contains(t, html, "<li>one</li>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>1</td>")
	assert.Contains(t, html, "<pre><code>code here\n</code></pre>")
	assert.Contains(t, html, "<blockquote>")
	assert.Contains(t, html, "<hr>")
}

func TestMarkdown_FallbackOnFailure(t *testing.T) {
	html := string(Markdown(failingMarkdown{NewMarkdown()}, "# Raw <text>"))
	assert.Equal(t, "<pre># Raw &lt;text&gt;</pre>", html)
}

func TestDetail_Content(t *testing.T) {
	page, err := newTestRenderer().Detail(sampleRecord())
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, `<html lang="he" dir="rtl">`)
	assert.Contains(t, html, "<title>כיבוד אב ואם</title>")
	assert.Contains(t, html, "<h1>כיבוד אב ואם</h1>")
	assert.Contains(t, html, "<p>Plan an activity</p>")
	assert.Contains(t, html, `<a href="index.html">`)

	assert.Contains(t, html, "<td>חינוך ערכי</td>")
	assert.Contains(t, html, "<td>נוער (14-16)</td>")
	assert.Contains(t, html, "<td>45 דקות</td>")
	assert.Contains(t, html, "<td>respect, gratitude</td>")
	assert.Contains(t, html, "<td>Family</td>")

	assert.Contains(t, html, "<td>1.5</td>")
	assert.Contains(t, html, "<td>2.5</td>")
	assert.Equal(t, 1, strings.Count(html, `<span class="badge badge-success">הצלחה</span>`))
	assert.Equal(t, 1, strings.Count(html, `<span class="badge badge-danger">כשלון</span>`))
	assert.Contains(t, html, `<strong>סה"כ זמן ביצוע:</strong> 0.1 דקות`)

	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<p>Body</p>")
	assert.Contains(t, html, "27/11/2025")
}

func TestDetail_LargeNumbersAreNotGrouped(t *testing.T) {
	rec := sampleRecord()
	rec.Details.DurationMinutes = 1200
	rec.Steps = []models.Step{{Name: "long", Duration: 1234.5, Status: "SUCCESS"}}
	rec.TotalDuration = 123456

	page, err := newTestRenderer().Detail(rec)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<td>1234.5</td>")
	assert.Contains(t, html, "<td>1200 דקות</td>")
	assert.Contains(t, html, "2057.6 דקות")
	assert.NotContains(t, html, "1,234.5")
	assert.NotContains(t, html, "1,200")

	index, err := newTestRenderer().Index([]*models.Record{rec})
	require.NoError(t, err)
	assert.Contains(t, string(index), "1200 דקות")
	assert.Contains(t, string(index), "2057.6 דק'")
}

func TestDetail_MissingFieldsRenderEmpty(t *testing.T) {
	page, err := newTestRenderer().Detail(&models.Record{Filename: "test_bare"})
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<h1>Unknown</h1>")
	assert.Contains(t, html, "<tr><th>סוג פעילות</th><td></td></tr>")
	assert.Contains(t, html, "<td>0 דקות</td>")
	assert.Contains(t, html, "<p>לא נמצא פלט סופי</p>")
	assert.Contains(t, html, "0.0 דקות")
}

func TestDetail_EscapesText(t *testing.T) {
	rec := sampleRecord()
	rec.UserRequest = "<script>alert(1)</script>"
	page, err := newTestRenderer().Detail(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<script>alert(1)</script>")
	assert.Contains(t, string(page), "&lt;script&gt;")
}

func TestDetail_MarkdownFailureFallsBack(t *testing.T) {
	r := newTestRenderer(WithMarkdown(failingMarkdown{NewMarkdown()}))
	page, err := r.Detail(sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, string(page), "<pre># Title\n\nBody</pre>")
}

func TestIndex_Summary(t *testing.T) {
	failed := &models.Record{
		Name:          "Teamwork_Games",
		Label:         "משחקי עבודת צוות",
		Details:       &models.ActivityDetails{ActivityType: "workshop", AgeGroup: "middle", DurationMinutes: 30},
		TotalDuration: 116,
		Filename:      "test_02_teamwork",
		Status:        models.StatusFail,
	}
	records := []*models.Record{sampleRecord(), failed}

	page, err := newTestRenderer().Index(records)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<title>דוחות בדיקות Agadah-Bot</title>")
	assert.Contains(t, html, `<div class="stat-value">2</div>`)
	assert.Contains(t, html, `<div class="stat-value" style="color: var(--success)">1</div>`)
	assert.Contains(t, html, `<div class="stat-value" style="color: var(--danger)">1</div>`)
	assert.Contains(t, html, `<div class="stat-value">2.0</div>`)

	first := strings.Index(html, `href="test_01_kibud.html"`)
	second := strings.Index(html, `href="test_02_teamwork.html"`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "rows follow input order")

	assert.Contains(t, html, `<div class="test-status pass">✓</div>`)
	assert.Contains(t, html, `<div class="test-status fail">✗</div>`)
	assert.Contains(t, html, `<span class="badge badge-primary">workshop</span>`)
	assert.Contains(t, html, `<span class="badge badge-primary">בינוני (10-13)</span>`)
	assert.Contains(t, html, `<span class="badge badge-primary">30 דקות</span>`)
	assert.Contains(t, html, `<div class="test-duration">1.9 דק'</div>`)
}

func TestIndex_Empty(t *testing.T) {
	page, err := newTestRenderer(WithTitle("Reports")).Index(nil)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<title>Reports</title>")
	assert.Contains(t, html, `<div class="stat-value">0</div>`)
	assert.NotContains(t, html, "test-item\"")
}

func TestShell_FooterAndStructuredData(t *testing.T) {
	page, err := newTestRenderer(WithFooter("Built by CI")).Index(nil)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<p>Built by CI | 27/11/2025</p>")
	assert.Contains(t, html, `<script type="application/ld+json">`)
	assert.Contains(t, html, `"dateCreated":"2025-11-27"`)
	assert.Contains(t, html, "fonts.googleapis.com/css2?family=Heebo")
}

func TestRender_Deterministic(t *testing.T) {
	r := newTestRenderer()
	a, err := r.Detail(sampleRecord())
	require.NoError(t, err)
	b, err := r.Detail(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	ia, err := r.Index([]*models.Record{sampleRecord()})
	require.NoError(t, err)
	ib, err := r.Index([]*models.Record{sampleRecord()})
	require.NoError(t, err)
	assert.Equal(t, ia, ib)
}
