// Package extract pulls report fields out of E2E test report markdown.
//
// Extraction is best effort: every field is matched independently and a
// missing or malformed field is left unset rather than reported.
package extract

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/e2esite/internal/labels"
	"github.com/spboyer/e2esite/internal/models"
)

const finalOutputHeading = "## Final Output\n\n"

// word matches Unicode letters, digits and underscore. RE2's \w is ASCII-only.
const word = `[\p{L}\p{N}_]+`

var (
	titleRe        = regexp.MustCompile(`# E2E Test Report: (` + word + `)`)
	modelRe        = regexp.MustCompile(`\| model \| (.+?) \|`)
	userRequestRe  = regexp.MustCompile(`\*\*User Request:\*\* (.+)`)
	detailsRe      = regexp.MustCompile("(?s)```json\\n(\\{.*?\\})\\n```")
	fencedOutputRe = regexp.MustCompile("(?s)## Final Output\\n\\n```markdown\\n(.+?)```")
	stepRe         = regexp.MustCompile(`(?s)STEP: (.+?)\n.*?Duration: ([\d.]+)s.*?Result: (` + word + `)`)
)

// Extract parses the raw text of one report. It never fails; fields whose
// pattern is absent are left at their zero value.
func Extract(content string) *models.Record {
	r := &models.Record{}

	if m := titleRe.FindStringSubmatch(content); m != nil {
		r.Name = m[1]
		r.Label = labels.TestName(r.Name)
	}
	if m := modelRe.FindStringSubmatch(content); m != nil {
		r.Model = m[1]
	}
	if m := userRequestRe.FindStringSubmatch(content); m != nil {
		r.UserRequest = m[1]
	}

	r.Details = parseDetails(content)
	r.FinalOutput = finalOutput(content)
	r.Steps = parseSteps(content)

	for _, s := range r.Steps {
		r.TotalDuration += s.Duration
	}
	return r
}

// parseDetails decodes the first fenced JSON object. Invalid JSON yields nil;
// a field whose value cannot be coerced is left at its zero value.
func parseDetails(content string) *models.ActivityDetails {
	m := detailsRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		slog.Debug("Ignoring malformed activity details", "error", err)
		return nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Decode key by key so one mistyped field does not drop the others.
	var details models.ActivityDetails
	for _, k := range keys {
		next := details
		if err := decodeDetails(map[string]any{k: raw[k]}, &next); err != nil {
			slog.Debug("Skipping undecodable activity detail", "field", k, "error", err)
			continue
		}
		details = next
	}
	return &details
}

func decodeDetails(input map[string]any, out *models.ActivityDetails) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// finalOutput prefers a ```markdown fence directly under the Final Output
// heading and otherwise takes everything up to the next level-2 heading.
func finalOutput(content string) string {
	if m := fencedOutputRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}

	idx := strings.Index(content, finalOutputHeading)
	if idx < 0 {
		return ""
	}
	rest := content[idx+len(finalOutputHeading):]
	if rest == "" {
		return ""
	}
	// The section body is at least one byte long, so the next heading is
	// searched for after the first byte.
	if cut := strings.Index(rest[1:], "\n## "); cut >= 0 {
		rest = rest[:cut+1]
	}
	return strings.TrimSpace(rest)
}

func parseSteps(content string) []models.Step {
	matches := stepRe.FindAllStringSubmatch(content, -1)
	steps := make([]models.Step, 0, len(matches))
	for _, m := range matches {
		d, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			slog.Debug("Unparseable step duration", "step", m[1], "duration", m[2])
			d = 0
		}
		steps = append(steps, models.Step{
			Name:     m[1],
			Duration: d,
			Status:   m[3],
		})
	}
	return steps
}
