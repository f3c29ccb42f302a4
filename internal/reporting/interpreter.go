package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/e2esite/internal/models"
)

// InterpretPassRate returns a human-readable explanation of a pass rate (0–1).
func InterpretPassRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All reports passed (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most reports passed (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the reports passed (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few reports passed (%.0f%%)", pct)
	}
}

// InterpretSteps summarizes step outcomes for one record.
func InterpretSteps(steps []models.Step) string {
	if len(steps) == 0 {
		return "No timed steps found."
	}
	failed := 0
	for _, s := range steps {
		if !s.Succeeded() {
			failed++
		}
	}
	if failed == 0 {
		return fmt.Sprintf("All %d steps succeeded.", len(steps))
	}
	return fmt.Sprintf("%d of %d steps did not succeed.", failed, len(steps))
}

// FormatSummaryReport produces a plain-language report for a batch of records.
func FormatSummaryReport(records []*models.Record, threshold int) string {
	var b strings.Builder

	d := models.Digest(records)

	b.WriteString("=== Interpretation ===\n\n")
	if d.Total == 0 {
		b.WriteString("No reports found.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Pass Rate:     %s\n", InterpretPassRate(d.PassRate())))
	b.WriteString(fmt.Sprintf("Duration:      %.1f minutes\n", d.DurationMinutes()))
	b.WriteString(fmt.Sprintf("Reports:       %d passed, %d failed out of %d total\n", d.Passed, d.Failed, d.Total))
	b.WriteString(fmt.Sprintf("Note:          status is inferred from report size (> %d bytes passes), not from a recorded outcome.\n", threshold))

	b.WriteString("\nPer-Report Interpretation:\n")
	for _, r := range records {
		icon := "✓"
		if !r.Passed() {
			icon = "✗"
		}
		name := r.Name
		if name == "" {
			name = r.Filename
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s (%d bytes)\n", icon, name, r.Status, r.SourceBytes))
		b.WriteString(fmt.Sprintf("    %s\n", InterpretSteps(r.Steps)))
	}

	return b.String()
}
