// Package models defines the records extracted from E2E test reports.
package models

// Status represents the derived outcome of a test report.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// StepSuccess is the raw result token for a successful step.
const StepSuccess = "SUCCESS"

// DefaultPassThreshold is the raw byte length a report must exceed to be
// counted as passed. File size is a weak proxy for outcome; reports do not
// carry an explicit status field.
const DefaultPassThreshold = 10000

// Record holds the fields extracted from one test report file.
type Record struct {
	Name          string           `json:"name"`
	Label         string           `json:"label"`
	Model         string           `json:"model,omitempty"`
	UserRequest   string           `json:"user_request,omitempty"`
	Details       *ActivityDetails `json:"activity_details,omitempty"`
	FinalOutput   string           `json:"final_output,omitempty"`
	Steps         []Step           `json:"steps"`
	TotalDuration float64          `json:"total_duration"`

	// Set by the site builder before rendering.
	Filename    string `json:"filename"`
	Status      Status `json:"status"`
	SourceBytes int    `json:"source_bytes"`
}

// ActivityDetails is the structured JSON block embedded in a report.
type ActivityDetails struct {
	ActivityType        string   `mapstructure:"activity_type" json:"activity_type"`
	AgeGroup            string   `mapstructure:"age_group" json:"age_group"`
	DurationMinutes     int      `mapstructure:"duration_minutes" json:"duration_minutes"`
	MainTopic           string   `mapstructure:"main_topic" json:"main_topic"`
	MainValues          []string `mapstructure:"main_values" json:"main_values"`
	ClosingMessageTheme string   `mapstructure:"closing_message_theme" json:"closing_message_theme"`
}

// Step is a single timed execution step.
type Step struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Status   string  `json:"status"`
}

// Succeeded reports whether the step's result token is SUCCESS.
func (s Step) Succeeded() bool {
	return s.Status == StepSuccess
}

// Passed reports whether the record was marked as passed.
func (r *Record) Passed() bool {
	return r.Status == StatusPass
}

// DisplayName returns the label, falling back to the identifier.
func (r *Record) DisplayName() string {
	if r.Label != "" {
		return r.Label
	}
	if r.Name != "" {
		return r.Name
	}
	return "Unknown"
}

// DurationMinutes returns the total step duration in minutes.
func (r *Record) DurationMinutes() float64 {
	return r.TotalDuration / 60
}

// StatusForSize derives a status from the raw byte length of a report.
func StatusForSize(size, threshold int) Status {
	if size > threshold {
		return StatusPass
	}
	return StatusFail
}

// SiteDigest aggregates a batch of records.
type SiteDigest struct {
	Total         int     `json:"total"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	TotalDuration float64 `json:"total_duration"`
}

// Digest computes aggregate counts for records.
func Digest(records []*Record) SiteDigest {
	d := SiteDigest{Total: len(records)}
	for _, r := range records {
		if r.Passed() {
			d.Passed++
		}
		d.TotalDuration += r.TotalDuration
	}
	d.Failed = d.Total - d.Passed
	return d
}

// DurationMinutes returns the batch duration in minutes.
func (d SiteDigest) DurationMinutes() float64 {
	return d.TotalDuration / 60
}

// PassRate returns the fraction of passed records (0 when empty).
func (d SiteDigest) PassRate() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Passed) / float64(d.Total)
}
