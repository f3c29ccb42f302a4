package reporting

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/spboyer/e2esite/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one report batch.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one report file.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitFailure represents a failed report.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a batch of records to JUnit XML types.
func ConvertToJUnit(suiteName string, records []*models.Record, threshold int, ts time.Time) *JUnitTestSuites {
	d := models.Digest(records)

	suite := JUnitTestSuite{
		Name:      suiteName,
		Tests:     d.Total,
		Failures:  d.Failed,
		Time:      d.TotalDuration,
		Timestamp: ts.UTC().Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "pass_threshold_bytes", Value: fmt.Sprintf("%d", threshold)},
			{Name: "status_source", Value: "file_size"},
		},
	}

	for _, r := range records {
		suite.TestCases = append(suite.TestCases, convertRecord(r, threshold))
	}

	return &JUnitTestSuites{
		Tests:      d.Total,
		Failures:   d.Failed,
		Time:       d.TotalDuration,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertRecord(r *models.Record, threshold int) JUnitTestCase {
	name := r.Name
	if name == "" {
		name = r.Filename
	}
	tc := JUnitTestCase{
		Name:      name,
		Classname: r.Filename,
		Time:      r.TotalDuration,
		SystemOut: formatSteps(r.Steps),
	}
	if !r.Passed() {
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: report is %d bytes (threshold %d)", name, r.SourceBytes, threshold),
			Type:    "ReportTooSmall",
			Body:    formatFailedSteps(r.Steps),
		}
	}
	return tc
}

func formatSteps(steps []models.Step) string {
	var b strings.Builder
	for _, s := range steps {
		fmt.Fprintf(&b, "%s %.1fs %s\n", s.Name, s.Duration, s.Status)
	}
	return b.String()
}

func formatFailedSteps(steps []models.Step) string {
	var b strings.Builder
	for _, s := range steps {
		if !s.Succeeded() {
			fmt.Fprintf(&b, "[FAIL] %s: %s\n", s.Name, s.Status)
		}
	}
	return b.String()
}

// MarshalJUnitXML renders records as an indented JUnit XML document.
func MarshalJUnitXML(suiteName string, records []*models.Record, threshold int, ts time.Time) ([]byte, error) {
	suites := ConvertToJUnit(suiteName, records, threshold, ts)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	return append([]byte(xml.Header), data...), nil
}
