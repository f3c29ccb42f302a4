// Package wizard collects project settings interactively and renders them as .e2esite.yaml.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/e2esite/internal/projectconfig"
	"golang.org/x/term"
)

// ConfigSpec holds all fields collected during the interactive wizard.
type ConfigSpec struct {
	InputDir      string
	OutputDir     string
	Pattern       string
	PassThreshold int
	JUnit         bool
	Precompress   bool
}

// DefaultSpec returns the answers used when the wizard is skipped.
func DefaultSpec() *ConfigSpec {
	return &ConfigSpec{
		InputDir:      projectconfig.DefaultInputDir,
		OutputDir:     projectconfig.DefaultOutputDir,
		Pattern:       projectconfig.DefaultPattern,
		PassThreshold: projectconfig.DefaultPassThreshold,
	}
}

const configTemplate = `# e2esite project configuration
paths:
  input: {{ quote .InputDir }}
  output: {{ quote .OutputDir }}
input:
  pattern: {{ quote .Pattern }}
status:
  # Reports longer than this many bytes are counted as passed.
  pass_threshold_bytes: {{ .PassThreshold }}
output:
  junit: {{ .JUnit }}
  precompress: {{ .Precompress }}
`

// RunConfigWizard runs an interactive huh form to collect project settings.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	spec := DefaultSpec()
	threshold := strconv.Itoa(spec.PassThreshold)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input directory").
				Description("Directory holding the test report markdown files").
				Placeholder(projectconfig.DefaultInputDir).
				Value(&spec.InputDir).
				Validate(required("input directory")),
			huh.NewInput().
				Title("Output directory").
				Description("Where the HTML site is written").
				Placeholder(projectconfig.DefaultOutputDir).
				Value(&spec.OutputDir).
				Validate(required("output directory")),
			huh.NewInput().
				Title("File pattern").
				Description("Glob selecting report files inside the input directory").
				Placeholder(projectconfig.DefaultPattern).
				Value(&spec.Pattern).
				Validate(required("file pattern")),
			huh.NewInput().
				Title("Pass threshold (bytes)").
				Description("Reports larger than this are shown as passed").
				Value(&threshold).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("threshold must be a positive integer")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Write junit.xml?").
				Value(&spec.JUnit),
			huh.NewConfirm().
				Title("Write precompressed .gz pages?").
				Value(&spec.Precompress),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec.InputDir = strings.TrimSpace(spec.InputDir)
	spec.OutputDir = strings.TrimSpace(spec.OutputDir)
	spec.Pattern = strings.TrimSpace(spec.Pattern)
	n, err := strconv.Atoi(strings.TrimSpace(threshold))
	if err != nil {
		return nil, fmt.Errorf("invalid threshold %q: %w", threshold, err)
	}
	spec.PassThreshold = n
	return spec, nil
}

// GenerateConfigYAML renders a .e2esite.yaml from the given spec.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	tmpl, err := template.New("config").Funcs(template.FuncMap{
		"quote": strconv.Quote,
	}).Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
