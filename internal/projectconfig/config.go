// Package projectconfig provides the ProjectConfig struct and loader for
// .e2esite.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".e2esite.yaml"

// Default values for project configuration. These are the single source of
// truth; New() references them and no other code should duplicate them.
const (
	DefaultInputDir  = "batch"
	DefaultOutputDir = "site"
	DefaultPattern   = "test_*.md"

	DefaultPassThreshold = 10000
)

// PathsConfig holds the input and output directories.
type PathsConfig struct {
	Input  string `yaml:"input,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// InputConfig selects the report files inside the input directory.
type InputConfig struct {
	Pattern string `yaml:"pattern,omitempty"`
}

// StatusConfig holds the pass/fail heuristic settings.
type StatusConfig struct {
	PassThresholdBytes int `yaml:"pass_threshold_bytes,omitempty"`
}

// SiteConfig holds display texts for the generated pages.
type SiteConfig struct {
	Title    string `yaml:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Footer   string `yaml:"footer,omitempty"`
}

// OutputConfig toggles extra build artifacts.
type OutputConfig struct {
	JUnit       *bool `yaml:"junit,omitempty"`
	Precompress *bool `yaml:"precompress,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .e2esite.yaml.
type ProjectConfig struct {
	Paths  PathsConfig  `yaml:"paths,omitempty"`
	Input  InputConfig  `yaml:"input,omitempty"`
	Status StatusConfig `yaml:"status,omitempty"`
	Site   SiteConfig   `yaml:"site,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`

	// Dir is the directory holding the loaded file, or the start directory
	// when none was found. Relative paths resolve against it.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Input:  DefaultInputDir,
			Output: DefaultOutputDir,
		},
		Input: InputConfig{
			Pattern: DefaultPattern,
		},
		Status: StatusConfig{
			PassThresholdBytes: DefaultPassThreshold,
		},
		Output: OutputConfig{
			JUnit:       boolPtr(false),
			Precompress: boolPtr(false),
		},
	}
}

// Load finds .e2esite.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}
	cfg.Dir = absDir

	data, dir, err := findConfigFile(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	cfg.Dir = dir
	return cfg, nil
}

// findConfigFile walks up from dir looking for .e2esite.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, string, error) {
	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Input != "" {
		dst.Paths.Input = src.Paths.Input
	}
	if src.Paths.Output != "" {
		dst.Paths.Output = src.Paths.Output
	}

	// Input
	if src.Input.Pattern != "" {
		dst.Input.Pattern = src.Input.Pattern
	}

	// Status
	if src.Status.PassThresholdBytes != 0 {
		dst.Status.PassThresholdBytes = src.Status.PassThresholdBytes
	}

	// Site
	if src.Site.Title != "" {
		dst.Site.Title = src.Site.Title
	}
	if src.Site.Subtitle != "" {
		dst.Site.Subtitle = src.Site.Subtitle
	}
	if src.Site.Footer != "" {
		dst.Site.Footer = src.Site.Footer
	}

	// Output
	if src.Output.JUnit != nil {
		dst.Output.JUnit = src.Output.JUnit
	}
	if src.Output.Precompress != nil {
		dst.Output.Precompress = src.Output.Precompress
	}
}

// Resolve returns path relative to the config directory; absolute paths are
// returned unchanged.
func (c *ProjectConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// InputDir returns the resolved input directory.
func (c *ProjectConfig) InputDir() string { return c.Resolve(c.Paths.Input) }

// OutputDir returns the resolved output directory.
func (c *ProjectConfig) OutputDir() string { return c.Resolve(c.Paths.Output) }

func boolPtr(b bool) *bool {
	return &b
}
