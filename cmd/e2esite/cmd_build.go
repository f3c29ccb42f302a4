package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spboyer/e2esite/internal/projectconfig"
	"github.com/spboyer/e2esite/internal/render"
	"github.com/spboyer/e2esite/internal/reporting"
	"github.com/spboyer/e2esite/internal/site"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	input       string
	output      string
	pattern     string
	threshold   int
	junit       bool
	precompress bool
	interpret   bool
}

func newBuildFlags() *buildFlags { return &buildFlags{} }

func (f *buildFlags) register(cmd *cobra.Command) {
	f.registerSource(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Directory the site is written to (default from .e2esite.yaml or \"site\")")
	cmd.Flags().BoolVar(&f.junit, "junit", false, "Also write junit.xml")
	cmd.Flags().BoolVar(&f.precompress, "precompress", false, "Also write gzip-compressed copies of every page")
	cmd.Flags().BoolVar(&f.interpret, "interpret", false, "Print a plain-language summary after building")
}

// registerSource adds the flags shared by every command that reads reports.
func (f *buildFlags) registerSource(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Directory holding the test report files (default from .e2esite.yaml or \"batch\")")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Glob selecting report files (default \"test_*.md\")")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "Reports larger than this many bytes count as passed (default 10000)")
}

func newBuildCommand() *cobra.Command {
	flags := newBuildFlags()

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the HTML site",
		Long: `Generate the HTML site from a batch of test reports.

Every file matching the pattern inside the input directory becomes a detail
page named after the file, and index.html links them all. Flags override
values from .e2esite.yaml, which is looked up from the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildCommandE(cmd, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func buildCommandE(cmd *cobra.Command, flags *buildFlags) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	siteCfg, err := flags.siteConfig(cmd, cfg)
	if err != nil {
		return err
	}
	slog.Debug("building site", "input", siteCfg.InputDir, "output", siteCfg.OutputDir, "pattern", siteCfg.Pattern)

	renderer := render.New(
		render.WithTitle(cfg.Site.Title),
		render.WithSubtitle(cfg.Site.Subtitle),
		render.WithFooter(cfg.Site.Footer),
	)
	builder := site.New(siteCfg,
		site.WithRenderer(renderer),
		site.WithOutput(cmd.OutOrStdout()),
	)

	res, err := builder.Build()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	if flags.interpret {
		summary := reporting.FormatSummaryReport(res.Records, siteCfg.PassThreshold)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s", summary) //nolint:errcheck
	}
	return nil
}

// siteConfig merges explicitly set flags over the project configuration.
func (f *buildFlags) siteConfig(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) (site.Config, error) {
	sc := site.Config{
		InputDir:      cfg.InputDir(),
		OutputDir:     cfg.OutputDir(),
		Pattern:       cfg.Input.Pattern,
		PassThreshold: cfg.Status.PassThresholdBytes,
		SuiteName:     cfg.Site.Title,
		JUnit:         cfg.Output.JUnit != nil && *cfg.Output.JUnit,
		Precompress:   cfg.Output.Precompress != nil && *cfg.Output.Precompress,
	}

	changed := cmd.Flags().Changed
	if changed("input") {
		sc.InputDir = f.input
	}
	if changed("output") {
		sc.OutputDir = f.output
	}
	if changed("pattern") {
		sc.Pattern = f.pattern
	}
	if changed("threshold") {
		if f.threshold <= 0 {
			return site.Config{}, fmt.Errorf("--threshold must be positive, got %d", f.threshold)
		}
		sc.PassThreshold = f.threshold
	}
	if changed("junit") {
		sc.JUnit = f.junit
	}
	if changed("precompress") {
		sc.Precompress = f.precompress
	}
	return sc, nil
}

func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return cfg, nil
}
