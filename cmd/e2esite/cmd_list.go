package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/e2esite/internal/models"
	"github.com/spboyer/e2esite/internal/site"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var listHeader = []string{"NAME", "STATUS", "STEPS", "MINUTES", "LABEL"}

func newListCommand() *cobra.Command {
	flags := newBuildFlags()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the reports of a batch without writing a site",
		Long: `List every report the build would render, one row per file, with its
inferred status, step count, total minutes and display label.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCommandE(cmd, flags)
		},
	}

	flags.registerSource(cmd)
	return cmd
}

func listCommandE(cmd *cobra.Command, flags *buildFlags) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	siteCfg, err := flags.siteConfig(cmd, cfg)
	if err != nil {
		return err
	}

	records, err := site.New(siteCfg).LoadAll()
	if err != nil {
		return fmt.Errorf("loading reports: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No reports matching %s in %s\n", siteCfg.Pattern, siteCfg.InputDir) //nolint:errcheck
		return nil
	}
	writeTable(out, listRows(records), terminalWidth(out))
	return nil
}

func listRows(records []*models.Record) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, listHeader)
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = r.Filename
		}
		rows = append(rows, []string{
			name,
			string(r.Status),
			strconv.Itoa(len(r.Steps)),
			strconv.FormatFloat(r.DurationMinutes(), 'f', 1, 64),
			r.DisplayName(),
		})
	}
	return rows
}

// writeTable prints rows as space-aligned columns. A positive maxWidth cuts
// each line to that many terminal cells.
func writeTable(w io.Writer, rows [][]string, maxWidth int) {
	widths := make([]int, len(listHeader))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(padRight(cell, widths[i]))
			b.WriteString("  ")
		}
		line := b.String()
		if maxWidth > 0 {
			line = runewidth.Truncate(line, maxWidth, "…")
		}
		fmt.Fprintln(w, line) //nolint:errcheck
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// terminalWidth returns the column count of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
