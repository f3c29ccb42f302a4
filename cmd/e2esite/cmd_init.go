package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spboyer/e2esite/internal/projectconfig"
	"github.com/spboyer/e2esite/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCommand() *cobra.Command {
	var useDefaults bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .e2esite.yaml project file",
		Long: `Create a .e2esite.yaml project file in the given directory.

When stdin is a terminal a short form asks for the input and output
directories, the file pattern, the pass threshold and optional artifacts.
Otherwise, or with --yes, the defaults are written.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, useDefaults, force)
		},
	}

	cmd.Flags().BoolVarP(&useDefaults, "yes", "y", false, "Write the defaults without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .e2esite.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, useDefaults, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists; use --force to overwrite\n", path) //nolint:errcheck
		return nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	spec := wizard.DefaultSpec()
	if !useDefaults && isTerminalInput(cmd) {
		var err error
		spec, err = wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", projectconfig.FileName, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", projectconfig.FileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
	return nil
}

// isTerminalInput checks the command's input stream, not os.Stdin directly.
func isTerminalInput(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
