package cmds

import (
	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"os"
	"path/filepath"
)

var gendocsOutputDir string

// gendocsCommand renders Markdown + a man page for the whole command
// tree, grounded on the teacher's scripts/gen-usage-docs.go and
// scripts/gen-cli-docs.go.
func gendocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "gendocs",
		Short:  "Generate Markdown and man-page documentation for x86dbg",
		Hidden: true,
		RunE:   runGendocs,
	}
	cmd.Flags().StringVar(&gendocsOutputDir, "out", "docs", "output directory")
	return cmd
}

func runGendocs(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	if err := os.MkdirAll(gendocsOutputDir, 0o755); err != nil {
		return err
	}
	if err := doc.GenMarkdownTree(root, gendocsOutputDir); err != nil {
		return err
	}

	md, err := os.ReadFile(filepath.Join(gendocsOutputDir, "x86dbg.md"))
	if err != nil {
		return err
	}
	man := md2man.Render(md)
	return os.WriteFile(filepath.Join(gendocsOutputDir, "x86dbg.1"), man, 0o644)
}
