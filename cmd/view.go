package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/specdoc"
	"github.com/chriserin/fspec/internal/ui"
)

var (
	noProseFlag bool
	widthFlag   int
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Show a spec document as a tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunView(cmd.OutOrStdout(), cfg, args[0], !noProseFlag, widthFlag)
	},
}

func init() {
	viewCmd.Flags().BoolVar(&noProseFlag, "no-prose", false, "Hide the prose around the gherkin blocks")
	viewCmd.Flags().IntVar(&widthFlag, "width", 80, "Wrap prose at this width")
	rootCmd.AddCommand(viewCmd)
}

func RunView(w io.Writer, c *config.Config, path string, prose bool, width int) error {
	spec, err := specdoc.ReadFile(path, c.FenceTag)
	if err != nil {
		return err
	}

	name := spec.Name()
	if name == "" {
		name = filepath.Base(path)
	}
	fmt.Fprintln(w, ui.DocumentTree(name, spec.Doc))

	if prose {
		if text := ui.Prose(spec.Doc.OtherContent, width); text != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, text)
		}
	}
	return nil
}
