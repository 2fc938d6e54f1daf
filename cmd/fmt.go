package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/specdoc"
)

var (
	checkFlag bool
	forceFlag bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Rewrite spec documents in canonical form",
	Long: `Rewrite spec documents in canonical form: front matter, then prose,
then one gherkin block for the background, each rule and each scenario.

Prose that sat between gherkin blocks is moved above them.

Lines inside a gherkin block that fspec does not read (Feature headers,
comments, tables, Scenario Outlines, steps outside a scenario) cannot be
written back. Files holding such lines are left alone unless --force is
given, in which case those lines are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunFmt(cmd.OutOrStdout(), cfg, args, checkFlag, forceFlag)
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&checkFlag, "check", false, "List files that are not formatted and fail instead of writing")
	fmtCmd.Flags().BoolVar(&forceFlag, "force", false, "Format files even if unreadable gherkin lines would be dropped")
	rootCmd.AddCommand(fmtCmd)
}

func RunFmt(w io.Writer, c *config.Config, paths []string, check, force bool) error {
	if len(paths) == 0 {
		if err := requireInit(c); err != nil {
			return err
		}
		matches, err := filepath.Glob(c.Documents())
		if err != nil {
			return fmt.Errorf("scanning %s: %w", c.Dir, err)
		}
		sort.Strings(matches)
		paths = matches
	}

	changed, lossy := 0, 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		spec, err := specdoc.Load(string(content), c.FenceTag)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		out := spec.Render(c.FenceTag)
		if out == string(content) {
			logger.Debug().Str("file", path).Msg("already formatted")
			continue
		}
		changed++

		if skipped := spec.Doc.Skipped; len(skipped) > 0 && !force {
			lossy++
			logger.Warn().
				Str("file", path).
				Int("lines", len(skipped)).
				Str("first", skipped[0]).
				Msg("not formatted: gherkin lines would be dropped")
			if check {
				fmt.Fprintf(w, "%s  (%d line(s) would be dropped)\n", path, len(skipped))
			}
			continue
		}

		if check {
			fmt.Fprintln(w, path)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(w, "fmt  %s\n", path)
	}

	if check && changed > 0 {
		return fmt.Errorf("%d file(s) need formatting", changed)
	}
	if lossy > 0 {
		return fmt.Errorf("%d file(s) not formatted, rerun with --force to drop unreadable lines", lossy)
	}
	return nil
}
