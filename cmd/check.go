package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nethalo/tidbcheck/internal/output"
	"github.com/nethalo/tidbcheck/internal/rules"
	"github.com/nethalo/tidbcheck/internal/scanner"
	"github.com/nethalo/tidbcheck/internal/verify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var checkCmd = &cobra.Command{
	Use:   "check [file or directory]",
	Short: "Scan MySQL schema files for TiDB incompatibilities",
	Long: `Scan a MySQL schema dump file — or a directory of them — and report
every construct TiDB does not support or silently alters:
  - Stored procedures, functions, triggers, events
  - FULLTEXT and SPATIAL indexes
  - Unsupported character sets and collations
  - Column-level privileges, tablespaces, subpartitioning, ROW_FORMAT
  - Tables without a PRIMARY or UNIQUE key
  - AUTO_INCREMENT semantics and overflow-prone column types

With --apply, the files are rewritten in place to a best-effort compatible
form. Warnings are findings, not failures: the exit status is zero whenever
the input resolved and every file was read (and, with --apply, written).`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("pattern", scanner.DefaultPattern, "Filename glob for directory mode")
	checkCmd.Flags().Bool("apply", false, "Rewrite files in place, removing incompatible constructs")
	checkCmd.Flags().Bool("verify", false, "Re-parse the transformed statements with the MySQL grammar")
}

func runCheck(cmd *cobra.Command, args []string) error {
	pattern, _ := cmd.Flags().GetString("pattern")
	if !cmd.Flags().Changed("pattern") && viper.IsSet("pattern") {
		pattern = viper.GetString("pattern")
	}
	apply, _ := cmd.Flags().GetBool("apply")
	verifyPass, _ := cmd.Flags().GetBool("verify")

	files, err := scanner.Resolve(args[0], pattern)
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(resolveFormat(cmd.OutOrStdout()), cmd.OutOrStdout())

	// The engine and its rule table are read-only; one instance serves
	// every file. Files are processed strictly in discovery order.
	sc := scanner.New(rules.NewEngine(), apply)

	for _, path := range files {
		result, err := sc.ScanFile(path)
		if err != nil {
			return err
		}

		report := &output.Report{
			Path:     path,
			Warnings: result.Warnings,
			Modified: result.Modified,
		}
		if verifyPass {
			report.VerifyNotes = verify.Statements(result.Content())
		}

		// The result is fully materialized before this point, so a failed
		// scan can never leave a half-rewritten file behind.
		if apply && result.Modified {
			if err := os.WriteFile(path, []byte(result.Content()), 0644); err != nil {
				return fmt.Errorf("writing rewritten schema %s: %w", path, err)
			}
			report.Applied = true
		}

		renderer.RenderReport(report)
	}

	return nil
}

// resolveFormat returns the effective output format. The styled text
// renderer degrades to plain when stdout is not a terminal, unless the user
// forced a format explicitly.
func resolveFormat(w io.Writer) string {
	format := viper.GetString("format")
	if format != "text" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "plain"
}
