package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const versionTemplate = `tidbcheck {{.Version}}

Rule set targets:
  • TiDB 7.1 LTS and later
  • TiDB 8.1 / 8.5 LTS

Checks are based on schema dumps from MySQL 5.7 and 8.0 (mysqldump layout).
`

// Version is set at build time via ldflags
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tidbcheck version and the TiDB versions the rule set targets",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tidbcheck %s (commit: %s, built: %s)\n\n", Version, CommitSHA, BuildDate)
		fmt.Println("Rule set targets:")
		fmt.Println("  • TiDB 7.1 LTS and later")
		fmt.Println("  • TiDB 8.1 / 8.5 LTS")
		fmt.Println()
		fmt.Println("Checks are based on schema dumps from MySQL 5.7 and 8.0 (mysqldump layout).")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Enable the standard --version flag, matching the `version` subcommand output.
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, CommitSHA, BuildDate)
	rootCmd.SetVersionTemplate(versionTemplate)
}
