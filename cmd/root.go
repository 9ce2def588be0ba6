package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tidbcheck",
	Short: "MySQL schema compatibility checks for TiDB",
	Long: `tidbcheck scans MySQL schema dump files for DDL constructs that TiDB
does not support or silently alters.

It reports stored routines, FULLTEXT/SPATIAL indexes, unsupported character
sets and collations, subpartitioning, and other incompatibilities with the
file and line they occur on. With --apply it rewrites the files to a
best-effort compatible form.

Know exactly what breaks before you import a schema into TiDB. No guesses.`,
}

// Execute is called by main.main(). It adds all child commands to the root
// command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tidbcheck/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "Output format: text, plain, json, markdown")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show additional debug info")

	// Bind flags to viper
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home + "/.tidbcheck")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TIDBCHECK")
	viper.AutomaticEnv()

	// Silently ignore missing config file — it's optional
	if err := viper.ReadInConfig(); err == nil {
		// Map nested config structure to flat keys that flags expect.
		// Only set these if the flags haven't been explicitly set by the user.
		if !rootCmd.PersistentFlags().Changed("format") && viper.IsSet("defaults.format") {
			viper.Set("format", viper.GetString("defaults.format"))
		}
		if viper.IsSet("defaults.pattern") {
			viper.Set("pattern", viper.GetString("defaults.pattern"))
		}
	}
}
