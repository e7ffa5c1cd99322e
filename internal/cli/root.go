package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	verbose    bool
	backend    string
	ledgerPath string
	noCache    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "probledger",
	Short: "Probledger - a ledger of named event probabilities",
	Long: `Probledger keeps a persistent ledger of named events and the
probability values assigned to them.

It stores exactly what you give it: values are never normalized,
clamped to [0,1], or combined. Interpreting the numbers is the
caller's business.

Entries can be added, read, adjusted by a delta, renamed, swapped,
and imported in bulk.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Probledger.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("probledger v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.probledger/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "ledger backend: yaml or sqlite (default from config)")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "ledger file path (default: $HOME/.probledger/ledger.<ext>)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the in-memory read cache")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.probledger")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PROBLEDGER_*. Nested keys
	// map dots to underscores: ledger.backend -> PROBLEDGER_LEDGER_BACKEND
	viper.SetEnvPrefix("PROBLEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
