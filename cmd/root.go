package cmd

import (
	"os"

	"github.com/aokihara/cliptrim/internal/logging"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cliptrim",
	Short: "Trim personal videos and manage a local clip library",
	Long: `cliptrim trims clips out of personal videos with ffmpeg, attaches
metadata, and keeps the resulting library in a durable local snapshot.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
