package cmd

import (
	"github.com/aokihara/cliptrim/cmd/clip"
)

func init() {
	// nil service: each subcommand builds the real one via the factory
	rootCmd.AddCommand(clip.NewClipCommand(nil))
}
