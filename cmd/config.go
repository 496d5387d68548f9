package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aokihara/cliptrim/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage configuration settings for cliptrim.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [LIBRARY_DIR]",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with library and storage settings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var libraryDir string
		if len(args) > 0 {
			libraryDir = args[0]
		}

		if err := config.InitConfig(libraryDir); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Created configuration file: %s\n", configPath)
		fmt.Println("Edit it to change the library directory or switch to the postgres backend.")

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file path and settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration file: %s\n\n", configPath)

		// Load and display current config
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		fmt.Printf("library_dir: %s\n", cfg.LibraryDir)
		fmt.Printf("storage: %s\n", cfg.Storage)
		if cfg.Storage == config.StoragePostgres {
			fmt.Printf("database_url: %s\n", cfg.DatabaseURL)
		}
		if cfg.FFmpegPath != "" {
			fmt.Printf("ffmpeg_path: %s\n", cfg.FFmpegPath)
		}
		fmt.Printf("min_clip_seconds: %g\n", cfg.MinClipSeconds)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
