package clip

import (
	"context"
	"fmt"

	"github.com/aokihara/cliptrim/internal/service"
	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove clip command
func NewRemoveCommand(svc service.ClipService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [VIDEO_ID]",
		Short: "Remove a clip from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]

			// Get flags
			force, _ := cmd.Flags().GetBool("force")
			keepFiles, _ := cmd.Flags().GetBool("keep-files")

			// Confirmation prompt if not forced
			if !force {
				cmd.Printf("Are you sure you want to remove clip %s? (y/N): ", videoID)
				var response string
				fmt.Scanln(&response)

				if response != "y" && response != "Y" && response != "yes" {
					cmd.Println("Removal cancelled")
					return nil
				}
			}

			ctx := context.Background()
			clipService, cleanup, err := resolveService(ctx, svc)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := clipService.RemoveClip(ctx, videoID, keepFiles); err != nil {
				return fmt.Errorf("failed to remove clip: %w", err)
			}

			cmd.Printf("Clip %s removed successfully\n", videoID)
			return nil
		},
	}

	// Add flags
	cmd.Flags().Bool("force", false, "Force removal without confirmation")
	cmd.Flags().Bool("keep-files", false, "Keep the media files on disk")

	return cmd
}
