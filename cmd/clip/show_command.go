package clip

import (
	"context"
	"fmt"

	"github.com/aokihara/cliptrim/internal/service"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show clip command
func NewShowCommand(svc service.ClipService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [VIDEO_ID]",
		Short: "Show one clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]

			// Get flags
			format, _ := cmd.Flags().GetString("format")

			ctx := context.Background()
			clipService, cleanup, err := resolveService(ctx, svc)
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := clipService.GetClip(ctx, videoID)
			if err != nil {
				return fmt.Errorf("failed to get clip: %w", err)
			}

			formatter, err := NewFormatter(format)
			if err != nil {
				return err
			}

			output, err := formatter.Format(record)
			if err != nil {
				return fmt.Errorf("failed to format clip: %w", err)
			}
			cmd.Print(output)
			return nil
		},
	}

	// Add flags
	cmd.Flags().String("format", "text", "Output format (text or json)")

	return cmd
}
