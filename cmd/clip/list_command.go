package clip

import (
	"context"
	"fmt"

	"github.com/aokihara/cliptrim/internal/service"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list clips command
func NewListCommand(svc service.ClipService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all clips in the library, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get flags
			format, _ := cmd.Flags().GetString("format")

			ctx := context.Background()
			clipService, cleanup, err := resolveService(ctx, svc)
			if err != nil {
				return err
			}
			defer cleanup()

			records := clipService.ListClips(ctx)
			if len(records) == 0 {
				cmd.Println("No clips in the library")
				return nil
			}

			formatter, err := NewFormatter(format)
			if err != nil {
				return err
			}

			output, err := formatter.FormatList(records)
			if err != nil {
				return fmt.Errorf("failed to format clips: %w", err)
			}
			cmd.Print(output)
			return nil
		},
	}

	// Add flags
	cmd.Flags().String("format", "text", "Output format (text or json)")

	return cmd
}
