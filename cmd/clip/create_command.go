package clip

import (
	"context"
	"fmt"

	"github.com/aokihara/cliptrim/internal/service"
	"github.com/spf13/cobra"
)

// NewCreateCommand creates the create clip command
func NewCreateCommand(svc service.ClipService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [SOURCE_VIDEO]",
		Short: "Trim a new clip out of a source video",
		Long:  `Trim the given time range out of a source video, generate a thumbnail, and save the clip to the library.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			// Get flags
			start, _ := cmd.Flags().GetFloat64("start")
			end, _ := cmd.Flags().GetFloat64("end")
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")

			ctx := context.Background()
			clipService, cleanup, err := resolveService(ctx, svc)
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := clipService.CreateClip(ctx, service.TrimRequest{
				Source:      source,
				Start:       start,
				End:         end,
				Title:       title,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create clip: %w", err)
			}

			cmd.Printf("Clip created: %s\n", record.ID)
			cmd.Printf("Title: %s\n", record.Title)
			cmd.Printf("Duration: %.1fs\n", record.DurationSeconds)
			cmd.Printf("File: %s\n", record.Locator)
			cmd.Printf("Thumbnail: %s\n", record.ThumbnailLocator)
			return nil
		},
	}

	// Add flags
	cmd.Flags().Float64("start", 0, "Start offset in seconds")
	cmd.Flags().Float64("end", 0, "End offset in seconds")
	cmd.Flags().String("title", "", "Clip title (1-50 characters)")
	cmd.Flags().String("description", "", "Clip description (up to 500 characters)")
	cmd.MarkFlagRequired("end")
	cmd.MarkFlagRequired("title")

	return cmd
}
