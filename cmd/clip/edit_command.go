package clip

import (
	"context"
	"fmt"

	"github.com/aokihara/cliptrim/internal/service"
	"github.com/spf13/cobra"
)

// NewEditCommand creates the edit clip command
func NewEditCommand(svc service.ClipService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [VIDEO_ID] [SOURCE_VIDEO]",
		Short: "Re-trim an existing clip",
		Long: `Replace an existing clip with a new trim of a source video.
The clip keeps its ID and creation time; every other field is replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			source := args[1]

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

			record, err := clipService.EditClip(ctx, videoID, service.TrimRequest{
				Source:      source,
				Start:       start,
				End:         end,
				Title:       title,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to edit clip: %w", err)
			}

			cmd.Printf("Clip updated: %s\n", record.ID)
			cmd.Printf("Title: %s\n", record.Title)
			cmd.Printf("Duration: %.1fs\n", record.DurationSeconds)
			cmd.Printf("File: %s\n", record.Locator)
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
