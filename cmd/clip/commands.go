package clip

import (
	"github.com/aokihara/cliptrim/internal/service"
	"github.com/spf13/cobra"
)

// NewClipCommand creates the main clip command
func NewClipCommand(svc service.ClipService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Manage the clip library",
		Long:  `Create, edit, list, show, and remove trimmed video clips`,
	}

	// Add subcommands
	cmd.AddCommand(NewCreateCommand(svc))
	cmd.AddCommand(NewEditCommand(svc))
	cmd.AddCommand(NewListCommand(svc))
	cmd.AddCommand(NewShowCommand(svc))
	cmd.AddCommand(NewRemoveCommand(svc))

	return cmd
}
