package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check pipeline health (config, catalog, executables, history)",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			for _, check := range report.Checks {
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s: %s\n", statusBadge(check.Status), check.Name, check.Message)
			}
			return err
		},
	}
}

func statusBadge(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "[ok]"
	case domain.HealthWarn:
		return "[!]"
	default:
		return "[x]"
	}
}
