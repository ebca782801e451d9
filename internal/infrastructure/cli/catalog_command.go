package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
)

func newCatalogCommand(container *app.Container) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the discovered command catalog",
	}

	catalogCmd.AddCommand(
		newCatalogListCommand(container),
		newCatalogPromptCommand(container),
	)
	return catalogCmd
}

func newCatalogListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cataloged commands with signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			built, warnings := container.CatalogProvider.Rebuild(cmd.Context())
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			if built.Len() == 0 {
				return fmt.Errorf("no commands discovered")
			}
			for _, d := range built.Descriptors() {
				if sig := d.Signature(); sig != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.Name, sig)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), d.Name)
				}
				if d.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d.Description)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  source: %s\n", d.Source)
			}
			return nil
		},
	}
}

func newCatalogPromptCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Render the catalog for LLM prompt injection",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := container.CatalogProvider.Snapshot()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snapshot.RenderPrompt())
			return nil
		},
	}
}
