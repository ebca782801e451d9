package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// CatalogOverride replaces the configured catalog sources.
	CatalogOverride []string
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose, opts.CatalogOverride)
	if err != nil {
		return nil, err
	}

	runCmd := newRunCommand(container)

	root := &cobra.Command{
		Use:   "vox [command chain]",
		Short: "VOX - voice assistant command pipeline",
		Long:  "VOX turns LLM-generated command chains into validated, sandboxed local executions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			runCmd.SetArgs(args)
			return runCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd)
	root.AddCommand(newCatalogCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newDoctorCommand(container))
	return root, nil
}
