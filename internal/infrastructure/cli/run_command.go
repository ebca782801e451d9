package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

func newRunCommand(container *app.Container) *cobra.Command {
	var (
		timeout   int
		rawShell  bool
		dryRun    bool
		asJSON    bool
		chainWait time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [command chain]",
		Short: "Parse, validate, and execute a command chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if chainWait > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, chainWait)
				defer cancel()
			}

			req := domain.ChainRequest{
				Context:         ctx,
				RawText:         strings.Join(args, " "),
				TimeoutOverride: timeout,
				AllowRawShell:   rawShell,
			}

			if dryRun {
				verdicts, err := container.ChainService.Validate(req)
				if err != nil {
					return err
				}
				renderVerdicts(cmd.OutOrStdout(), verdicts)
				for _, v := range verdicts {
					if !v.Accepted {
						return fmt.Errorf("chain would be rejected")
					}
				}
				return nil
			}

			result, err := container.ChainService.Run(req)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(chainResultView(result))
			}
			renderChainResult(cmd.OutOrStdout(), result)
			if !result.OverallSuccess {
				return fmt.Errorf("chain did not complete successfully")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&timeout, "timeout", 0, "Per-command timeout in seconds (0 uses config)")
	cmd.Flags().BoolVar(&rawShell, "raw-shell", false, "Permit raw_shell catalog entries to carry shell metacharacters")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without executing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the chain result as JSON")
	cmd.Flags().DurationVar(&chainWait, "chain-timeout", 0, "Overall deadline for the whole chain")
	return cmd
}
