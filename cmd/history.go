package cmd

import (
	"fmt"

	reportadapter "github.com/camiloAVN/WebSockets-Tester/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recently used endpoints, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			endpoints, err := app.history.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list endpoint history: %w", err)
			}

			output, err := app.renderHistory(endpoints, reportadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}
}
