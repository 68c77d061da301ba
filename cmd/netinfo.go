package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/spf13/cobra"
)

func newNetinfoCmd(app *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "netinfo",
		Short: "Show the network attachment in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNetinfo(cmd, app, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep printing attachment changes until interrupted")

	return cmd
}

func runNetinfo(cmd *cobra.Command, app *app, watch bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	monitor := application.NewNetworkMonitor(app.facility, app.logger)
	defer monitor.Close()

	if err := printAttachment(cmd, app, monitor.FetchOnce(ctx)); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	changes := make(chan domain.NetworkAttachment, 8)
	unsubscribe := monitor.Subscribe(func(attachment domain.NetworkAttachment) {
		select {
		case changes <- attachment:
		case <-ctx.Done():
		}
	})
	defer unsubscribe()
	monitor.Start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case attachment := <-changes:
			if err := printAttachment(cmd, app, attachment); err != nil {
				return err
			}
		}
	}
}

func printAttachment(cmd *cobra.Command, app *app, attachment domain.NetworkAttachment) error {
	output, err := app.renderNetwork(attachment)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
