package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/camiloAVN/WebSockets-Tester/internal/adapters/tui"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var address string

	rootCmd := &cobra.Command{
		Use:           "wst",
		Short:         "WebSocket tester (wst): talk to a WebSocket server from the terminal",
		Long:          "wst opens one WebSocket connection, shows every sent and received message in a live transcript, and reports which network attachment (ethernet, wifi, cellular) the machine is using.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.Flags().StringVarP(&address, "address", "a", "", "server address to pre-fill (defaults to the most recent endpoint)")
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runInteractive(cmd, app, address)
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSendCmd(app),
		newNetinfoCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}

func runInteractive(cmd *cobra.Command, app *app, address string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := app.newSession(app.cfg.Session.AnnounceNetwork)
	defer session.Close()

	if err := session.Start(ctx); err != nil {
		return err
	}

	return tui.Run(ctx, session, tui.Options{
		Address:     initialAddress(ctx, app, address),
		Suggestions: app.cfg.Server.Suggestions,
	})
}

// initialAddress prefers the flag, then the most recently used endpoint,
// then the configured default.
func initialAddress(ctx context.Context, app *app, flag string) string {
	if flag != "" {
		return flag
	}

	endpoints, err := app.history.List(ctx)
	if err != nil {
		app.logger.Warn("read endpoint history", "error", err)
	}
	if len(endpoints) > 0 {
		return endpoints[0].Address
	}

	return app.cfg.Server.Address
}
