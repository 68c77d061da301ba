package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/spf13/cobra"
)

const closeGrace = 2 * time.Second

type sendOptions struct {
	address  string
	wait     time.Duration
	announce bool
}

func newSendCmd(app *app) *cobra.Command {
	opts := sendOptions{}

	cmd := &cobra.Command{
		Use:   "send MESSAGE...",
		Short: "Connect, send messages, collect replies and print the transcript",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, app, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.address, "address", "a", app.cfg.Server.Address, "server address (ws://host:port or wss://host:port)")
	cmd.Flags().DurationVar(&opts.wait, "wait", time.Second, "how long to collect replies after the last message")
	cmd.Flags().BoolVar(&opts.announce, "announce", false, "tell the server which network attachment is in use after connecting")

	return cmd
}

func runSend(cmd *cobra.Command, app *app, opts sendOptions, messages []string) error {
	ctx := cmd.Context()
	session := app.newSession(opts.announce)
	defer session.Close()

	watcher := newConnectionWatcher()
	if _, err := session.SubscribeEvents(watcher.handle); err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		return err
	}
	if err := session.Connect(ctx, opts.address); err != nil {
		return err
	}

	if err := runConnectProgress(ctx, cmd.ErrOrStderr(), opts.address, watcher.progress); err != nil {
		return err
	}

	for _, message := range messages {
		if err := session.Send(message); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}

	timer := time.NewTimer(opts.wait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-watcher.closed:
	case <-ctx.Done():
	}

	if err := session.Disconnect(); err != nil {
		return err
	}
	watcher.waitClosed(closeGrace)

	output, err := app.renderTranscript(session.Entries())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

// connectionWatcher relays events to the progress view until the handshake
// settles, then keeps only the closed signal for the rest of the run.
type connectionWatcher struct {
	progress chan application.Event
	closed   chan struct{}

	mu        sync.Mutex
	settled   bool
	closeOnce sync.Once
}

func newConnectionWatcher() *connectionWatcher {
	return &connectionWatcher{
		// a handshake produces at most connecting, an error and one outcome
		progress: make(chan application.Event, 8),
		closed:   make(chan struct{}),
	}
}

func (w *connectionWatcher) handle(ev application.Event) {
	w.mu.Lock()
	if !w.settled {
		w.progress <- ev
		if changed, ok := ev.(application.StatusChanged); ok && changed.To != domain.StatusConnecting {
			w.settled = true
		}
	}
	w.mu.Unlock()

	if changed, ok := ev.(application.StatusChanged); ok && changed.To == domain.StatusDisconnected {
		w.closeOnce.Do(func() { close(w.closed) })
	}
}

func (w *connectionWatcher) waitClosed(grace time.Duration) {
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-w.closed:
	case <-timer.C:
	}
}
