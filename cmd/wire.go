package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/adapters/netinfo/host"
	reportadapter "github.com/camiloAVN/WebSockets-Tester/internal/adapters/render/report"
	tomlrepo "github.com/camiloAVN/WebSockets-Tester/internal/adapters/repo/toml"
	wsadapter "github.com/camiloAVN/WebSockets-Tester/internal/adapters/transport/websocket"
	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/config"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/logging"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
)

type app struct {
	cfg       config.Config
	logger    hclog.Logger
	logCloser io.Closer
	history   *tomlrepo.Repository
	dialer    ports.Dialer
	facility  ports.NetworkFacility
	clock     ports.Clock

	renderNetwork    func(domain.NetworkAttachment) (string, error)
	renderTranscript func([]domain.TranscriptEntry) (string, error)
	renderHistory    func([]domain.Endpoint, reportadapter.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Log, io.Discard)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	history, err := tomlrepo.NewRepository(v, ports.SystemClock{})
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("wire endpoint history: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		history:   history,
		dialer:    wsadapter.NewDialer(wsadapter.Options{}),
		facility: host.NewFacility(host.Options{
			PollInterval: cfg.Network.PollInterval,
			Logger:       logger,
		}),
		clock:            ports.SystemClock{},
		renderNetwork:    reportadapter.RenderNetwork,
		renderTranscript: reportadapter.RenderTranscript,
		renderHistory:    reportadapter.RenderHistory,
		now:              time.Now,
	}, nil
}

// newSession builds one client from the shared adapters. Callers own the
// result and must Close it.
func (a *app) newSession(announce bool) *application.Session {
	conn := application.NewConnectionManager(a.dialer, application.ConnectionOptions{
		OutboxSize: a.cfg.Connection.OutboxSize,
		Logger:     a.logger,
	})

	return application.NewSession(
		conn,
		application.NewTranscriptStore(a.clock),
		application.NewNetworkMonitor(a.facility, a.logger),
		a.history,
		application.SessionOptions{AnnounceNetwork: announce, Logger: a.logger},
	)
}

func (a *app) Close() error {
	return a.logCloser.Close()
}
