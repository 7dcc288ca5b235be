package agentapp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atlas-it/atlas-agent/internal/adapter/httpserver"
	"github.com/atlas-it/atlas-agent/internal/config"
	"github.com/atlas-it/atlas-agent/internal/impls"
	"github.com/atlas-it/atlas-agent/internal/infra/agents"
	"github.com/atlas-it/atlas-agent/internal/infra/atlas"
	"github.com/atlas-it/atlas-agent/internal/infra/network"
	"github.com/atlas-it/atlas-agent/internal/infra/paths"
	"github.com/atlas-it/atlas-agent/internal/infra/shell"
	"github.com/atlas-it/atlas-agent/internal/infra/storage"
	"github.com/atlas-it/atlas-agent/internal/infra/system"
	"github.com/atlas-it/atlas-agent/internal/usecase/devicecontext"
	"github.com/atlas-it/atlas-agent/internal/usecase/ticket"
)

const tokenFileName = "local-api.token"

// Application wires the device lookups, the helpdesk client and the local API.
type Application struct {
	cfg       *config.Config
	collector *devicecontext.Collector
	tickets   *ticket.Service
	tokens    impls.TokenStore
	logger    *slog.Logger
}

func NewApplication(cfg *config.Config, logger *slog.Logger) *Application {
	runner := shell.NewExec(cfg.Probe.Timeout)

	platform := system.Current(runner, logger.With("component", "system"))
	locator := agents.NewLocator(platform.Tag(), runner, logger.With("component", "agents"))
	collector := devicecontext.NewCollector(platform, locator, logger)

	client := atlas.NewClient(atlas.Options{
		BaseURL:       cfg.APIURL,
		Timeout:       cfg.HTTP.Timeout,
		HealthTimeout: cfg.HTTP.HealthTimeout,
		Version:       config.ClientVersion(),
	}, logger.With("component", "atlas"))

	return &Application{
		cfg:       cfg,
		collector: collector,
		tickets:   ticket.NewService(client, config.ClientVersion(), logger),
		tokens:    storage.NewFileTokenStore(paths.Resolve(cfg.DataDir, tokenFileName, logger)),
		logger:    logger,
	}
}

func (a *Application) Collector() *devicecontext.Collector {
	return a.collector
}

func (a *Application) Tickets() *ticket.Service {
	return a.tickets
}

// Serve runs the local API until ctx is cancelled. ready, when non-nil, is
// called with the bound port and token path once the listener is open.
func (a *Application) Serve(ctx context.Context, ready func(port int, tokenPath string)) error {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("local api token: %w", err)
	}

	l, err := network.Listen(a.cfg.Local.Port, a.logger)
	if err != nil {
		return err
	}
	port, err := network.Port(l)
	if err != nil {
		_ = l.Close()
		return err
	}
	if ready != nil {
		ready(port, a.tokens.Path())
	}

	api := httpserver.NewAPI(a.collector, a.tickets, a.logger.With("component", "httpserver"))
	server := httpserver.NewServer(api, token, a.logger.With("component", "httpserver"))
	return server.Serve(ctx, l)
}
