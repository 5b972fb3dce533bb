package injector

import (
	"errors"
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/engine"
	"github.com/zeusync/skyloop/internal/core/observability/log"
	"github.com/zeusync/skyloop/internal/core/player"
	"github.com/zeusync/skyloop/internal/server"
)

var ErrNoStart = errors.New("content has no start")

// App is the assembled process: the engine and its optional spectator server.
type App struct {
	Config    config.Config
	Logger    log.Log
	Catalog   *content.Catalog
	Player    *player.Player
	Engine    *engine.Engine
	Spectator *server.Spectator
	HTTP      *server.HTTPServer
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideCatalog,
	ProvidePlayer,
	ProvideEngine,
	wire.Bind(new(server.Clicker), new(*engine.Engine)),
	ProvideSpectator,
	ProvideHTTPServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger, err := log.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideCatalog(cfg config.Config) (*content.Catalog, error) {
	return content.LoadFile(cfg.ContentPath)
}

func ProvidePlayer(catalog *content.Catalog) (*player.Player, error) {
	start := catalog.Start()
	if start.Government == nil || start.System == nil {
		return nil, ErrNoStart
	}
	return player.FromStart(start), nil
}

// ProvideEngine starts the engine worker; the cleanup stops it.
func ProvideEngine(cfg config.Config, logger log.Log, p *player.Player) (*engine.Engine, func()) {
	e := engine.New(cfg.Engine, logger, p)
	return e, func() {
		if err := e.Close(); err != nil {
			logger.Warn("engine closed with error", log.Error(err))
		}
	}
}

func ProvideSpectator(cfg config.Config, clicker server.Clicker, logger log.Log) (*server.Spectator, func()) {
	s := server.NewSpectator(cfg.Spectator, clicker, logger)
	return s, s.Close
}

func ProvideHTTPServer(cfg config.Config, spectator *server.Spectator, logger log.Log) *server.HTTPServer {
	return server.NewHTTPServer(cfg.Spectator, spectator, logger)
}
