package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/engine"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/observability/log"
	"github.com/zeusync/skyloop/internal/injector"
	"github.com/zeusync/skyloop/internal/server"
	"github.com/zeusync/skyloop/internal/terminal"
)

func main() {
	configPath := flag.String("config", "configs/skyloop.yaml", "path to the YAML config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "skyloop:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	logger := app.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var renderers engine.Renderers
	active := &atomic.Bool{}
	active.Store(true)

	if cfg.Spectator.Enabled {
		if _, err := app.Engine.Subscribe(events.All, app.Spectator.OnEvent); err != nil {
			return fmt.Errorf("subscribe spectator: %w", err)
		}
		if err := app.HTTP.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			if err := app.HTTP.Stop(stopCtx); err != nil {
				logger.Warn("http server stop", log.Error(err))
			}
		}()
		renderers = append(renderers, app.Spectator)
	}

	if cfg.Terminal.Enabled {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		defer screen.Fini()
		screen.EnableMouse()

		view := terminal.New(screen)
		renderers = append(renderers, view)
		go pollInput(screen, view, app.Engine, active, cancel)
	}

	if err := app.Engine.Place(); err != nil {
		return err
	}
	logger.Info("skyloop started",
		log.String("session", app.Engine.Session().String()),
		log.Int("step_rate", cfg.Engine.StepRate),
		log.Bool("spectator", cfg.Spectator.Enabled),
		log.Bool("terminal", cfg.Terminal.Enabled),
	)
	return loop(ctx, app.Engine, renderers, cfg.Engine.StepDuration(), active)
}

// loop runs Wait -> Step -> Draw -> Go once per tick until ctx is done.
func loop(ctx context.Context, e *engine.Engine, r engine.Renderer, step time.Duration, active *atomic.Bool) error {
	if err := e.Go(); err != nil {
		return err
	}
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := e.Wait(); err != nil {
			return err
		}
		if err := e.Step(active.Load()); err != nil {
			return err
		}
		e.Draw(r)
		if err := e.Go(); err != nil {
			return err
		}
	}
}

func pollInput(screen tcell.Screen, view *terminal.View, clicker server.Clicker, active *atomic.Bool, quit context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				quit()
				return
			case ev.Rune() == 'p':
				active.Store(!active.Load())
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			if p, ok := view.ClickPoint(ev.Position()); ok {
				clicker.Click(p)
			}
		}
	}
}
