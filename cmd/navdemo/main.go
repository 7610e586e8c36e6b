package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"navkit/internal/config"
	"navkit/internal/demo"
	"navkit/internal/factory"
	"navkit/internal/loader"
	"navkit/internal/logging"
	"navkit/internal/nav"
	"navkit/internal/pool"
	"navkit/internal/pty"
	"navkit/internal/resolve"
	"navkit/internal/telemetry"
	"navkit/internal/transition"
	"navkit/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.Setup(cfg.Log.Path, cfg.Log.Debug)

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		tel.Shutdown(sctx)
	}()

	templates := loader.NewRegistry()
	models := resolve.NewRegistry()
	p := pool.New(templates, log)
	if err := demo.RegisterAll(p, templates, models, pty.Creack{}, cfg.Pool.MaxIdle); err != nil {
		return err
	}
	if cfg.Pool.Warmup > 0 {
		for _, kind := range []view.Kind{demo.KindMenu, demo.KindSettings, demo.KindPopup} {
			if err := p.Warmup(ctx, kind, cfg.Pool.Warmup); err != nil {
				return fmt.Errorf("warmup %s: %w", kind, err)
			}
		}
	}
	defer p.Clear()

	var player transition.Player = transition.Noop{}
	stackCfg := nav.StackConfig{MaxDepth: cfg.Stack.MaxDepth}
	if !cfg.Transition.Disabled {
		player = transition.Timed{}
		stackCfg.Enter = transition.Spec{Name: "fade-in", Duration: cfg.Transition.Duration}
		stackCfg.Exit = transition.Spec{Name: "fade-out", Duration: cfg.Transition.Duration}
	}

	fct := factory.New(p, log, factory.WithResolver(models))
	stack := nav.NewStack(fct, player, stackCfg, log)
	machine := nav.NewMachine(log)
	navigator := nav.New(stack, machine, nav.WithTracer(tel.Tracer()))
	if err := navigator.RegisterMode(demo.NewMenuMode(navigator)); err != nil {
		return err
	}
	if err := navigator.RegisterMode(demo.NewSessionMode(navigator)); err != nil {
		return err
	}

	log.Info("navkit demo starting",
		"max_depth", cfg.Stack.MaxDepth,
		"pool_max_idle", cfg.Pool.MaxIdle,
		"tracing", tel.Enabled())

	prog := tea.NewProgram(demo.NewApp(navigator, log), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return err
	}

	stats := p.Stats()
	log.Info("navkit demo exiting",
		"created", stats.Created.Load(),
		"evicted", stats.Evicted.Load(),
		"destroyed", stats.Destroyed.Load(),
		"defects", stats.Defects.Load())
	return nil
}
