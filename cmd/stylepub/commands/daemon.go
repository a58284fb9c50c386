package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/stylepub/internal/config"
	"git.home.luguber.info/inful/stylepub/internal/daemon"
	"git.home.luguber.info/inful/stylepub/internal/metrics"
	"git.home.luguber.info/inful/stylepub/internal/server"
	prom "github.com/prometheus/client_golang/prometheus"
)

// DaemonCmd watches the styleguide sources and republishes on change.
type DaemonCmd struct {
	Port int `name:"port" default:"0" help:"Override the preview server port"`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.Daemon == nil {
		cfg.Daemon = &config.DaemonConfig{
			Debounce: config.Duration(2 * time.Second),
			Port:     1316,
		}
	}
	if d.Port > 0 {
		cfg.Daemon.Port = d.Port
	}

	seq, store, err := newSequencer(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var registry *prom.Registry
	if cfg.Daemon.Metrics {
		registry = prom.NewRegistry()
		seq = seq.WithRecorder(metrics.NewPrometheusRecorder(registry))
	}

	srv := server.New(server.Options{
		DocsDir:    cfg.Site.DocsDir,
		ReadmePath: filepath.Join(".", cfg.Site.Readme),
		Port:       cfg.Daemon.Port,
		Metrics:    cfg.Daemon.Metrics,
		Registry:   registry,
	})

	dmn, err := daemon.New(daemon.Options{
		DocsDir:    cfg.Site.DocsDir,
		ReadmePath: cfg.Site.Readme,
		Debounce:   cfg.Daemon.Debounce.Std(),
		Interval:   cfg.Daemon.Interval.Std(),
		Server:     srv,
	}, func(ctx context.Context) error {
		return seq.Run(ctx)
	})
	if err != nil {
		return err
	}

	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runErr := dmn.Start(sigctx)
	if stopErr := dmn.Stop(); runErr == nil {
		runErr = stopErr
	}
	return runErr
}
