package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/stylepub/internal/config"
	"git.home.luguber.info/inful/stylepub/internal/server"
	prom "github.com/prometheus/client_golang/prometheus"
)

// PreviewCmd serves the styleguide locally without publishing anything.
type PreviewCmd struct {
	Port    int  `name:"port" default:"1316" help:"Preview server port"`
	Metrics bool `help:"Expose Prometheus metrics on /metrics"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	// Preview works without a configuration file; defaults cover the
	// conventional docs layout.
	cfg, err := config.Load(root.Config)
	if err != nil {
		if _, statErr := os.Stat(root.Config); os.IsNotExist(statErr) {
			cfg = config.Default()
		} else {
			return err
		}
	}

	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := server.Options{
		DocsDir:    cfg.Site.DocsDir,
		ReadmePath: filepath.Join(".", cfg.Site.Readme),
		Port:       p.Port,
		Metrics:    p.Metrics,
	}
	if p.Metrics {
		opts.Registry = prom.NewRegistry()
	}

	return server.New(opts).Start(sigctx)
}
