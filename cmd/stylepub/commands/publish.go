package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/stylepub/internal/config"
	"git.home.luguber.info/inful/stylepub/internal/verify"
)

// PublishCmd publishes the documentation step and, on success, the README step.
type PublishCmd struct {
	Verify    bool   `help:"Check styleguide references before publishing"`
	Branch    string `help:"Override the hosting branch"`
	RemoteURL string `name:"remote-url" help:"Override the publish remote URL"`
}

func (p *PublishCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if p.Branch != "" {
		cfg.Publish.Branch = p.Branch
	}
	if p.RemoteURL != "" {
		cfg.Publish.RemoteURL = p.RemoteURL
	}

	if p.Verify {
		report, err := verify.Run(cfg.Site.DocsDir, cfg.Site.Entry, ".", cfg.Site.Readme)
		if err != nil {
			return err
		}
		if !report.OK() {
			for _, problem := range report.Problems {
				fmt.Fprintln(os.Stderr, problem)
			}
			return fmt.Errorf("verification found %d broken references", len(report.Problems))
		}
	}

	seq, store, err := newSequencer(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	return seq.Run(context.Background())
}
