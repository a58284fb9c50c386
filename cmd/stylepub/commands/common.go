package commands

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/stylepub/internal/config"
	"git.home.luguber.info/inful/stylepub/internal/ghpages"
	"git.home.luguber.info/inful/stylepub/internal/history"
	"git.home.luguber.info/inful/stylepub/internal/publisher"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"stylepub.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Publish PublishCmd `cmd:"" help:"Publish the styleguide documentation and README to the hosting branch"`
	Verify  VerifyCmd  `cmd:"" help:"Check styleguide references without publishing"`
	Preview PreviewCmd `cmd:"" help:"Serve the styleguide locally"`
	Daemon  DaemonCmd  `cmd:"" help:"Republish continuously on file changes"`
	History HistoryCmd `cmd:"" help:"Show recorded publish runs"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// newSequencer wires a publishing sequencer from configuration: the git client,
// the docs and demo step requests, and the history journal when configured.
// The returned store may be nil; when non-nil the caller owns closing it.
func newSequencer(cfg *config.Config) (*publisher.Sequencer, history.Store, error) {
	remoteURL := cfg.Publish.RemoteURL
	if remoteURL == "" {
		resolved, err := ghpages.ResolveRemoteURL(".", cfg.Publish.Remote)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve remote %q: %w", cfg.Publish.Remote, err)
		}
		remoteURL = resolved
	}

	auth, err := ghpages.NewAuth(cfg.Publish.Auth)
	if err != nil {
		return nil, nil, err
	}

	client, err := ghpages.NewClient(ghpages.Options{
		RemoteURL:   remoteURL,
		Branch:      cfg.Publish.Branch,
		AuthorName:  cfg.Publish.Author.Name,
		AuthorEmail: cfg.Publish.Author.Email,
		Auth:        auth,
	})
	if err != nil {
		return nil, nil, err
	}

	docs := publisher.Request{
		SourceDir: cfg.Site.DocsDir,
		Patterns:  cfg.DocsPatterns(),
		Message:   cfg.Publish.DocsMessage,
	}
	demo := publisher.Request{
		SourceDir: ".",
		Patterns:  cfg.DemoPatterns(),
		Message:   cfg.Publish.DemoMessage,
		Append:    true,
	}

	seq := publisher.NewSequencer(client, docs, demo)

	var store history.Store
	if cfg.History.Path != "" {
		sqlStore, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			// The journal is best-effort; publishing proceeds without it.
			slog.Warn("Failed to open history store", "path", cfg.History.Path, "error", err)
		} else {
			store = sqlStore
			seq = seq.WithJournal(sqlStore)
		}
	}

	return seq, store, nil
}
