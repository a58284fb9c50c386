package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/stylepub/internal/config"
	"git.home.luguber.info/inful/stylepub/internal/history"
)

// HistoryCmd lists recorded publish runs from the journal.
type HistoryCmd struct {
	Limit int    `short:"n" default:"20" help:"Maximum number of entries to show"`
	RunID string `name:"run-id" help:"Show all steps of a single run"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("history is disabled in the configuration")
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var entries []history.Entry
	if h.RunID != "" {
		entries, err = store.ByRunID(ctx, h.RunID)
	} else {
		entries, err = store.Recent(ctx, h.Limit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No publish runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tRUN\tSTEP\tRESULT\tMESSAGE")
	for _, e := range entries {
		runID := e.RunID
		if len(runID) > 8 {
			runID = runID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			runID, e.Step, e.Result, e.Message)
	}
	return w.Flush()
}
