package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/stylepub/internal/config"
	"git.home.luguber.info/inful/stylepub/internal/verify"
)

// VerifyCmd checks that the styleguide's internal references resolve.
type VerifyCmd struct{}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	report, err := verify.Run(cfg.Site.DocsDir, cfg.Site.Entry, ".", cfg.Site.Readme)
	if err != nil {
		return err
	}

	for _, problem := range report.Problems {
		fmt.Fprintln(os.Stderr, problem)
	}
	fmt.Printf("Checked %d references, %d broken\n", report.Checked, len(report.Problems))

	if !report.OK() {
		return fmt.Errorf("verification found %d broken references", len(report.Problems))
	}
	return nil
}
