package commands

import (
	"fmt"

	"git.home.luguber.info/inful/stylepub/internal/config"
)

// InitCmd writes a starter configuration file.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Printf("Configuration written to %s\n", root.Config)
	return nil
}
