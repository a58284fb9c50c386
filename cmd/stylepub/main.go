package main

import (
	"log/slog"

	"git.home.luguber.info/inful/stylepub/cmd/stylepub/commands"
	"git.home.luguber.info/inful/stylepub/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stylepub"),
		kong.Description("Publish a CSS styleguide and its README to a git hosting branch."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	ctx.FatalIfErrorf(err)
}
