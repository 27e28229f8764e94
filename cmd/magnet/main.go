// Command magnet builds and serves a project with the sass plugin registered.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mthadley/magnet-plugin-sass/cmd/magnet/commands"
	derrors "github.com/mthadley/magnet-plugin-sass/internal/foundation/errors"
	"github.com/mthadley/magnet-plugin-sass/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("magnet"),
		kong.Description("Compile Sass stylesheets and serve them under /css."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	global := &commands.Global{Logger: slog.Default()}
	if err := kctx.Run(global, cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
