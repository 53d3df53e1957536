package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli struct {
		Run     RunCmd     `kong:"cmd,help='Evaluates the handlers of the hello application once.'"`
		Show    ShowCmd    `kong:"cmd,help='Shows information about the hello application unit.'"`
		Reset   ResetCmd   `kong:"cmd,help='Removes persisted flags so that their handlers run again.'"`
		Version VersionCmd `kong:"cmd,help='Display leafbridge-hello version information.'"`
	}

	parser := kong.Must(&cli,
		kong.Description("Installs and configures the hello Django application."),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError())

	app, parseErr := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(parseErr)

	appErr := app.Run()
	app.FatalIfErrorf(appErr)
}
