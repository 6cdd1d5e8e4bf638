package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/ironsheep/clean-crosshair/internal/logging"
	"github.com/ironsheep/clean-crosshair/internal/session"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	Home     string `help:"Data directory holding Presets/ and settings.cfg" env:"CROSSHAIR_HOME" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)" env:"CROSSHAIR_LOG_LEVEL" default:"info"`

	logger *slog.Logger `kong:"-"`
}

// open loads the session from the data directory.
func (g *Globals) open() (*session.Session, error) {
	return session.Open(session.Config{Dir: g.Home, Logger: g.logger})
}

type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve crosshair tools over MCP on stdin/stdout"`
	Render  RenderCmd  `cmd:"" help:"Render a preset to a PNG file"`
	Overlay OverlayCmd `cmd:"" help:"Show the crosshair on the Linux framebuffer until interrupted"`
	Presets PresetsCmd `cmd:"" help:"Manage saved presets"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("crosshair"),
		kong.Description("Pixel crosshair editor: MCP tool server, PNG renderer and screen overlay."),
		kong.UsageOnError(),
	)

	// Logging goes to stderr; stdout is the MCP channel.
	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		kctx.FatalIfErrorf(err)
	}
	cli.logger = logging.New(os.Stderr, level)
	slog.SetDefault(cli.logger)

	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("crosshair %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	return nil
}
