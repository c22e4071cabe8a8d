// Package main provides the CLI entry point for xcandb.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/xcandb/pkg/adapters/dbusnotify"
	"github.com/user/xcandb/pkg/adapters/dmenuprompt"
	"github.com/user/xcandb/pkg/adapters/imagecodec"
	"github.com/user/xcandb/pkg/adapters/logger"
	"github.com/user/xcandb/pkg/adapters/lognotify"
	"github.com/user/xcandb/pkg/adapters/osfilesystem"
	"github.com/user/xcandb/pkg/adapters/sysvshm"
	"github.com/user/xcandb/pkg/adapters/xgbdisplay"
	"github.com/user/xcandb/pkg/canvas"
	"github.com/user/xcandb/pkg/config"
	"github.com/user/xcandb/pkg/ports"
	"github.com/user/xcandb/pkg/viewer"
)

const appName = "xcandb"

// CLI defines the command-line interface.
type CLI struct {
	// Required arguments
	Load string `short:"l" required:"" type:"existingfile" help:"Image file to open."`

	// Window options
	Fullscreen bool   `short:"f" help:"Start in fullscreen mode."`
	Display    string `help:"X display to connect to (default: $DISPLAY)."`

	// Configuration
	Config       string `type:"path" help:"Configuration file (default: $XDG_CONFIG_HOME/xcandb/config.yaml)."`
	NoShm        bool   `help:"Never use shared memory surfaces."`
	BlurStrength *int   `help:"Number of blur passes for right-button drags."`
	NoNotify     bool   `help:"Log save results instead of sending desktop notifications."`

	// Logging options
	LogLevel string `help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"q" help:"Suppress all log output."`

	Version kong.VersionFlag `short:"v" help:"Show version information."`
}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description(l10n.T("View, crop and blur images in an X11 window")),
		kong.UsageOnError(),
		kong.Vars{"version": l10n.F("xcandb version %s", version)},
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run opens the window and runs the viewer until it is closed.
func (cmd *CLI) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	// Create adapters
	display, err := xgbdisplay.Open(cfg.ToWindowConfig(), log)
	if err != nil {
		return err
	}
	defer display.Close()

	fsys := osfilesystem.New()
	env := canvas.Env{
		Display:      display,
		SharedMemory: sysvshm.New(),
		Codec:        imagecodec.New(),
		FileSystem:   fsys,
		Logger:       log,
	}

	engine, err := canvas.Load(cmd.Load, image.Pt(cfg.Width, cfg.Height), env, cfg.ToCanvasOptions())
	if err != nil {
		return err
	}
	defer engine.Close()
	engine.MoveToCenter()

	notifier := openNotifier(cfg, log)
	defer notifier.Close()

	v := viewer.New(engine, display, display, fsys, dmenuprompt.New(cfg.PromptCommand), notifier, log, appName)
	log.Info("Opened %s", cmd.Load)
	return v.Run(ctx)
}

// buildConfig reads the configuration file and applies flag overrides.
func (cmd *CLI) buildConfig() (config.Config, error) {
	var cfg config.Config
	var err error
	if cmd.Config != "" {
		cfg, err = config.LoadFromFile(cmd.Config)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s not found", cmd.Config)
		}
		return cfg, err
	}

	if cmd.Fullscreen {
		cfg.Fullscreen = true
	}
	if cmd.Display != "" {
		cfg.Display = cmd.Display
	}
	if cmd.NoShm {
		cfg.NoShm = true
	}
	if cmd.BlurStrength != nil {
		cfg.BlurStrength = *cmd.BlurStrength
	}
	if cmd.NoNotify {
		cfg.Notify = false
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
	return cfg, nil
}

// openNotifier returns the desktop notifier, or a logging one when
// notifications are disabled or the session bus is unavailable.
func openNotifier(cfg config.Config, log ports.Logger) ports.Notifier {
	if !cfg.Notify {
		return lognotify.New(log)
	}
	n, err := dbusnotify.New(appName, cfg.NotifyTimeoutMs)
	if err != nil {
		log.Warn("Desktop notifications unavailable: %v", err)
		return lognotify.New(log)
	}
	return n
}
