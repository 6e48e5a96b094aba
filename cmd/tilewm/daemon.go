package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/core"
	"github.com/1broseidon/tilewm/internal/daemon"
	"github.com/1broseidon/tilewm/internal/eventloop"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/plugin"
	"github.com/1broseidon/tilewm/internal/plugin/builtin"
	"github.com/1broseidon/tilewm/internal/runtimepath"
	"github.com/1broseidon/tilewm/internal/x11"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
	display := fs.String("display", "", "X display to manage (overrides config)")
	level := fs.String("log-level", "", "Log level (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm run [--config PATH] [--display :N] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the window manager in the foreground.")
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if *display != "" {
		cfg.Display = *display
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	logger := logging.Setup(cfg.LogLevel)
	if err := serve(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("daemon exited", "error", err)
		return 1
	}
	return 0
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		return fmt.Errorf("connect to display: %w", err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.New(logging.WithComponent(logger, "eventloop"))
	wm := core.New(core.Options{
		Config:    cfg,
		Seat:      x11.NewSeat(conn),
		Scheduler: loop,
		Binder:    x11.NewKeyBinder(conn),
		Buttons:   x11.NewButtonBinder(conn),
		Loader:    plugin.GoLoader{},
		Builtins:  builtin.Factories(),
		Logger:    logger,
		Quit:      stop,
	})
	defer wm.Close()

	if err := addOutputs(conn, wm, loop, logger); err != nil {
		return err
	}

	err = conn.WatchClients(x11.ClientHandlers{
		Mapped: func(c x11.Client) { adoptClient(wm, c, logger) },
		Gone: func(id uint32) {
			if v := wm.FindView(id); v != nil {
				wm.DestroyView(v)
			}
		},
	}, logging.WithComponent(logger, "x11-clients"))
	if err != nil {
		return err
	}

	socket, err := runtimepath.SocketPath(cfg.Display)
	if err != nil {
		return fmt.Errorf("resolve IPC socket: %w", err)
	}
	server, err := ipc.NewServer(ipc.ServerOptions{SocketPath: socket, Core: wm, Loop: loop, Logger: logger})
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer server.Stop()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{Logger: logger}, wm, loop, conn.ListSurfaces)
	go reconciler.Run(ctx)

	for _, command := range cfg.Autostart {
		if err := wm.Run(command); err != nil {
			logger.Warn("autostart command failed", "error", err)
		}
	}
	if cfg.Background != "" {
		if err := wm.Run(cfg.Background); err != nil {
			logger.Warn("background client failed", "error", err)
		}
	}

	logger.Info("tilewm started", "outputs", len(wm.Outputs()), "socket", server.SocketPath())
	defer conn.Quit()
	return loop.Run(ctx, conn.MainPing())
}

func addOutputs(conn *x11.Connection, wm *core.Context, loop *eventloop.Loop, logger *slog.Logger) error {
	monitors, err := conn.GetMonitors()
	if err != nil {
		return fmt.Errorf("query monitors: %w", err)
	}
	if len(monitors) == 0 {
		return core.ErrNoOutput
	}
	for _, m := range monitors {
		handle := x11.NewOutput(conn, m, loop, logger)
		o := wm.AddOutput(handle)
		handle.OnFrame(o.Repaint)

		struts := conn.DockStruts(m)
		if struts.IsZero() {
			continue
		}
		reserve := map[platform.PanelSide][2]int{
			platform.PanelTop:    {0, struts.Top},
			platform.PanelBottom: {0, struts.Bottom},
			platform.PanelLeft:   {struts.Left, 0},
			platform.PanelRight:  {struts.Right, 0},
		}
		for side, size := range reserve {
			if size[0] == 0 && size[1] == 0 {
				continue
			}
			if err := wm.Shell().ReserveWorkarea(o.ID(), side, size[0], size[1]); err != nil {
				logger.Warn("failed to reserve dock area", "output", o.ID(), "error", err)
			}
		}
	}
	return nil
}

// adoptClient registers a mapped window. Docks and desktop windows go to the
// shell layers of the output under their center.
func adoptClient(wm *core.Context, c x11.Client, logger *slog.Logger) {
	v, err := wm.AddView(c.Surface, c.Geometry)
	if err != nil {
		logger.Warn("failed to add view", "window", c.Surface.ID(), "error", err)
		return
	}

	o := outputAt(wm, c.Geometry.Center())
	if o == nil {
		return
	}
	switch c.Kind {
	case x11.KindDock:
		err = wm.Shell().AddPanel(o.ID(), v.ID())
	case x11.KindDesktop:
		g := o.FullGeometry()
		err = wm.Shell().AddBackground(o.ID(), v.ID(), c.Geometry.X-g.X, c.Geometry.Y-g.Y)
	}
	if err != nil {
		logger.Warn("failed to place shell surface", "window", v.ID(), "error", err)
	}
}

func outputAt(wm *core.Context, p platform.Point) *output.Output {
	for _, o := range wm.Outputs() {
		if o.FullGeometry().Contains(p) {
			return o
		}
	}
	return wm.ActiveOutput()
}
