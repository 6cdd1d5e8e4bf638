package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/clean-crosshair/internal/render"
	"github.com/ironsheep/clean-crosshair/internal/server"
	"github.com/ironsheep/clean-crosshair/internal/session"
)

type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	sess, err := g.open()
	if err != nil {
		return err
	}
	defer sess.Close()

	g.logger.Debug("starting server", "version", Version, "built", BuildTime, "commit", GitCommit, "dir", sess.Dir())
	return server.New(sess, Version, g.logger).Run()
}

type RenderCmd struct {
	Preset     string  `help:"Preset to render (default: the last loaded preset)"`
	Scale      float64 `help:"Screen pixels per cell (default: the CrosshairScale setting)"`
	Mode       string  `help:"What to render" enum:"snapshot,canvas,compose" default:"snapshot"`
	Cell       int     `help:"Pixels per cell in canvas mode" default:"8"`
	Background string  `help:"Background image for compose mode" type:"existingfile"`
	Out        string  `help:"Output PNG path" required:"" type:"path"`
}

func (c *RenderCmd) Validate() error {
	if c.Mode == "compose" && c.Background == "" {
		return errors.New("--background is required in compose mode")
	}
	if c.Scale < 0 {
		return fmt.Errorf("invalid scale: %v", c.Scale)
	}
	if c.Cell < 1 {
		return fmt.Errorf("invalid cell size: %d", c.Cell)
	}
	return nil
}

func (c *RenderCmd) Run(g *Globals) error {
	sess, err := g.open()
	if err != nil {
		return err
	}
	if c.Preset != "" {
		if err := sess.LoadPreset(c.Preset); err != nil {
			return err
		}
	}

	scale := c.Scale
	if scale == 0 {
		scale = sess.Settings().CrosshairScale
	}

	size := sess.Grid().Size()
	if c.Mode == "canvas" {
		err = render.CheckCell(size, c.Cell)
	} else {
		err = render.CheckScale(size, scale)
	}
	if err != nil {
		return err
	}

	var img image.Image
	switch c.Mode {
	case "canvas":
		img = render.Canvas(sess.Grid(), c.Cell, nil)
	case "compose":
		bg, err := render.LoadImage(c.Background)
		if err != nil {
			return err
		}
		img = render.Compose(bg, sess.Grid(), scale)
	default:
		img = render.Snapshot(sess.Grid(), scale)
	}

	if err := render.SavePNG(c.Out, img); err != nil {
		return err
	}
	b := img.Bounds()
	g.logger.Info("rendered", "preset", sess.Current(), "mode", c.Mode, "out", c.Out, "width", b.Dx(), "height", b.Dy())
	return nil
}

type OverlayCmd struct {
	Device string  `help:"Framebuffer device (default /dev/fb0)"`
	Preset string  `help:"Preset to show (default: the last loaded preset)"`
	Scale  float64 `help:"Screen pixels per cell (default: the CrosshairScale setting)"`
}

func (c *OverlayCmd) Run(g *Globals) error {
	sess, err := g.open()
	if err != nil {
		return err
	}
	defer sess.Close()

	if c.Preset != "" {
		if err := sess.LoadPreset(c.Preset); err != nil {
			return err
		}
	}
	scale := c.Scale
	if scale == 0 {
		scale = sess.Settings().CrosshairScale
	}

	ov, err := render.OpenOverlay(c.Device, g.logger)
	if err != nil {
		return err
	}
	defer ov.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runOverlay(ctx, sess, ov, scale, g.logger)
}

// runOverlay shows the current preset and redraws it whenever its file
// changes on disk, until ctx is done. Change notifications are handed to this
// goroutine so the grid has a single writer.
func runOverlay(ctx context.Context, sess *session.Session, ov *render.Overlay, scale float64, logger *slog.Logger) error {
	changed := make(chan string, 8)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- sess.Store().Watch(ctx, func(name string) {
			select {
			case changed <- name:
			case <-ctx.Done():
			}
		})
	}()

	ov.Show(sess.Grid(), scale)
	for {
		select {
		case <-ctx.Done():
			return <-watchErr
		case err := <-watchErr:
			return err
		case name := <-changed:
			ok, err := sess.Reload(name)
			if err != nil {
				logger.Warn("failed to reload preset", "name", name, "error", err)
				continue
			}
			if ok {
				ov.Show(sess.Grid(), scale)
			}
		}
	}
}

type PresetsCmd struct {
	List   PresetsListCmd   `cmd:"" default:"1" help:"List saved presets"`
	Delete PresetsDeleteCmd `cmd:"" help:"Delete a preset"`
}

type PresetsListCmd struct{}

func (c *PresetsListCmd) Run(g *Globals) error {
	sess, err := g.open()
	if err != nil {
		return err
	}
	names, err := sess.Presets()
	if err != nil {
		return err
	}
	for _, name := range names {
		marker := " "
		if name == sess.Current() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return nil
}

type PresetsDeleteCmd struct {
	Name string `arg:"" help:"Preset name"`
}

func (c *PresetsDeleteCmd) Run(g *Globals) error {
	sess, err := g.open()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.DeletePreset(c.Name); err != nil {
		return err
	}
	g.logger.Info("preset deleted", "name", c.Name, "current", sess.Current())
	return nil
}
