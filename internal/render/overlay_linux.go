//go:build linux && cgo

package render

import (
	"fmt"
	"log/slog"

	fb "github.com/gonutz/framebuffer"
)

// DefaultDevice is the framebuffer used when none is given.
const DefaultDevice = "/dev/fb0"

// OpenOverlay opens a Linux framebuffer device for the overlay.
func OpenOverlay(device string, logger *slog.Logger) (*Overlay, error) {
	if device == "" {
		device = DefaultDevice
	}
	dev, err := fb.Open(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open framebuffer %s: %w", device, err)
	}

	o := NewOverlay(dev, func() { dev.Close() }, logger)
	b := dev.Bounds()
	o.logger.Info("framebuffer open", "device", device, "width", b.Dx(), "height", b.Dy())
	return o, nil
}
