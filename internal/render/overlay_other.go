//go:build !linux || !cgo

package render

import "log/slog"

// DefaultDevice is the framebuffer used when none is given.
const DefaultDevice = "/dev/fb0"

// OpenOverlay always fails with ErrOverlayUnsupported.
func OpenOverlay(device string, logger *slog.Logger) (*Overlay, error) {
	return nil, ErrOverlayUnsupported
}
