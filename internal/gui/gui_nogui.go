//go:build nogui
// +build nogui

package gui

import (
	"context"
	"fmt"

	"speedread/internal/config"
	"speedread/internal/log"
	"speedread/internal/reader"
)

// ErrUnavailable is returned by Run in builds without the GUI
var ErrUnavailable = fmt.Errorf("GUI not available in this build")

// Run reports that the GUI is disabled in this build
func Run(ctx context.Context, cfg *config.Config, r *reader.Reader, logger *log.Logger) error {
	return ErrUnavailable
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
