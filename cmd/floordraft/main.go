// FloorDraft: 2D floor plan editor
//
// A cross-platform desktop application for drawing walls, partitions,
// openings and devices, with PDF, DXF and XLSX export.
//
// Build:
//   go build -o floordraft ./cmd/floordraft
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o floordraft.exe ./cmd/floordraft
//   GOOS=darwin  GOARCH=amd64 go build -o floordraft-darwin ./cmd/floordraft
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/model"
	"github.com/piwi3910/FloorDraft/internal/project"
	"github.com/piwi3910/FloorDraft/internal/ui"
)

func main() {
	configPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(configPath)

	applog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: applog.ParseLevel(cfg.LogLevel),
	})))
	if err != nil {
		applog.Logger().Warn("using default config", slog.String("path", configPath), slog.Any("error", err))
		cfg = model.DefaultAppConfig()
	}

	application := app.NewWithID("com.piwi3910.floordraft")
	application.Settings().SetTheme(ui.ThemeFromConfig(cfg.Theme))
	window := application.NewWindow("FloorDraft")

	appUI := ui.NewApp(window, cfg, configPath)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
