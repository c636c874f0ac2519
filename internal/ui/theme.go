// Package ui provides the FloorDraft desktop application.
//
// This file defines a compact Fyne theme that leaves most of the window to
// the plan canvas.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// FloorDraftTheme wraps the default Fyne theme with compact sizing overrides
// and a fixed light or dark variant.
type FloorDraftTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewFloorDraftTheme creates a theme following the system variant.
func NewFloorDraftTheme() *FloorDraftTheme {
	return &FloorDraftTheme{base: theme.DefaultTheme(), system: true}
}

// ThemeFromConfig maps the "light", "dark" or "system" preference to a theme.
func ThemeFromConfig(name string) *FloorDraftTheme {
	t := NewFloorDraftTheme()
	switch name {
	case "light":
		t.SetVariant(theme.VariantLight)
	case "dark":
		t.SetVariant(theme.VariantDark)
	}
	return t
}

// SetVariant pins the theme to a light or dark variant.
func (t *FloorDraftTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.system = false
}

func (t *FloorDraftTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *FloorDraftTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *FloorDraftTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *FloorDraftTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 18
	default:
		return t.base.Size(name)
	}
}

// applyTheme installs the theme named in the config on the running app.
func applyTheme(name string) {
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(ThemeFromConfig(name))
	}
}
