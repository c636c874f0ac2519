// This file provides the mode toolbar, built from tooltip-enabled buttons
// of the fyne-tooltip library.

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// newIconButtonWithTooltip creates an icon-only button with a tooltip that appears on hover.
func newIconButtonWithTooltip(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}

// modeToolbar switches between the drawing tools.
type modeToolbar struct {
	container *fyne.Container
	modes     map[model.Mode]*ttwidget.Button
	undo      *ttwidget.Button
	redo      *ttwidget.Button
}

func newModeToolbar(setMode func(model.Mode), undo, redo, settings func()) *modeToolbar {
	tb := &modeToolbar{modes: map[model.Mode]*ttwidget.Button{}}

	tools := []struct {
		mode    model.Mode
		icon    fyne.Resource
		tooltip string
	}{
		{model.ModeSelect, theme.NavigateBackIcon(), "Select: drag nodes, walls and openings (click a wall to edit it)"},
		{model.ModeLine, theme.ContentAddIcon(), "Wall: click to place points, click the start point again to stop"},
		{model.ModePartition, theme.ContentRemoveIcon(), "Partition: draw thin room separators"},
	}

	var objects []fyne.CanvasObject
	for _, t := range tools {
		mode := t.mode
		btn := newIconButtonWithTooltip(t.icon, t.tooltip, func() { setMode(mode) })
		tb.modes[mode] = btn
		objects = append(objects, btn)
	}

	tb.undo = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", undo)
	tb.redo = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", redo)
	objects = append(objects,
		widget.NewSeparator(),
		tb.undo,
		tb.redo,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Plan settings", settings),
	)

	tb.container = container.NewHBox(objects...)
	tb.setMode(model.ModeSelect)
	tb.setHistory(false, false)
	return tb
}

// setMode highlights the button of the active tool. Bind and the edit
// modes belong to Select.
func (tb *modeToolbar) setMode(m model.Mode) {
	switch m {
	case model.ModeLine, model.ModePartition:
	default:
		m = model.ModeSelect
	}
	for mode, btn := range tb.modes {
		if mode == m {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (tb *modeToolbar) setHistory(canUndo, canRedo bool) {
	if canUndo {
		tb.undo.Enable()
	} else {
		tb.undo.Disable()
	}
	if canRedo {
		tb.redo.Enable()
	} else {
		tb.redo.Disable()
	}
}
