package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FloorDraft/internal/model"
)

var themeOptions = []string{"system", "light", "dark"}

// showSettingsDialog edits the settings of the open plan. Lengths are shown
// in meters and stored in model units.
func (a *App) showSettingsDialog() {
	s := a.editor.Plan().Settings
	meter := s.MeterSize
	if meter <= 0 {
		meter = model.DefaultSettings().MeterSize
	}

	// Helper to create a float entry that writes value*scale back into val.
	floatEntry := func(label string, val *float64, scale float64) *widget.FormItem {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val/scale, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil && v > 0 {
				*val = v * scale
			}
		}
		e.Validator = func(text string) error {
			if v, err := strconv.ParseFloat(text, 64); err != nil || v <= 0 {
				return fmt.Errorf("%s must be > 0", label)
			}
			return nil
		}
		return widget.NewFormItem(label, e)
	}
	check := func(label string, val *bool) *widget.FormItem {
		c := widget.NewCheck("", func(b bool) { *val = b })
		c.SetChecked(*val)
		return widget.NewFormItem(label, c)
	}

	themeSelect := widget.NewSelect(themeOptions, nil)
	themeSelect.SetSelected(a.config.Theme)
	if themeSelect.Selected == "" {
		themeSelect.SetSelected("system")
	}
	asDefaults := widget.NewCheck("", nil)

	items := []*widget.FormItem{
		floatEntry("Grid Size (m)", &s.GridSize, meter),
		floatEntry("Wall Thickness (m)", &s.WallSize, meter),
		floatEntry("Partition Thickness (m)", &s.PartitionSize, meter),
		floatEntry("Bind Range (m)", &s.BindRange, meter),
		floatEntry("Click Tolerance (px)", &s.ClickTolerance, 1),
		floatEntry("Min Wall Length (m)", &s.MinWallLength, 1),
		check("Snap to Grid", &s.Snap),
		check("Continuous Walls", &s.ContinuousWalls),
		check("Split Walls on Bind", &s.SplitOnBind),
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Use as Defaults", asDefaults),
	}

	form := dialog.NewForm("Plan Settings", "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		a.editor.SetSettings(s)
		if asDefaults.Checked {
			a.config.SetDefaults(s)
		}
		if themeSelect.Selected != a.config.Theme {
			a.config.Theme = themeSelect.Selected
			applyTheme(a.config.Theme)
		}
		a.saveConfig()
		a.setStatus("Settings applied")
	}, a.window)
	form.Resize(fyne.NewSize(420, 520))
	form.Show()
}
