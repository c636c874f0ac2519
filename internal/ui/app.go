package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/editor"
	"github.com/piwi3910/FloorDraft/internal/export"
	"github.com/piwi3910/FloorDraft/internal/geometry"
	wallimporter "github.com/piwi3910/FloorDraft/internal/importer"
	"github.com/piwi3910/FloorDraft/internal/model"
	"github.com/piwi3910/FloorDraft/internal/project"
	"github.com/piwi3910/FloorDraft/internal/ui/widgets"
)

// maxRecentPlans bounds the File > Open Recent list.
const maxRecentPlans = 8

// App holds all application state and UI references.
type App struct {
	window     fyne.Window
	config     model.AppConfig
	configPath string
	planPath   string

	editor *editor.Editor
	canvas *widgets.PlanCanvas

	// UI references for dynamic updates
	modeLabel        *widget.Label
	measurementLabel *widget.Label
	statusLabel      *widget.Label
	toolbar          *modeToolbar
}

// NewApp creates the application for a new plan built from the saved
// defaults in config.
func NewApp(window fyne.Window, config model.AppConfig, configPath string) *App {
	a := &App{
		window:     window,
		config:     config,
		configPath: configPath,
	}
	a.editor = editor.New(a.newPlan(), a.canvasOffset, editor.Hooks{
		Changed:         a.planChanged,
		ModeChanged:     a.modeChanged,
		Measurement:     a.measurementChanged,
		WallClicked:     a.showWallDialog,
		OpeningSelected: a.showOpeningDialog,
	})
	return a
}

func (a *App) newPlan() model.Plan {
	plan := model.NewPlan()
	a.config.ApplyToSettings(&plan.Settings)
	return plan
}

func (a *App) canvasOffset() (model.Point2D, bool) {
	if a.canvas == nil {
		return model.Point2D{}, false
	}
	return a.canvas.Offset()
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Plan", a.newPlanAction),
		fyne.NewMenuItem("New from Template...", a.newFromTemplate),
		fyne.NewMenuItem("Open Plan...", a.openPlan),
		recent,
		fyne.NewMenuItem("Save Plan", a.savePlan),
		fyne.NewMenuItem("Save Plan As...", a.savePlanAs),
		fyne.NewMenuItem("Save as Template...", a.saveAsTemplate),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Walls from CSV...", func() { a.importWalls("csv") }),
		fyne.NewMenuItem("Import Walls from Excel...", func() { a.importWalls("xlsx") }),
		fyne.NewMenuItem("Import Walls from DXF...", func() { a.importWalls("dxf") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { a.exportPlan(".pdf", export.ExportPDF) }),
		fyne.NewMenuItem("Export DXF...", func() { a.exportPlan(".dxf", export.ExportDXF) }),
		fyne.NewMenuItem("Export Wall Schedule...", func() { a.exportPlan(".xlsx", export.ExportSchedule) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup Settings and Plan...", a.exportBackup),
		fyne.NewMenuItem("Restore Backup...", a.importBackup),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Plan Settings...", a.showSettingsDialog),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { a.zoom(1 / 1.25) }),
		fyne.NewMenuItem("Zoom Out", func() { a.zoom(1.25) }),
		fyne.NewMenuItem("Reset View", func() {
			a.editor.SetViewbox(geometry.DefaultViewbox())
			a.canvas.Refresh()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) recentMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentPlans {
		p := path
		items = append(items, fyne.NewMenuItem(filepath.Base(p), func() { a.loadPlan(p) }))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("No recent plans", nil)
		none.Disabled = true
		items = append(items, none)
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About FloorDraft",
		"FloorDraft: 2D floor plan editor\n\n"+
			"Draw walls and partitions, drag nodes and walls\n"+
			"to bind them together, and export plans to\n"+
			"PDF, DXF and spreadsheet wall schedules.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.canvas = widgets.NewPlanCanvas(a.editor)
	a.canvas.OnError = func(err error) { a.setStatus(err.Error()) }

	a.toolbar = newModeToolbar(a.editor.SetMode, a.undo, a.redo, a.showSettingsDialog)
	a.modeLabel = widget.NewLabel("Mode: " + a.editor.Mode().String())
	a.measurementLabel = widget.NewLabel("")
	a.statusLabel = widget.NewLabel("")

	status := container.NewHBox(a.modeLabel, widget.NewSeparator(), a.measurementLabel, widget.NewSeparator(), a.statusLabel)
	a.updateTitle()
	return container.NewBorder(a.toolbar.container, status, nil, nil, a.canvas)
}

// ─── Editor hooks ──────────────────────────────────────────

func (a *App) planChanged() {
	if a.canvas != nil {
		a.canvas.Refresh()
	}
	if a.toolbar != nil {
		a.toolbar.setHistory(a.editor.CanUndo(), a.editor.CanRedo())
	}
	a.updateTitle()
}

func (a *App) modeChanged(m model.Mode) {
	if a.modeLabel != nil {
		a.modeLabel.SetText("Mode: " + m.String())
	}
	if a.toolbar != nil {
		a.toolbar.setMode(m)
	}
}

func (a *App) measurementChanged(text string) {
	if a.measurementLabel != nil {
		a.measurementLabel.SetText(text)
	}
}

func (a *App) setStatus(text string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(text)
	}
}

func (a *App) updateTitle() {
	title := "FloorDraft - " + a.editor.Plan().Name
	if a.editor.Dirty() {
		title += " *"
	}
	a.window.SetTitle(title)
}

// ─── Wall and opening dialogs ──────────────────────────────

func (a *App) showWallDialog(w model.Wall) {
	plan := a.editor.Plan()
	meter := plan.Settings.MeterSize

	typeSelect := widget.NewSelect([]string{"Wall", "Partition"}, nil)
	if w.Type == model.WallSeparate {
		typeSelect.SetSelected("Partition")
	} else {
		typeSelect.SetSelected("Wall")
	}
	thicknessEntry := widget.NewEntry()
	thicknessEntry.SetText(fmt.Sprintf("%.2f", w.Thickness/meter))

	info := widget.NewLabel(fmt.Sprintf("Length: %s", a.editor.FormatLength(w.Length())))

	var form dialog.Dialog
	deleteBtn := widget.NewButtonWithIcon("Delete Wall", theme.DeleteIcon(), func() {
		a.editor.DeleteWall(w.ID)
		form.Hide()
	})
	deleteBtn.Importance = widget.DangerImportance

	form = dialog.NewForm("Edit Wall", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("", info),
			widget.NewFormItem("Type", typeSelect),
			widget.NewFormItem("Thickness (m)", thicknessEntry),
			widget.NewFormItem("", deleteBtn),
		},
		func(ok bool) {
			if !ok {
				return
			}
			t, err := strconv.ParseFloat(thicknessEntry.Text, 64)
			if err != nil || t <= 0 {
				dialog.ShowError(fmt.Errorf("thickness must be > 0"), a.window)
				return
			}
			wallType := model.WallNormal
			if typeSelect.Selected == "Partition" {
				wallType = model.WallSeparate
			}
			a.editor.UpdateWall(w.ID, wallType, t*meter)
		},
		a.window,
	)
	form.SetOnClosed(func() { a.editor.SetMode(model.ModeSelect) })
	form.Resize(fyne.NewSize(360, 260))
	form.Show()
}

func (a *App) showOpeningDialog(o model.ObjectMetaData) {
	meter := a.editor.Plan().Settings.MeterSize

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.2f", o.Size/meter))

	var form dialog.Dialog
	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		a.editor.DeleteObject(o.ID)
		form.Hide()
	})
	deleteBtn.Importance = widget.DangerImportance

	form = dialog.NewForm("Edit Opening", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Width (m)", widthEntry),
			widget.NewFormItem("", deleteBtn),
		},
		func(ok bool) {
			if !ok {
				return
			}
			size, err := strconv.ParseFloat(widthEntry.Text, 64)
			if err != nil || !a.editor.ResizeOpening(o.ID, size*meter) {
				dialog.ShowError(fmt.Errorf("width must be > 0 and fit in its wall"), a.window)
			}
		},
		a.window,
	)
	form.SetOnClosed(func() { a.editor.SetMode(model.ModeSelect) })
	form.Show()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) undo() {
	if !a.editor.Undo() {
		a.setStatus("Nothing to undo")
	}
}

func (a *App) redo() {
	if !a.editor.Redo() {
		a.setStatus("Nothing to redo")
	}
}

func (a *App) zoom(factor float64) {
	size := a.canvas.Size()
	center := model.Point2D{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
	a.editor.SetViewbox(widgets.ZoomAt(a.editor.Viewbox(), center, factor))
	a.canvas.Refresh()
}

func (a *App) newPlanAction() {
	a.confirmDiscard(func() {
		a.planPath = ""
		a.editor.Load(a.newPlan())
	})
}

// confirmDiscard runs next, asking first when the plan has unsaved changes.
func (a *App) confirmDiscard(next func()) {
	if !a.editor.Dirty() {
		next()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Discard the changes to the current plan?", func(ok bool) {
		if ok {
			next()
		}
	}, a.window)
}

func (a *App) savePlan() {
	if a.planPath == "" {
		a.savePlanAs()
		return
	}
	a.writePlan(a.planPath)
}

func (a *App) savePlanAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		a.writePlan(project.WithExtension(writer.URI().Path()))
	}, a.window)
	d.SetFileName(a.editor.Plan().Name + project.PlanExtension)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.PlanExtension}))
	d.Show()
}

func (a *App) writePlan(path string) {
	if err := project.Save(path, a.editor.Plan()); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.planPath = path
	a.editor.MarkClean()
	a.rememberPlan(path)
	a.setStatus("Saved " + filepath.Base(path))
	a.updateTitle()
}

func (a *App) openPlan() {
	a.confirmDiscard(func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			a.loadPlan(reader.URI().Path())
		}, a.window)
		d.SetFilter(storage.NewExtensionFileFilter([]string{project.PlanExtension}))
		d.Show()
	})
}

func (a *App) loadPlan(path string) {
	plan, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.planPath = path
	a.editor.Load(plan)
	a.rememberPlan(path)
	a.setStatus("Opened " + filepath.Base(path))
}

func (a *App) rememberPlan(path string) {
	a.config.AddRecentPlan(path, maxRecentPlans)
	a.saveConfig()
	a.SetupMenus()
}

func (a *App) saveConfig() {
	if a.configPath == "" {
		return
	}
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		applog.Logger().Warn("ui: cannot save config", slog.Any("error", err))
	}
}

func (a *App) exportPlan(ext string, write func(string, model.Plan) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if err := write(path, a.editor.Plan()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Plan saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.editor.Plan().Name + ext)
	d.Show()
}

func (a *App) exportBackup() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		plan := a.editor.Plan()
		if err := project.ExportAllData(writer.URI().Path(), a.config, &plan); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("floordraft-backup.json")
	d.Show()
}

func (a *App) importBackup() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		backup, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config = backup.Config
		a.saveConfig()
		a.SetupMenus()
		applyTheme(a.config.Theme)
		if backup.Plan != nil {
			a.confirmDiscard(func() {
				a.planPath = ""
				a.editor.Load(*backup.Plan)
			})
		}
	}, a.window)
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importWalls(kind string) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		opts := wallimporter.DefaultOptions(a.editor.Plan().Settings)
		var result wallimporter.ImportResult
		switch kind {
		case "xlsx":
			result = wallimporter.ImportExcel(path, opts)
		case "dxf":
			result = wallimporter.ImportDXF(path, opts)
		default:
			result = wallimporter.ImportCSV(path, opts)
		}
		a.handleImportResult(result, filepath.Base(path))
	}, a.window)
}

func (a *App) handleImportResult(result wallimporter.ImportResult, name string) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		applog.Logger().Info("ui: import warning", slog.String("file", name), slog.String("warning", w))
	}

	if len(result.Walls) > 0 {
		a.editor.AddWalls(result.Walls, "Import "+name)

		msg := fmt.Sprintf("Successfully imported %d walls.", len(result.Walls))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
