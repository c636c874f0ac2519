package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/model"
	"github.com/piwi3910/FloorDraft/internal/project"
)

// templatesPath keeps the template store next to the config file.
func (a *App) templatesPath() string {
	if a.configPath == "" {
		return project.DefaultTemplatePath()
	}
	return filepath.Join(filepath.Dir(a.configPath), "templates.json")
}

func (a *App) loadTemplates() (model.TemplateStore, bool) {
	store, err := project.LoadTemplates(a.templatesPath())
	if err != nil {
		applog.Logger().Warn("ui: cannot load templates", slog.Any("error", err))
		dialog.ShowError(fmt.Errorf("load templates: %w", err), a.window)
		return store, false
	}
	return store, true
}

func (a *App) saveAsTemplate() {
	store, ok := a.loadTemplates()
	if !ok {
		return
	}
	plan := a.editor.Plan()
	nameEntry := widget.NewEntry()
	nameEntry.SetText(plan.Name)
	descEntry := widget.NewMultiLineEntry()

	dialog.ShowForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok || nameEntry.Text == "" {
				return
			}
			store.Add(model.NewPlanTemplate(nameEntry.Text, descEntry.Text, plan))
			if err := project.SaveTemplates(a.templatesPath(), store); err != nil {
				dialog.ShowError(fmt.Errorf("save template: %w", err), a.window)
				return
			}
			a.setStatus(fmt.Sprintf("Saved template %q", nameEntry.Text))
		},
		a.window,
	)
}

func (a *App) newFromTemplate() {
	store, ok := a.loadTemplates()
	if !ok {
		return
	}
	if len(store.Templates) == 0 {
		dialog.ShowInformation("Templates", "No templates saved yet. Use File > Save as Template first.", a.window)
		return
	}

	selected := store.Templates[0].Name
	desc := widget.NewLabel(store.Templates[0].Description)
	desc.Wrapping = fyne.TextWrapWord
	picker := widget.NewSelect(store.Names(), func(name string) {
		selected = name
		if t := store.FindByName(name); t != nil {
			desc.SetText(t.Description)
		}
	})
	picker.SetSelected(selected)

	var removeBtn *widget.Button
	removeBtn = widget.NewButton("Delete Template", func() {
		t := store.FindByName(selected)
		if t == nil || !store.Remove(t.ID) {
			return
		}
		if err := project.SaveTemplates(a.templatesPath(), store); err != nil {
			dialog.ShowError(fmt.Errorf("save templates: %w", err), a.window)
			return
		}
		picker.Options = store.Names()
		picker.ClearSelected()
		desc.SetText("")
		if len(store.Templates) == 0 {
			removeBtn.Disable()
		}
	})
	removeBtn.Importance = widget.DangerImportance

	d := dialog.NewForm("New from Template", "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Template", picker),
			widget.NewFormItem("", desc),
			widget.NewFormItem("", removeBtn),
		},
		func(ok bool) {
			if !ok {
				return
			}
			t := store.FindByName(picker.Selected)
			if t == nil {
				return
			}
			a.confirmDiscard(func() {
				a.planPath = ""
				a.editor.Load(t.ToPlan(t.Name))
				a.setStatus(fmt.Sprintf("New plan from template %q", t.Name))
			})
		},
		a.window,
	)
	d.Resize(fyne.NewSize(380, 240))
	d.Show()
}
