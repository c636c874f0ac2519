package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store,
// ~/.floordraft/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store. Wall footprints are
// recomputed, as for plans.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, fmt.Errorf("parse %s: %w", path, err)
	}
	// Unnamed templates cannot be picked from the UI.
	store.Templates = slices.DeleteFunc(store.Templates, func(t model.PlanTemplate) bool {
		return strings.TrimSpace(t.Name) == ""
	})
	if store.Templates == nil {
		store.Templates = []model.PlanTemplate{}
	}
	for _, t := range store.Templates {
		refreshWalls(t.Walls)
	}
	return store, nil
}
