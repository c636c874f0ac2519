package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// PlanExtension is the file extension of saved plans.
const PlanExtension = ".fdplan"

// planFileVersion is bumped whenever the on-disk layout changes.
const planFileVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported plan file version")

type planFile struct {
	Version int        `json:"version"`
	Plan    model.Plan `json:"plan"`
}

// Save writes the plan to path as indented JSON, creating parent directories.
// The previous file is replaced only once the new one is fully written.
func Save(path string, plan model.Plan) error {
	return writeJSON(path, planFile{Version: planFileVersion, Plan: plan})
}

// Load reads a plan saved by Save. Wall footprints are recomputed from the
// stored endpoints, so hand-edited files stay consistent.
func Load(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, err
	}
	file := planFile{Plan: model.NewPlan()}
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Plan{}, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if file.Version < 1 || file.Version > planFileVersion {
		return model.Plan{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, file.Version)
	}
	plan := file.Plan
	refreshWalls(plan.Walls)
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}

// WithExtension appends PlanExtension to path unless it already ends in it.
func WithExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), PlanExtension) {
		return path
	}
	return path + PlanExtension
}

// refreshWalls recomputes footprints from the stored endpoints, so
// hand-edited files stay consistent.
func refreshWalls(walls []model.Wall) {
	for i := range walls {
		walls[i].Refresh()
	}
}
