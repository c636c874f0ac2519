package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PlanTemplate is a reusable starting plan: walls, openings, rooms, devices
// and settings, without a file path or history.
type PlanTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
	Walls       []Wall           `json:"walls"`
	Objects     []ObjectMetaData `json:"objects"`
	Rooms       []RoomMetaData   `json:"rooms"`
	Devices     []DeviceMetaData `json:"devices"`
	Settings    EditorSettings   `json:"settings"`
}

// NewPlanTemplate captures a copy of plan under the given name.
func NewPlanTemplate(name, description string, plan Plan) PlanTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return PlanTemplate{
		ID:          newID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Walls:       cloneOrEmpty(plan.Walls),
		Objects:     cloneOrEmpty(plan.Objects),
		Rooms:       cloneOrEmpty(plan.Rooms),
		Devices:     cloneOrEmpty(plan.Devices),
		Settings:    plan.Settings,
	}
}

// ToPlan creates a new plan from the template. Every element gets a fresh
// ID; wall joints and opening hosts are remapped to the new wall IDs.
func (t PlanTemplate) ToPlan(name string) Plan {
	ids := make(map[string]string, len(t.Walls))
	for _, w := range t.Walls {
		ids[w.ID] = newID()
	}
	remap := func(id string) string {
		if id == "" {
			return ""
		}
		return ids[id]
	}

	plan := NewPlan()
	plan.Name = name
	plan.Settings = t.Settings
	for _, w := range t.Walls {
		w.ID = ids[w.ID]
		w.Parent = remap(w.Parent)
		w.Child = remap(w.Child)
		plan.Walls = append(plan.Walls, w)
	}
	for _, o := range t.Objects {
		o.ID = newID()
		o.WallID = remap(o.WallID)
		plan.Objects = append(plan.Objects, o)
	}
	for _, r := range t.Rooms {
		r.ID = newID()
		r.Polygon = slices.Clone(r.Polygon)
		plan.Rooms = append(plan.Rooms, r)
	}
	for _, d := range t.Devices {
		d.ID = newID()
		plan.Devices = append(plan.Devices, d)
	}
	return plan
}

// TemplateStore holds a collection of plan templates.
type TemplateStore struct {
	Templates []PlanTemplate `json:"templates"`
}

func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []PlanTemplate{},
	}
}

// Add stores t, replacing any template with the same name.
func (ts *TemplateStore) Add(t PlanTemplate) {
	if existing := ts.FindByName(t.Name); existing != nil {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		*existing = t
		return
	}
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = slices.Delete(ts.Templates, i, i+1)
			return true
		}
	}
	return false
}

// Names returns the template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *PlanTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func newID() string {
	return uuid.New().String()[:8]
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
