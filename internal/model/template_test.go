package model

import (
	"testing"
)

func templatePlan() Plan {
	plan := NewPlan()
	plan.Name = "Studio"
	a := NewWall(Point2D{X: 0, Y: 0}, Point2D{X: 200, Y: 0}, WallNormal, 20)
	b := NewWall(Point2D{X: 200, Y: 0}, Point2D{X: 200, Y: 150}, WallNormal, 20)
	a.Child = b.ID
	b.Parent = a.ID
	door := NewObject("door", FamilyInWall, 100, 0, 60, 20)
	door.WallID = a.ID
	plan.Walls = []Wall{a, b}
	plan.Objects = []ObjectMetaData{door}
	plan.Rooms = []RoomMetaData{{ID: "r1", Name: "Main", Polygon: Outline{{0, 0}, {200, 0}, {200, 150}}}}
	plan.Devices = []DeviceMetaData{{ID: "d1", Name: "Socket", X: 10, Y: 10, Size: 8}}
	plan.Settings.GridSize = 10
	return plan
}

func TestNewPlanTemplate(t *testing.T) {
	tmpl := NewPlanTemplate("Studio", "Single room", templatePlan())

	if tmpl.Name != "Studio" {
		t.Errorf("expected name 'Studio', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Walls) != 2 || len(tmpl.Objects) != 1 || len(tmpl.Rooms) != 1 || len(tmpl.Devices) != 1 {
		t.Errorf("unexpected template contents: %+v", tmpl)
	}
	if tmpl.Settings.GridSize != 10 {
		t.Errorf("expected grid size 10, got %v", tmpl.Settings.GridSize)
	}
}

func TestNewPlanTemplate_EmptyPlan(t *testing.T) {
	tmpl := NewPlanTemplate("Empty", "", Plan{})
	if tmpl.Walls == nil || tmpl.Objects == nil || tmpl.Rooms == nil || tmpl.Devices == nil {
		t.Error("expected empty, non-nil slices")
	}
}

func TestPlanTemplate_ToPlan(t *testing.T) {
	src := templatePlan()
	tmpl := NewPlanTemplate("Studio", "", src)
	plan := tmpl.ToPlan("Flat 2")

	if plan.Name != "Flat 2" {
		t.Errorf("expected plan name 'Flat 2', got %q", plan.Name)
	}
	if len(plan.Walls) != 2 {
		t.Fatalf("expected 2 walls, got %d", len(plan.Walls))
	}
	a, b := plan.Walls[0], plan.Walls[1]
	if a.ID == src.Walls[0].ID || b.ID == src.Walls[1].ID {
		t.Error("walls should have fresh IDs")
	}
	if a.Child != b.ID || b.Parent != a.ID {
		t.Errorf("joints not remapped: a.Child=%q b.ID=%q b.Parent=%q a.ID=%q", a.Child, b.ID, b.Parent, a.ID)
	}
	if a.Parent != "" {
		t.Errorf("expected empty parent, got %q", a.Parent)
	}
	if plan.Objects[0].WallID != a.ID {
		t.Errorf("opening host = %q, want %q", plan.Objects[0].WallID, a.ID)
	}
	if plan.Rooms[0].ID == "r1" || plan.Devices[0].ID == "d1" {
		t.Error("rooms and devices should have fresh IDs")
	}
	if plan.Settings.GridSize != 10 {
		t.Errorf("expected grid size 10, got %v", plan.Settings.GridSize)
	}

	// Two plans from one template are independent.
	other := tmpl.ToPlan("Flat 3")
	if other.Walls[0].ID == a.ID {
		t.Error("second plan reused wall IDs")
	}
	other.Rooms[0].Polygon[0] = Point2D{X: -1, Y: -1}
	if plan.Rooms[0].Polygon[0] == other.Rooms[0].Polygon[0] {
		t.Error("room polygons are shared between plans")
	}
}

func TestTemplateStore_AddRemoveFind(t *testing.T) {
	store := NewTemplateStore()

	store.Add(NewPlanTemplate("T1", "", NewPlan()))
	store.Add(NewPlanTemplate("T2", "", NewPlan()))

	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}
	names := store.Names()
	if names[0] != "T1" || names[1] != "T2" {
		t.Errorf("unexpected names %v", names)
	}

	found := store.FindByName("T2")
	if found == nil {
		t.Fatal("expected to find T2")
	}
	if store.FindByName("missing") != nil {
		t.Error("expected nil for missing name")
	}

	if !store.Remove(found.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove("nope") {
		t.Error("expected Remove of unknown ID to fail")
	}
	if len(store.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(store.Templates))
	}
}

func TestTemplateStore_AddReplacesByName(t *testing.T) {
	store := NewTemplateStore()
	first := NewPlanTemplate("Studio", "old", NewPlan())
	store.Add(first)

	store.Add(NewPlanTemplate("Studio", "new", templatePlan()))

	if len(store.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(store.Templates))
	}
	got := store.Templates[0]
	if got.ID != first.ID || got.Description != "new" || len(got.Walls) != 2 {
		t.Errorf("template not replaced in place: %+v", got)
	}
}
