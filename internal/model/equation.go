package model

import (
	"encoding/json"
	"fmt"
)

// EquationKind tags which of the three line forms a WallEquation holds.
type EquationKind int

const (
	EquationSloped     EquationKind = iota // y = A*x + B
	EquationVertical                       // x = B
	EquationHorizontal                     // y = B
)

func (k EquationKind) String() string {
	switch k {
	case EquationVertical:
		return "v"
	case EquationHorizontal:
		return "h"
	default:
		return "sloped"
	}
}

// WallEquation is the line carrying a wall's centerline.
//
// A is only meaningful for EquationSloped. A sloped equation with A == 0 is
// not the same line form as EquationHorizontal: callers pick the horizontal
// tag explicitly for axis-aligned walls.
type WallEquation struct {
	Kind EquationKind
	A    float64
	B    float64
}

// Vertical returns the line x = x.
func Vertical(x float64) WallEquation {
	return WallEquation{Kind: EquationVertical, B: x}
}

// Horizontal returns the line y = y.
func Horizontal(y float64) WallEquation {
	return WallEquation{Kind: EquationHorizontal, B: y}
}

// Sloped returns the line y = a*x + b.
func Sloped(a, b float64) WallEquation {
	return WallEquation{Kind: EquationSloped, A: a, B: b}
}

// SameDirection reports whether both equations carry the same tag, and for
// sloped lines the same slope.
func (e WallEquation) SameDirection(o WallEquation) bool {
	if e.Kind != o.Kind {
		return false
	}
	return e.Kind != EquationSloped || e.A == o.A
}

func (e WallEquation) String() string {
	switch e.Kind {
	case EquationVertical:
		return fmt.Sprintf("x = %g", e.B)
	case EquationHorizontal:
		return fmt.Sprintf("y = %g", e.B)
	default:
		return fmt.Sprintf("y = %g*x + %g", e.A, e.B)
	}
}

type wallEquationJSON struct {
	A json.RawMessage `json:"A"`
	B float64         `json:"B"`
}

// MarshalJSON encodes the equation as {"A": "v"|"h"|slope, "B": b}.
func (e WallEquation) MarshalJSON() ([]byte, error) {
	var a any
	switch e.Kind {
	case EquationVertical:
		a = "v"
	case EquationHorizontal:
		a = "h"
	default:
		a = e.A
	}
	return json.Marshal(struct {
		A any     `json:"A"`
		B float64 `json:"B"`
	}{a, e.B})
}

func (e *WallEquation) UnmarshalJSON(data []byte) error {
	var raw wallEquationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var tag string
	if err := json.Unmarshal(raw.A, &tag); err == nil {
		switch tag {
		case "v":
			*e = Vertical(raw.B)
		case "h":
			*e = Horizontal(raw.B)
		default:
			return fmt.Errorf("invalid equation tag %q", tag)
		}
		return nil
	}
	var slope float64
	if err := json.Unmarshal(raw.A, &slope); err != nil {
		return fmt.Errorf("invalid equation slope: %w", err)
	}
	*e = Sloped(slope, raw.B)
	return nil
}

// WallEquationGroup is the scratch state of one bind gesture: the dragged
// wall's equation, up to two candidate equations and their joint.
type WallEquationGroup struct {
	Equation1    *WallEquation `json:"equation1"`
	Equation2    *WallEquation `json:"equation2"`
	Equation3    *WallEquation `json:"equation3"`
	Intersection *Point2D      `json:"intersection"`
}

// Reset clears every slot.
func (g *WallEquationGroup) Reset() {
	g.Equation1 = nil
	g.Equation2 = nil
	g.Equation3 = nil
	g.Intersection = nil
}

// Empty reports whether no slot is set.
func (g WallEquationGroup) Empty() bool {
	return g.Equation1 == nil && g.Equation2 == nil && g.Equation3 == nil && g.Intersection == nil
}
