// Package course holds the resolution-independent description of mini-golf
// holes as authored in course files. Coordinates are percentages (0–100) of
// the playfield; the game package scales them to pixels at hole setup.
package course

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Point is a percentage-space coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ShapeSpec is one tagged shape as written in a course file. Only the fields
// relevant to Type are read.
type ShapeSpec struct {
	Type   string  `json:"type" yaml:"type"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	CX     float64 `json:"cx,omitempty" yaml:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty" yaml:"cy,omitempty"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	RX     float64 `json:"rx,omitempty" yaml:"rx,omitempty"`
	RY     float64 `json:"ry,omitempty" yaml:"ry,omitempty"`
	Points []Point `json:"points,omitempty" yaml:"points,omitempty"`
}

// ShapeList accepts either a single shape or an array of shapes.
type ShapeList []ShapeSpec

func (l *ShapeList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var many []ShapeSpec
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one ShapeSpec
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = ShapeList{one}
	return nil
}

func (l *ShapeList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var many []ShapeSpec
		if err := value.Decode(&many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one ShapeSpec
	if err := value.Decode(&one); err != nil {
		return err
	}
	*l = ShapeList{one}
	return nil
}

// ObstacleSpec is a terrain region or solid obstacle. PhysicsShapes, when
// present, replace Shape for collision and classification.
type ObstacleSpec struct {
	Type          string    `json:"type" yaml:"type"`
	Shape         ShapeList `json:"shape" yaml:"shape"`
	PhysicsShapes ShapeList `json:"physicsShapes,omitempty" yaml:"physicsShapes,omitempty"`
}

// FairwaySpec accepts a plain shape array or an object carrying a render path
// and its simplified physics shapes.
type FairwaySpec struct {
	Path          string    `json:"path,omitempty" yaml:"path,omitempty"`
	PhysicsShapes ShapeList `json:"physicsShapes,omitempty" yaml:"physicsShapes,omitempty"`
}

type fairwayObject struct {
	Path          string    `json:"path" yaml:"path"`
	PhysicsShapes ShapeList `json:"physicsShapes" yaml:"physicsShapes"`
}

func (f *FairwaySpec) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var shapes ShapeList
		if err := json.Unmarshal(data, &shapes); err != nil {
			return err
		}
		*f = FairwaySpec{PhysicsShapes: shapes}
		return nil
	}
	var obj fairwayObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = FairwaySpec(obj)
	return nil
}

func (f *FairwaySpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var shapes ShapeList
		if err := value.Decode(&shapes); err != nil {
			return err
		}
		*f = FairwaySpec{PhysicsShapes: shapes}
		return nil
	}
	var obj fairwayObject
	if err := value.Decode(&obj); err != nil {
		return err
	}
	*f = FairwaySpec(obj)
	return nil
}

// Hole is one authored hole.
type Hole struct {
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Par       int            `json:"par" yaml:"par"`
	Start     *Point         `json:"start" yaml:"start"`
	Hole      *Point         `json:"hole" yaml:"hole"`
	Obstacles []ObstacleSpec `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	Fairway   *FairwaySpec   `json:"fairway,omitempty" yaml:"fairway,omitempty"`
}

// ValidationError describes a malformed hole.
type ValidationError struct {
	Hole   int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hole %d: %s: %s", e.Hole+1, e.Field, e.Reason)
}

// Validate checks the fields every hole needs before it can be played. Shape
// and terrain vocabularies are checked when the hole is built.
func (h Hole) Validate(index int) error {
	if h.Par <= 0 {
		return &ValidationError{Hole: index, Field: "par", Reason: "missing or not positive"}
	}
	if h.Start == nil {
		return &ValidationError{Hole: index, Field: "start", Reason: "missing"}
	}
	if h.Hole == nil {
		return &ValidationError{Hole: index, Field: "hole", Reason: "missing"}
	}
	for i, obs := range h.Obstacles {
		if obs.Type == "" {
			return &ValidationError{Hole: index, Field: fmt.Sprintf("obstacles[%d].type", i), Reason: "missing"}
		}
		if len(obs.Shape) == 0 && len(obs.PhysicsShapes) == 0 {
			return &ValidationError{Hole: index, Field: fmt.Sprintf("obstacles[%d].shape", i), Reason: "missing"}
		}
	}
	return nil
}

// DisplayName falls back to "Hole N".
func (h Hole) DisplayName(index int) string {
	if h.Name != "" {
		return h.Name
	}
	return fmt.Sprintf("Hole %d", index+1)
}
