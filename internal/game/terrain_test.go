package game

import (
	"testing"

	"github.com/playmatatu/minigolf/internal/course"
)

func TestDominantPrecedence(t *testing.T) {
	tests := []struct {
		set  TerrainSet
		want TerrainKind
	}{
		{TerrainSet{TerrainFairway, TerrainSand}, TerrainSand},
		{TerrainSet{TerrainGreen, TerrainWater}, TerrainWater},
		{TerrainSet{TerrainSand, TerrainWater}, TerrainSand},
		{TerrainSet{TerrainFairway, TerrainGreen}, TerrainGreen},
		{TerrainSet{TerrainRough, TerrainFairway}, TerrainFairway},
		{TerrainSet{TerrainWall}, TerrainRough},
		{TerrainSet{TerrainTreePatch, TerrainOutOfBounds}, TerrainRough},
		{nil, TerrainRough},
	}
	for _, tt := range tests {
		if got := tt.set.Dominant(); got != tt.want {
			t.Errorf("%v.Dominant() = %s, want %s", tt.set, got, tt.want)
		}
	}
}

func TestClassifyCourse(t *testing.T) {
	h := openHole(
		obstacle("sand", rectSpec(20, 20, 20, 20)),
		obstacle("green", circleSpec(80, 80, 10)),
	)
	h.Fairway = &course.FairwaySpec{PhysicsShapes: course.ShapeList{rectSpec(0, 0, 60, 60)}}
	c := buildCourse(t, h)

	tests := []struct {
		name string
		p    Vec2
		want TerrainKind
	}{
		{"sand over fairway", Vec2{X: 300, Y: 300}, TerrainSand},
		{"green", Vec2{X: 800, Y: 800}, TerrainGreen},
		{"fairway", Vec2{X: 100, Y: 100}, TerrainFairway},
		{"uncovered is rough", Vec2{X: 100, Y: 900}, TerrainRough},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dominant(tt.p, c); got != tt.want {
				t.Errorf("Dominant(%+v) = %s, want %s (set %v)", tt.p, got, tt.want, Classify(tt.p, c))
			}
		})
	}
}

func TestClassifyHasNoDuplicates(t *testing.T) {
	c := buildCourse(t, openHole(
		obstacle("sand", rectSpec(0, 0, 50, 50)),
		obstacle("bunker", rectSpec(10, 10, 50, 50)),
	))
	set := Classify(Vec2{X: 200, Y: 200}, c)
	if len(set) != 1 || set[0] != TerrainSand {
		t.Errorf("expected one sand entry, got %v", set)
	}
}

func TestParseTerrainKind(t *testing.T) {
	for in, want := range map[string]TerrainKind{
		"sand":          TerrainSand,
		"Bunker":        TerrainSand,
		"trees":         TerrainTreePatch,
		"tree-patch":    TerrainTreePatch,
		"OOB":           TerrainOutOfBounds,
		"out-of-bounds": TerrainOutOfBounds,
		" water ":       TerrainWater,
	} {
		got, err := ParseTerrainKind(in)
		if err != nil || got != want {
			t.Errorf("ParseTerrainKind(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseTerrainKind("lava"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestFrictionFor(t *testing.T) {
	if FrictionFor(TerrainSand) != SandFriction {
		t.Error("sand should use sand friction")
	}
	if FrictionFor(TerrainRough) != RoughFriction {
		t.Error("rough should use rough friction")
	}
	for _, k := range []TerrainKind{TerrainFairway, TerrainGreen} {
		if FrictionFor(k) != NormalFriction {
			t.Errorf("%s should use normal friction", k)
		}
	}
}
