package game

import (
	"fmt"
	"strings"
)

// TerrainKind classifies a region of a hole.
type TerrainKind int

const (
	TerrainRough TerrainKind = iota
	TerrainFairway
	TerrainGreen
	TerrainSand
	TerrainWater
	TerrainWall
	TerrainTreePatch
	TerrainOutOfBounds
)

var terrainNames = [...]string{
	TerrainRough:       "rough",
	TerrainFairway:     "fairway",
	TerrainGreen:       "green",
	TerrainSand:        "sand",
	TerrainWater:       "water",
	TerrainWall:        "wall",
	TerrainTreePatch:   "tree-patch",
	TerrainOutOfBounds: "out-of-bounds",
}

func (k TerrainKind) String() string {
	if k < 0 || int(k) >= len(terrainNames) {
		return fmt.Sprintf("terrain(%d)", int(k))
	}
	return terrainNames[k]
}

func (k TerrainKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TerrainKind) UnmarshalText(b []byte) error {
	v, err := ParseTerrainKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseTerrainKind accepts the canonical names plus a few authoring aliases.
func ParseTerrainKind(s string) (TerrainKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rough":
		return TerrainRough, nil
	case "fairway":
		return TerrainFairway, nil
	case "green":
		return TerrainGreen, nil
	case "sand", "bunker":
		return TerrainSand, nil
	case "water":
		return TerrainWater, nil
	case "wall":
		return TerrainWall, nil
	case "tree-patch", "tree", "trees", "treepatch", "tree_patch":
		return TerrainTreePatch, nil
	case "out-of-bounds", "oob", "out_of_bounds", "outofbounds":
		return TerrainOutOfBounds, nil
	}
	return 0, fmt.Errorf("unknown terrain kind %q", s)
}

// TerrainSet is the ordered, duplicate-free list of kinds covering a point.
type TerrainSet []TerrainKind

func (s TerrainSet) Has(k TerrainKind) bool {
	for _, got := range s {
		if got == k {
			return true
		}
	}
	return false
}

func (s TerrainSet) add(k TerrainKind) TerrainSet {
	if s.Has(k) {
		return s
	}
	return append(s, k)
}

// frictionPrecedence is the order in which Dominant picks a kind.
var frictionPrecedence = []TerrainKind{
	TerrainSand,
	TerrainWater,
	TerrainGreen,
	TerrainFairway,
	TerrainRough,
}

// Classify tests p against every obstacle's physics shapes in course order,
// then against the fairway. A point covered by nothing is rough.
func Classify(p Vec2, c *Course) TerrainSet {
	var set TerrainSet
	if c == nil {
		return TerrainSet{TerrainRough}
	}
	for _, obs := range c.Obstacles {
		if obs.Contains(p) {
			set = set.add(obs.Kind)
		}
	}
	for _, s := range c.Fairway {
		if s.Contains(p) {
			set = set.add(TerrainFairway)
			break
		}
	}
	if len(set) == 0 {
		return TerrainSet{TerrainRough}
	}
	return set
}

// Dominant resolves the kind used for friction at p.
func Dominant(p Vec2, c *Course) TerrainKind {
	return Classify(p, c).Dominant()
}

// Dominant picks the first kind in precedence order; sets holding only
// solid kinds resolve to rough.
func (s TerrainSet) Dominant() TerrainKind {
	for _, k := range frictionPrecedence {
		if s.Has(k) {
			return k
		}
	}
	return TerrainRough
}

// FrictionFor returns the per-tick velocity multiplier for a dominant kind.
// Water only reaches friction once an airborne ball has cleared it, where it
// plays as rough.
func FrictionFor(k TerrainKind) float64 {
	switch k {
	case TerrainSand:
		return SandFriction
	case TerrainRough, TerrainWater:
		return RoughFriction
	default:
		return NormalFriction
	}
}
