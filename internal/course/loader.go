package course

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoCourses is returned when no playable hole could be loaded.
var ErrNoCourses = errors.New("no courses available")

//go:embed courses/*.json courses/*.yaml
var builtin embed.FS

// Set is an ordered list of holes from one or more course files.
type Set struct {
	Name  string `json:"name"`
	Holes []Hole `json:"holes"`
}

// file is the on-disk shape: either {name, holes} or a bare array of holes.
type file struct {
	Name  string `json:"name" yaml:"name"`
	Holes []Hole `json:"holes" yaml:"holes"`
}

// Len returns the number of holes.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Holes)
}

// TotalPar sums par over all holes.
func (s *Set) TotalPar() int {
	total := 0
	for _, h := range s.Holes {
		total += h.Par
	}
	return total
}

// Fingerprint identifies the exact hole geometry a round was played on.
func (s *Set) Fingerprint() string {
	data, err := json.Marshal(s.Holes)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Validate checks every hole in order and returns the first problem.
func (s *Set) Validate() error {
	if s.Len() == 0 {
		return ErrNoCourses
	}
	for i, h := range s.Holes {
		if err := h.Validate(i); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes one course file. The format is picked from the extension;
// anything other than .yaml/.yml is treated as JSON.
func Parse(name string, data []byte) (*Set, error) {
	var f file
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Content[0].Decode(&f.Holes); err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
		} else if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &f.Holes); err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
		} else if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	set := &Set{Name: f.Name, Holes: f.Holes}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return set, nil
}

// LoadDir reads every .json/.yaml/.yml file in dir, in file name order, and
// concatenates their holes into one set.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read courses dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isCourseFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	merged := &Set{Name: filepath.Base(dir)}
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", n, err)
		}
		set, err := Parse(n, data)
		if err != nil {
			return nil, err
		}
		merged.Holes = append(merged.Holes, set.Holes...)
	}
	if merged.Len() == 0 {
		return nil, ErrNoCourses
	}
	return merged, nil
}

// Builtin returns the course set compiled into the binary.
func Builtin() (*Set, error) {
	entries, err := builtin.ReadDir("courses")
	if err != nil {
		return nil, err
	}
	merged := &Set{Name: "builtin"}
	for _, e := range entries {
		data, err := builtin.ReadFile("courses/" + e.Name())
		if err != nil {
			return nil, err
		}
		set, err := Parse(e.Name(), data)
		if err != nil {
			return nil, err
		}
		merged.Holes = append(merged.Holes, set.Holes...)
	}
	if merged.Len() == 0 {
		return nil, ErrNoCourses
	}
	return merged, nil
}

// Load reads dir when set, otherwise the builtin courses.
func Load(dir string) (*Set, error) {
	if dir == "" {
		return Builtin()
	}
	return LoadDir(dir)
}

func isCourseFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
