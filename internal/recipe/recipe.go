// Package recipe reads YAML composition recipes: a target layout, the
// source images to cut, and where their units go on the canvas.
//
//	type: A2
//	output: out/Tileset_A2.png
//	sources:
//	  - name: water
//	    path: water.png
//	placements:
//	  - source: water
//	    unit: 0
//	    at: {x: 0, y: 0}
//	  - source: water
//	    from: {x: 2, y: 3}
//	    at: {x: 4, y: 0}
//	    snap: true
package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tileset-composer/internal/app"
	tsimage "tileset-composer/internal/image"
	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid recipe")

// Recipe describes one composed tileset.
type Recipe struct {
	Type       string      `yaml:"type"`
	Output     string      `yaml:"output"`
	Sources    []Source    `yaml:"sources"`
	Placements []Placement `yaml:"placements"`

	dir string // Directory relative paths resolve against
}

// Source is an image cut into units. An empty Type auto-detects the
// layout from the image size.
type Source struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Type string `yaml:"type,omitempty"`
}

// Placement puts one source unit on the canvas. The unit is chosen either
// by its index in the source or by a source tile cell it covers.
type Placement struct {
	Source string             `yaml:"source"`
	Unit   *int               `yaml:"unit,omitempty"`
	From   *geometry.PointInt `yaml:"from,omitempty"`
	At     geometry.PointInt  `yaml:"at"`
	Snap   bool               `yaml:"snap,omitempty"`
}

// Report summarizes an Apply.
type Report struct {
	Placed   int
	Rejected []int // Indexes of placements the layout refused
}

// Load reads a recipe file. Sources without a name are named after their
// file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: load %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("recipe: unmarshal %s: %w", path, err)
	}
	r.dir = filepath.Dir(path)
	return r, nil
}

// Parse decodes a recipe from YAML. Relative paths resolve against the
// working directory.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	for i := range r.Sources {
		if r.Sources[i].Name == "" {
			r.Sources[i].Name = filepath.Base(r.Sources[i].Path)
		}
	}
	return &r, nil
}

// Resolve returns p relative to the recipe's directory.
func (r *Recipe) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || r.dir == "" {
		return p
	}
	return filepath.Join(r.dir, p)
}

// OutputPath returns the resolved output path, defaulting to the
// suggested export name for the recipe's type.
func (r *Recipe) OutputPath() string {
	if r.Output != "" {
		return r.Resolve(r.Output)
	}
	typ, err := tileset.LookupChoice(r.Type)
	if err != nil {
		return r.Resolve("Tileset.png")
	}
	return r.Resolve(fmt.Sprintf("Tileset_%s.png", typ.Name))
}

// SourcePaths returns the resolved path of every source.
func (r *Recipe) SourcePaths() []string {
	paths := make([]string, len(r.Sources))
	for i, s := range r.Sources {
		paths[i] = r.Resolve(s.Path)
	}
	return paths
}

// Validate checks types, source files and placement references.
func (r *Recipe) Validate() error {
	if _, err := tileset.LookupChoice(r.Type); err != nil {
		return fmt.Errorf("%w: target: %w", ErrInvalid, err)
	}

	names := make(map[string]bool)
	for i, s := range r.Sources {
		if s.Path == "" {
			return fmt.Errorf("%w: source %d has no path", ErrInvalid, i)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate source %q", ErrInvalid, s.Name)
		}
		names[s.Name] = true
		if s.Type != "" {
			if _, err := tileset.LookupChoice(s.Type); err != nil {
				return fmt.Errorf("%w: source %q: %w", ErrInvalid, s.Name, err)
			}
		}
		if _, err := os.Stat(r.Resolve(s.Path)); err != nil {
			return fmt.Errorf("%w: source %q: %w", ErrInvalid, s.Name, err)
		}
	}

	for i, p := range r.Placements {
		if !names[p.Source] {
			return fmt.Errorf("%w: placement %d: unknown source %q", ErrInvalid, i, p.Source)
		}
		if (p.Unit == nil) == (p.From == nil) {
			return fmt.Errorf("%w: placement %d: exactly one of unit or from is required", ErrInvalid, i)
		}
		if p.Unit != nil && *p.Unit < 0 {
			return fmt.Errorf("%w: placement %d: negative unit index", ErrInvalid, i)
		}
	}
	return nil
}

// Apply builds the composition on st: the target type is set, the
// palette is replaced with the source units and each placement is
// dropped. Placements the layout rejects are reported, not fatal.
func (r *Recipe) Apply(st *app.State) (*Report, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := st.SetTargetType(r.Type); err != nil {
		return nil, err
	}

	bySource := make(map[string][]*tile.Unit)
	var all []*tile.Unit
	for _, s := range r.Sources {
		units, err := tsimage.LoadUnitsByName(r.Resolve(s.Path), s.Type)
		if err != nil {
			return nil, fmt.Errorf("recipe: source %q: %w", s.Name, err)
		}
		bySource[s.Name] = units
		all = append(all, units...)
	}
	st.AddUnits(all, false)

	snap := st.Snap()
	defer st.SetSnap(snap)

	rep := &Report{}
	for i, p := range r.Placements {
		u, err := pick(bySource[p.Source], p)
		if err != nil {
			return nil, fmt.Errorf("recipe: placement %d: %w", i, err)
		}
		st.SetSnap(p.Snap)
		if _, ok := st.Place(u, p.At); ok {
			rep.Placed++
		} else {
			rep.Rejected = append(rep.Rejected, i)
		}
	}
	return rep, nil
}

func pick(units []*tile.Unit, p Placement) (*tile.Unit, error) {
	if p.Unit != nil {
		if *p.Unit >= len(units) {
			return nil, fmt.Errorf("unit %d out of range (source has %d)", *p.Unit, len(units))
		}
		return units[*p.Unit], nil
	}
	for _, u := range units {
		for _, t := range u.Tiles {
			if t.Cell() == *p.From {
				return u, nil
			}
		}
	}
	return nil, fmt.Errorf("no unit covers source tile %d,%d", p.From.X, p.From.Y)
}

// Compose loads, applies and exports a recipe. A non-empty output
// overrides the recipe's own.
func Compose(path, output string) (string, *Report, error) {
	r, err := Load(path)
	if err != nil {
		return "", nil, err
	}
	st := app.NewState()
	rep, err := r.Apply(st)
	if err != nil {
		return "", nil, err
	}
	if output == "" {
		output = r.OutputPath()
	}
	out, err := st.Export(output)
	if err != nil {
		return "", rep, err
	}
	return out, rep, nil
}
