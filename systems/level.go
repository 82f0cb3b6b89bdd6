package systems

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// GridPos is a grid coordinate in a level file.
type GridPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// LevelPortals lists the starting portals per faction.
type LevelPortals struct {
	Good []GridPos `yaml:"good"`
	Evil []GridPos `yaml:"evil"`
}

// Level is a starting layout. Level files are YAML; JSON files load too.
//
//	portals:
//	  good: [{x: 8, y: 9}]
//	  evil: [{x: 26, y: 9}, {x: 26, y: 3}]
type Level struct {
	Name    string       `yaml:"name,omitempty"`
	Portals LevelPortals `yaml:"portals"`
}

// LoadLevel decodes a level from r.
func LoadLevel(r io.Reader) (*Level, error) {
	var lvl Level
	if err := yaml.NewDecoder(r).Decode(&lvl); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	return &lvl, nil
}

// LoadLevelFile decodes the level stored at path.
func LoadLevelFile(path string) (*Level, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level: %w", err)
	}
	defer file.Close()
	return LoadLevel(file)
}

// ApplyLevel clears the field and places the level's portals. Every position
// is checked first, so a bad level leaves the field untouched.
func (f *PlayingField) ApplyLevel(lvl *Level) error {
	check := func(faction string, ps []GridPos) error {
		for _, p := range ps {
			c := f.CellAtGridPosition(p.X, p.Y)
			if c == nil {
				return fmt.Errorf("%s portal at (%d, %d): %w", faction, p.X, p.Y, ErrOutOfBounds)
			}
			if c.Type == SporeDeadzone {
				return fmt.Errorf("%s portal at (%d, %d): %w", faction, p.X, p.Y, ErrDeadzone)
			}
		}
		return nil
	}
	if err := check("good", lvl.Portals.Good); err != nil {
		return err
	}
	if err := check("evil", lvl.Portals.Evil); err != nil {
		return err
	}

	f.Clear()
	for _, p := range lvl.Portals.Good {
		f.makePortal(f.CellAtGridPosition(p.X, p.Y), SporeGoodPortal)
	}
	for _, p := range lvl.Portals.Evil {
		f.makePortal(f.CellAtGridPosition(p.X, p.Y), SporeEvilPortal)
	}
	return nil
}
