// Package colors assigns Google Calendar color ids per block kind, with an
// optional user override file.
package colors

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lockinhq/liquid/pkg/model"
)

const (
	xdgAppName  = "liquid"
	paletteFile = "kind_colors.json"
)

// Google Calendar event color ids.
var defaults = map[model.BlockKind]string{
	model.KindDeepWork: "9",  // blueberry
	model.KindMeeting:  "11", // tomato
	model.KindExternal: "8",  // graphite
}

type Palette struct {
	Overrides map[model.BlockKind]string `json:"overrides"`
	Path      string                     `json:"-"`
}

func NewPalette() (*Palette, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", xdgAppName, paletteFile)

	p := &Palette{
		Path:      path,
		Overrides: make(map[model.BlockKind]string),
	}
	if _, err := os.Stat(path); err == nil {
		if err := p.Load(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Palette) Load() error {
	f, err := os.Open(p.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&p.Overrides)
}

// ColorID resolves the color for a kind: user override, stock default, or
// lavender as the last resort.
func (p *Palette) ColorID(kind model.BlockKind) string {
	if p != nil {
		if id, ok := p.Overrides[kind]; ok {
			return id
		}
	}
	if id, ok := defaults[kind]; ok {
		return id
	}
	return "1"
}
