// Package campaign loads an ordered list of levels from a YAML manifest.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/snapshot"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrNoSuchLevel = errors.New("no such level")

// Level is one manifest entry. File is relative to the manifest unless
// absolute.
type Level struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	Briefing string `yaml:"briefing,omitempty"`
}

// Manifest is the YAML document
type Manifest struct {
	Name   string  `yaml:"name"`
	Levels []Level `yaml:"levels"`
}

// Campaign is a loaded manifest bound to the filesystem holding its levels
type Campaign struct {
	fs       afero.Fs
	dir      string
	manifest Manifest
}

func loadYAML(fs afero.Fs, path string, out any) error {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads and validates the manifest at path
func Load(fs afero.Fs, path string) (*Campaign, error) {
	var m Manifest
	if err := loadYAML(fs, path, &m); err != nil {
		return nil, fmt.Errorf("load campaign %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("campaign %s: %w", path, err)
	}
	return &Campaign{fs: fs, dir: filepath.Dir(path), manifest: m}, nil
}

// Validate checks that there is at least one level and that every level
// has a unique name and a file
func (m Manifest) Validate() error {
	if len(m.Levels) == 0 {
		return errors.New("no levels")
	}
	names := make(map[string]bool, len(m.Levels))
	for i, l := range m.Levels {
		if l.File == "" {
			return fmt.Errorf("level %d has no file", i)
		}
		if l.Name == "" {
			continue
		}
		if names[l.Name] {
			return fmt.Errorf("level name %q is used twice", l.Name)
		}
		names[l.Name] = true
	}
	return nil
}

// Name returns the campaign title
func (c *Campaign) Name() string { return c.manifest.Name }

// Len returns the number of levels
func (c *Campaign) Len() int { return len(c.manifest.Levels) }

// Level returns the i-th level, counting from 0. Unnamed levels are named
// after their position.
func (c *Campaign) Level(i int) (Level, error) {
	if i < 0 || i >= len(c.manifest.Levels) {
		return Level{}, fmt.Errorf("%w: %d of %d", ErrNoSuchLevel, i, len(c.manifest.Levels))
	}
	l := c.manifest.Levels[i]
	if l.Name == "" {
		l.Name = fmt.Sprintf("Level %d", i+1)
	}
	return l, nil
}

// Next returns the index after i; ok is false after the last level
func (c *Campaign) Next(i int) (next int, ok bool) {
	if i+1 >= len(c.manifest.Levels) || i < -1 {
		return 0, false
	}
	return i + 1, true
}

// Path resolves the level file against the manifest directory
func (c *Campaign) Path(i int) (string, error) {
	l, err := c.Level(i)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(l.File) {
		return l.File, nil
	}
	return filepath.Join(c.dir, l.File), nil
}

// Read decodes the snapshot of the i-th level
func (c *Campaign) Read(i int) (*core.Board, []core.Entity, error) {
	p, err := c.Path(i)
	if err != nil {
		return nil, nil, err
	}
	return snapshot.ReadFile(c.fs, p)
}

// NewModel starts the i-th level. cfg supplies everything but the board
// and units.
func (c *Campaign) NewModel(ctx context.Context, i int, cfg game.ModelConfig) (*game.Model, error) {
	board, entities, err := c.Read(i)
	if err != nil {
		return nil, err
	}
	cfg.Board = board
	cfg.Entities = entities
	return game.NewModel(ctx, cfg)
}
