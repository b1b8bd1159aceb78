package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Ext is the extension given to saved snapshots
const Ext = ".txt"

// Store keeps snapshots as files in one directory of a filesystem
type Store struct {
	fs     afero.Fs
	dir    string
	logger zerolog.Logger
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(fs afero.Fs, dir string, logger zerolog.Logger) *Store {
	return &Store{
		fs:     fs,
		dir:    dir,
		logger: logger.With().Str("component", "SnapshotStore").Str("dir", dir).Logger(),
	}
}

// Dir returns the directory snapshots are kept in
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid snapshot name %q", name)
	}
	if path.Ext(name) == "" {
		name += Ext
	}
	return path.Join(s.dir, name), nil
}

// Save writes the model under name. Saving is only allowed at the start of
// a turn; otherwise core.ErrNotReadyToSave is returned and nothing is
// written.
func (s *Store) Save(name string, m *game.Model) error {
	if !m.ReadyToSave() {
		s.logger.Debug().Str("name", name).Msg("Save refused mid-turn")
		return core.ErrNotReadyToSave
	}
	p, err := s.path(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, m.Board(), m.Entities()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	// Replace any existing save whole
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info().Str("file", p).Str("game_id", m.GameID()).Int("turn", m.Turn()).Msg("Snapshot saved")
	return nil
}

// Read decodes the snapshot stored under name
func (s *Store) Read(name string) (*core.Board, []core.Entity, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, nil, err
	}
	return ReadFile(s.fs, p)
}

// Load builds a new model from the snapshot stored under name. cfg supplies
// everything but the board and units.
func (s *Store) Load(ctx context.Context, name string, cfg game.ModelConfig) (*game.Model, error) {
	board, entities, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	cfg.Board = board
	cfg.Entities = entities
	m, err := game.NewModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	s.logger.Info().Str("name", name).Str("game_id", m.GameID()).Msg("Snapshot loaded")
	return m, nil
}

// List returns the names of saved snapshots, sorted, without extension
func (s *Store) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var names []string
	for _, info := range infos {
		if info.IsDir() || path.Ext(info.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(info.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the snapshot stored under name
func (s *Store) Delete(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return s.fs.Remove(p)
}

// ReadFile decodes the snapshot at p. Decoding errors are annotated with
// the file name.
func ReadFile(fs afero.Fs, p string) (*core.Board, []core.Entity, error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	board, entities, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", p, err)
	}
	return board, entities, nil
}
