// Package fixtures provides the sample leaderboard and influencer payloads
// used in mock mode and as the fallback when live data cannot be fetched.
//
// The payloads are embedded in the binary. A local directory can shadow
// them file by file, so sample data can be edited without a rebuild.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rshade/trustboard/internal/engine"
)

// File names looked up in a fixture filesystem.
const (
	LeaderboardFile = "leaderboard.json"
	InfluencerFile  = "influencer.json"
)

//go:embed data/*.json
var rawData embed.FS

// Embedded is the embedded fixture filesystem with the "data/" prefix stripped.
//
//nolint:gochecknoglobals // Immutable embedded filesystem.
var Embedded = mustSub(rawData, "data")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to embedded for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := os.Open(filepath.Join(o.localDir, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}

// Set loads fixture payloads from a filesystem. Every call decodes a fresh
// value, so callers may mutate what they get back.
type Set struct {
	fsys fs.FS
}

// New returns a Set reading from fsys.
func New(fsys fs.FS) *Set {
	return &Set{fsys: fsys}
}

// Default returns a Set backed by the embedded payloads. When dir is
// non-empty, files in dir take precedence.
func Default(dir string) *Set {
	if dir == "" {
		return New(Embedded)
	}
	return New(OverlayFS(dir, Embedded))
}

// Leaderboard decodes and validates the leaderboard fixture.
func (s *Set) Leaderboard() (engine.Leaderboard, error) {
	var lb engine.Leaderboard
	if err := s.decode(LeaderboardFile, &lb); err != nil {
		return engine.Leaderboard{}, err
	}
	if err := lb.Validate(); err != nil {
		return engine.Leaderboard{}, fmt.Errorf("fixture %s: %w", LeaderboardFile, err)
	}
	return lb, nil
}

// Influencer decodes and validates the influencer fixture.
func (s *Set) Influencer() (engine.Payload, error) {
	var p engine.Payload
	if err := s.decode(InfluencerFile, &p); err != nil {
		return engine.Payload{}, err
	}
	if err := p.Validate(); err != nil {
		return engine.Payload{}, fmt.Errorf("fixture %s: %w", InfluencerFile, err)
	}
	return p, nil
}

func (s *Set) decode(name string, v any) error {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("fixture %s not found: %w", name, err)
		}
		return fmt.Errorf("reading fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing fixture %s: %w", name, err)
	}
	return nil
}
