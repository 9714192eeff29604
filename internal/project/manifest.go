package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the optional `nyla.toml` project file (SPEC_FULL.md §6,
// mirrored after the teacher's `surge.toml` [package] section in
// internal/project/modulemeta.go): it names the entry unit and the
// default executable name so `nylac` can be invoked without repeating
// `-name` on every build. The bare CLI-flag surface of spec.md §6.1
// still works with no manifest present at all.
type Manifest struct {
	Entry        string `toml:"entry"`
	ExecutableName string `toml:"executable_name"`
}

// LoadManifest reads and parses path. A missing or malformed file is an
// error; the underlying cause is wrapped, so errors.Is(err, fs.ErrNotExist)
// detects a missing file. Treating an absent manifest as "none" is
// FindManifest's job, the way the teacher's FindSurgeToml does it.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &m, nil
}

// FindManifest walks up from startDir looking for nyla.toml, mirroring
// the teacher's FindSurgeToml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "nyla.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(statErr) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
