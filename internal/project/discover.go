// Package project implements the parts of spec.md §6.4 "Source file
// layout" this repo actually owns: recursive discovery of `.nyla` files
// under one or more source directories, internal-path derivation, and
// assembly of the resulting FileUnits into a Program the orchestrator can
// drive. Directory traversal and file I/O are ambient stack this repo
// must carry to be runnable end to end (SPEC_FULL.md §2); parsing itself
// stays behind the Parser contract in parser.go, an external collaborator
// this package never implements.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const sourceExt = ".nyla"

// DiscoveredFile is one source file found under a source directory, with
// its internal path already derived (spec.md §6.4: "the internal path of
// a file equals its directory-relative path with `.nyla` stripped").
type DiscoveredFile struct {
	SystemPath   string
	InternalPath string
}

// Discover walks every directory in srcDirs recursively, collecting every
// `.nyla` file. Two distinct system paths producing the same internal
// path is a structural error (spec.md §6.4, diag.ConflictingInternalPaths)
// and aborts discovery immediately, matching spec.md §7's propagation
// policy for structural errors.
func Discover(srcDirs []string) ([]DiscoveredFile, error) {
	var files []DiscoveredFile
	seen := make(map[string]string) // internal path -> first system path that produced it

	for _, dir := range srcDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve source directory %q: %w", dir, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to read source directory %q: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("failed to read source directory %q: not a directory", dir)
		}

		walkErr := filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("failed to read source directory %q: %w", dir, err)
			}
			if d.IsDir() {
				return nil
			}
			if strings.ToLower(filepath.Ext(path)) != sourceExt {
				return nil
			}
			rel, relErr := filepath.Rel(abs, path)
			if relErr != nil {
				return fmt.Errorf("failed to read source directory %q: %w", dir, relErr)
			}
			internal := toInternalPath(rel)
			if prior, dup := seen[internal]; dup {
				return fmt.Errorf("%s: conflicting internal path %q, already produced by %s", path, internal, prior)
			}
			seen[internal] = path
			files = append(files, DiscoveredFile{SystemPath: path, InternalPath: internal})
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].InternalPath < files[j].InternalPath })
	return files, nil
}

// toInternalPath strips the source extension and normalizes path
// separators to '/', so the same Nyla source tree produces identical
// internal paths on every host platform.
func toInternalPath(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, sourceExt)
}
