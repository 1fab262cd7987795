// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package discover finds source files that should carry a license header.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"go.astrophena.name/mplcheck/config"
	"go.astrophena.name/mplcheck/source"
)

var skipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"testdata":     {},
	"target":       {}, // cargo build output
	"build":        {},
	"dist":         {},
}

// Files returns the checkable source files under roots. A root naming a
// file is returned if its language is checked and it is not excluded;
// directories are walked, skipping hidden and
// vendored directories and paths ignored by the root's .gitignore or
// excluded by cfg.
func Files(roots []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if checkable(root, root, cfg) {
				files = append(files, root)
			}
			continue
		}
		found, err := walk(root, cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// Dirs returns the directories Files would descend into under roots.
func Dirs(roots []string, cfg *config.Config) ([]string, error) {
	var dirs []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			dirs = append(dirs, filepath.Dir(root))
			continue
		}
		gi := loadGitignore(root)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDir(root, path, d.Name(), gi, cfg) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

func walk(root string, cfg *config.Config) ([]string, error) {
	gi := loadGitignore(root)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()

		if d.IsDir() {
			if path != root && skipDir(root, path, name, gi, cfg) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel := relPath(root, path)
		if !checkable(path, rel, cfg) || (gi != nil && gi.MatchesPath(rel)) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// checkable reports whether the file at path, known to cfg as rel, is in a
// supported and configured language and not excluded.
func checkable(path, rel string, cfg *config.Config) bool {
	lang := source.ForPath(path)
	if lang == nil || !cfg.Includes(lang.Name) {
		return false
	}
	return !cfg.IsExcluded(rel)
}

func skipDir(root, path, name string, gi *ignore.GitIgnore, cfg *config.Config) bool {
	if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
		return true
	}
	rel := relPath(root, path) + "/"
	return cfg.IsExcluded(rel) || (gi != nil && gi.MatchesPath(rel))
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
