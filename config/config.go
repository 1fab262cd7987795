// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the optional configuration of mplcheck.
//
// The configuration is a YAML document. It is read either from a plain
// YAML file or from the mplcheck.yaml member of a txtar archive, such as
// the .devtools.txtar file shared by the devtools of a repository:
//
//	-- mplcheck.yaml --
//	# Vendored code keeps its upstream license.
//	exclude:
//	  - third_party/
//	  - internal/unionfs/unionfs.go
//	languages: [go, rust]
//	workers: 4
//
// The license template itself is not configurable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"go.astrophena.name/mplcheck/source"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = ".devtools.txtar"

// Member is the name of the configuration inside a txtar archive.
const Member = "mplcheck.yaml"

// Config is the configuration of mplcheck.
type Config struct {
	// Exclude lists paths that are never checked. An entry matches paths
	// ending with it at a path separator; an entry ending with a slash matches
	// every path inside a directory of that name.
	Exclude []string `yaml:"exclude"`
	// Languages restricts checking to the named languages. Empty means all
	// supported languages.
	Languages []string `yaml:"languages"`
	// Workers is the number of files checked in parallel. Zero means one per
	// CPU.
	Workers int `yaml:"workers"`
}

// Load reads the configuration at path. A missing [DefaultPath] yields the
// zero Config; any other missing file is an error.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
		return new(Config), nil
	}
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == ".txtar" {
		ar := txtar.Parse(b)
		b = nil
		for _, f := range ar.Files {
			if f.Name == Member {
				b = f.Data
				break
			}
		}
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates a YAML configuration. Empty input yields the
// zero Config.
func Parse(b []byte) (*Config, error) {
	cfg := new(Config)
	if len(strings.TrimSpace(string(b))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Member, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	for _, name := range c.Languages {
		if source.Lookup(name) == nil {
			errs = append(errs, fmt.Errorf("unknown language %q", name))
		}
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	for _, ex := range c.Exclude {
		if strings.TrimSpace(ex) == "" {
			errs = append(errs, errors.New("empty exclude entry"))
		}
	}
	return errors.Join(errs...)
}

// IsExcluded reports whether path must not be checked.
func (c *Config) IsExcluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, ex := range c.Exclude {
		if dir, ok := strings.CutSuffix(ex, "/"); ok {
			if strings.HasPrefix(path, dir+"/") || strings.Contains(path, "/"+dir+"/") {
				return true
			}
			continue
		}
		if path == ex || strings.HasSuffix(path, "/"+ex) {
			return true
		}
	}
	return false
}

// Includes reports whether files in language lang are checked.
func (c *Config) Includes(lang string) bool {
	if len(c.Languages) == 0 {
		return true
	}
	return slices.Contains(c.Languages, lang)
}
