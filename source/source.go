// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package source resolves source files on disk into units for the header
// checker.
//
// Go files are parsed with [go/parser]; other languages with tree-sitter.
// All files loaded by one [Provider] share a [token.FileSet], so their
// offsets form a single coordinate space.
package source

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"go.astrophena.name/mplcheck/header"
	"go.astrophena.name/mplcheck/syncx"
)

// ErrUnsupported is returned when loading a file of an unknown language.
var ErrUnsupported = errors.New("unsupported language")

// Provider loads files and serves them as units. It implements
// [header.SourceProvider] and is safe for concurrent use.
type Provider struct {
	fset  *token.FileSet
	files syncx.Map[string, *file] // keyed by absolute path
	names syncx.Map[string, *file] // keyed by token.File name
}

type file struct {
	load syncx.Lazy[loaded]
}

type loaded struct {
	unit *header.Unit
	decl header.Span
}

// NewProvider returns an empty Provider.
func NewProvider() *Provider {
	return &Provider{fset: token.NewFileSet()}
}

// FileSet returns the file set holding every loaded file.
func (p *Provider) FileSet() *token.FileSet { return p.fset }

// Load reads and parses the file at path, returning the span of its first
// declaration. Loading the same file again returns the cached result, so the
// file keeps its offsets.
func (p *Provider) Load(path string) (header.Span, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return header.Span{}, err
	}
	f := p.files.LoadOrCompute(abs, func() *file { return new(file) })
	l, err := f.load.GetErr(func() (loaded, error) { return p.parse(path, f) })
	return l.decl, err
}

func (p *Provider) parse(path string, f *file) (loaded, error) {
	lang := ForPath(path)
	if lang == nil {
		return loaded{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return loaded{}, err
	}
	tf, decl, generated, err := lang.parse(p.fset, path, src)
	if err != nil {
		return loaded{}, err
	}
	start := header.Pos(tf.Base())
	l := loaded{
		unit: &header.Unit{
			Name:  path,
			Text:  src,
			Start: start,
			Real:  !generated,
		},
		decl: header.Span{Start: start + header.Pos(decl), End: start + header.Pos(decl)},
	}
	p.names.LoadOrCompute(tf.Name(), func() *file { return f })
	return l, nil
}

// Unit returns the loaded unit containing pos.
func (p *Provider) Unit(pos header.Pos) (*header.Unit, error) {
	tf := p.fset.File(token.Pos(pos))
	if tf == nil {
		return nil, fmt.Errorf("no file at offset %d", pos)
	}
	f, ok := p.names.Load(tf.Name())
	if !ok {
		return nil, fmt.Errorf("file %s was not loaded", tf.Name())
	}
	l, err := f.load.GetErr(func() (loaded, error) {
		return loaded{}, fmt.Errorf("file %s is still loading", tf.Name())
	})
	if err != nil {
		return nil, err
	}
	return l.unit, nil
}

// Position converts pos to a human-readable position.
func (p *Provider) Position(pos header.Pos) token.Position {
	return p.fset.Position(token.Pos(pos))
}
