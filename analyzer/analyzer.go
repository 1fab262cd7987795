// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package analyzer exposes the license header check as an
// [analysis.Analyzer], so it runs inside go vet and other analysis drivers.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"io/fs"
	"runtime"
	"weak"

	"golang.org/x/tools/go/analysis"

	"go.astrophena.name/mplcheck/header"
	"go.astrophena.name/mplcheck/source"
	"go.astrophena.name/mplcheck/syncx"
)

const doc = `check that Go files start with the MPL 2.0 license header

The mplheader analyzer reports files whose leading comment, up to the
package documentation, build constraints or package clause, differs from

` + header.Template + `

by more than a tenth of its length. Generated files are ignored. Files
without any leading comment get a suggested fix that inserts the header.`

// Analyzer reports Go files without the MPL license header.
var Analyzer = New()

// New returns a new analyzer with its own record of checked files.
func New() *analysis.Analyzer {
	r := &runner{cfg: header.DefaultConfig()}
	return &analysis.Analyzer{
		Name: "mplheader",
		Doc:  doc,
		Run:  r.run,
	}
}

type runner struct {
	cfg header.Config
	// A driver loads all packages into one file set, so each file set is a
	// run with its own set of checked files. Entries are dropped once their
	// file set is garbage collected.
	checkers syncx.Map[weak.Pointer[token.FileSet], *header.Checker]
}

// checker returns the Checker of the run that fset belongs to.
func (r *runner) checker(fset *token.FileSet) *header.Checker {
	key := weak.Make(fset)
	return r.checkers.LoadOrCompute(key, func() *header.Checker {
		runtime.AddCleanup(fset, r.checkers.Delete, key)
		return header.New(r.cfg)
	})
}

func (r *runner) run(pass *analysis.Pass) (any, error) {
	c := r.checker(pass.Fset)
	src := &passSource{pass: pass}
	sink := header.SinkFunc(func(d header.Diagnostic) { report(pass, d) })

	for _, f := range pass.Files {
		decl := source.GoDeclStart(f)
		span := header.Span{Start: header.Pos(decl), End: header.Pos(f.Name.End())}
		if _, err := c.Check(context.Background(), src, sink, span); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// passSource serves the files of a pass as units.
type passSource struct {
	pass *analysis.Pass
}

func (s *passSource) Unit(pos header.Pos) (*header.Unit, error) {
	tf := s.pass.Fset.File(token.Pos(pos))
	if tf == nil {
		return nil, fmt.Errorf("no file at offset %d", pos)
	}
	f := s.astFile(tf)
	if f == nil {
		return nil, fmt.Errorf("file %s is not part of package %s", tf.Name(), s.pass.Pkg.Path())
	}
	unit := &header.Unit{
		Name:  tf.Name(),
		Start: header.Pos(tf.Base()),
	}
	if ast.IsGenerated(f) {
		return unit, nil
	}
	text, err := s.pass.ReadFile(tf.Name())
	if errors.Is(err, fs.ErrNotExist) {
		// Not backed by a file on disk, like cgo output.
		return unit, nil
	}
	if err != nil {
		return nil, err
	}
	unit.Text = text
	unit.Real = true
	return unit, nil
}

func (s *passSource) astFile(tf *token.File) *ast.File {
	for _, f := range s.pass.Files {
		if s.pass.Fset.File(f.FileStart) == tf {
			return f
		}
	}
	return nil
}

func report(pass *analysis.Pass, d header.Diagnostic) {
	diag := analysis.Diagnostic{
		Pos:      token.Pos(d.Span.Start),
		End:      token.Pos(d.Span.End),
		Category: "license",
		Message:  d.Message,
		Related: []analysis.RelatedInformation{{
			Pos:     token.Pos(d.Span.Start),
			Message: d.Help,
		}},
	}
	if d.Fixable() {
		tf := pass.Fset.File(token.Pos(d.Span.Start))
		start := token.Pos(tf.Base())
		diag.SuggestedFixes = []analysis.SuggestedFix{{
			Message: "Add MPL license header",
			TextEdits: []analysis.TextEdit{{
				Pos:     start,
				End:     start,
				NewText: []byte(header.Template + "\n\n"),
			}},
		}}
	}
	pass.Report(diag)
}
