// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package source

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"go.astrophena.name/mplcheck/header"
)

// Language describes how to find the first declaration of a source file.
type Language struct {
	Name       string
	Extensions []string

	// parse adds the file to fset and returns the offset of its first
	// declaration relative to the start of src, and whether the file is
	// generated.
	parse func(fset *token.FileSet, name string, src []byte) (file *token.File, decl int, generated bool, err error)
}

// Languages lists the supported languages. All of them use // line comments,
// the syntax of the license header.
var Languages = []*Language{
	{Name: "go", Extensions: []string{".go"}, parse: parseGo},
	sitterLanguage("rust", rust.GetLanguage(), "line_comment", "block_comment", ".rs"),
	sitterLanguage("c", c.GetLanguage(), "comment", "", ".c", ".h"),
	sitterLanguage("cpp", cpp.GetLanguage(), "comment", "", ".cc", ".cpp", ".cxx", ".hh", ".hpp"),
	sitterLanguage("javascript", javascript.GetLanguage(), "comment", "", ".js", ".mjs", ".cjs", ".jsx"),
	sitterLanguage("typescript", typescript.GetLanguage(), "comment", "", ".ts", ".mts", ".cts"),
	sitterLanguage("tsx", tsx.GetLanguage(), "comment", "", ".tsx"),
}

// ForPath returns the language of the file at path, or nil if it is not
// supported.
func ForPath(path string) *Language {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range Languages {
		if slices.Contains(l.Extensions, ext) {
			return l
		}
	}
	return nil
}

// Lookup returns the language called name, or nil.
func Lookup(name string) *Language {
	for _, l := range Languages {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// GoDeclStart returns the position where the header region of f ends: the
// package doc comment, a build constraint, or the package clause, whichever
// comes first.
//
// A license header written directly above the package documentation or a
// build constraint shares its comment group, so the groups are split line by
// line.
func GoDeclStart(f *ast.File) token.Pos {
	start := f.Package
	if f.Doc != nil && f.Doc.Pos() < start {
		start = docStart(f.Doc)
	}
	for _, g := range f.Comments {
		if g.Pos() >= start {
			break
		}
		for _, c := range g.List {
			if c.Pos() >= start {
				break
			}
			if isDirective(c.Text) {
				return c.Pos()
			}
		}
	}
	return start
}

// docLineRe matches the conventional first line of package documentation.
var docLineRe = regexp.MustCompile(`^//\s*(Package|Command)\s`)

// docStart returns where the documentation in the package doc group g begins.
// Leading lines that form an accepted license header are not documentation.
func docStart(g *ast.CommentGroup) token.Pos {
	for i, c := range g.List {
		if i == 0 {
			continue
		}
		if strings.HasPrefix(c.Text, "/*") || docLineRe.MatchString(c.Text) || isLicense(g.List[:i]) {
			return c.Pos()
		}
	}
	return g.Pos()
}

func isLicense(lines []*ast.Comment) bool {
	texts := make([]string, len(lines))
	for i, c := range lines {
		texts[i] = c.Text
	}
	hdr := strings.TrimSpace(strings.Join(texts, "\n"))
	return header.Judge(hdr, header.Template, header.DefaultConfig()).Acceptable
}

func isDirective(text string) bool {
	return strings.HasPrefix(text, "//go:") || strings.HasPrefix(text, "// +build")
}

func parseGo(fset *token.FileSet, name string, src []byte) (*token.File, int, bool, error) {
	f, err := parser.ParseFile(fset, name, src, parser.ParseComments|parser.PackageClauseOnly)
	if err != nil {
		return nil, 0, false, err
	}
	file := fset.File(f.Pos())
	return file, file.Offset(GoDeclStart(f)), ast.IsGenerated(f), nil
}

// generatedRe matches the conventional marker of generated files.
var generatedRe = regexp.MustCompile(`(?m)^(//|/\*|#)\s*(Code generated .* DO NOT EDIT\.|@generated)`)

func sitterLanguage(name string, lang *sitter.Language, comment, blockComment string, exts ...string) *Language {
	isComment := func(typ string) bool {
		return typ == comment || (blockComment != "" && typ == blockComment)
	}
	return &Language{
		Name:       name,
		Extensions: exts,
		parse: func(fset *token.FileSet, filename string, src []byte) (*token.File, int, bool, error) {
			p := sitter.NewParser()
			defer p.Close()
			p.SetLanguage(lang)

			tree, err := p.ParseCtx(context.Background(), nil, src)
			if err != nil {
				return nil, 0, false, fmt.Errorf("%s: %w", filename, err)
			}
			defer tree.Close()

			decl := len(src)
			root := tree.RootNode()
			for i := 0; i < int(root.NamedChildCount()); i++ {
				child := root.NamedChild(i)
				if isComment(child.Type()) {
					continue
				}
				decl = int(child.StartByte())
				break
			}

			file := fset.AddFile(filename, -1, len(src))
			file.SetLinesForContent(src)
			return file, decl, generatedRe.Match(src[:decl]), nil
		},
	}
}
