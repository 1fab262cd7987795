// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Mplvet reports Go source files that do not start with the MPL 2.0 license
// header.
//
// It is a standalone driver for the analyzer in the analyzer package and
// accepts the usual go vet style flags and package patterns:
//
//	mplvet ./...
//	mplvet -fix ./...
//
// With -fix, files without any leading comment get the header inserted. It
// can also be used as a vet tool:
//
//	go vet -vettool=$(which mplvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"go.astrophena.name/mplcheck/analyzer"
)

func main() { singlechecker.Main(analyzer.Analyzer) }
