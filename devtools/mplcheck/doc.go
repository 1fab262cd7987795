// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Mplcheck reports source files that do not start with the MPL 2.0 license
header.

Usage:

	mplcheck [flags] [path ...]

Each path is a file or a directory, which is walked recursively. Without
paths the current directory is checked. Hidden, vendored and testdata
directories are skipped, as are paths ignored by the .gitignore file of a
walked directory.

Go, Rust, C, C++, JavaScript and TypeScript files are checked. The header
is the text before the first declaration of a file (for Go files, before the
package documentation, build constraints or package clause). It must be
within a tenth of the template's length in edits of:

	// This Source Code Form is subject to the terms of the Mozilla Public
	// License, v. 2.0. If a copy of the MPL was not distributed with this
	// file, You can obtain one at http://mozilla.org/MPL/2.0/.

Generated files are never checked.

The tool exits with a non-zero status if any file lacks the header.

With -fix, files that have no leading comment at all get the header
prepended. Files with some other leading comment are only reported.

With -watch, the check runs again whenever a source file changes, until
interrupted.

The tool is configured through the mplcheck.yaml member of the
.devtools.txtar file in the current directory, or through the file given
with -config. It can contain:

  - exclude: paths that are never checked. Entries ending with a slash
    match directories.
  - languages: languages to check (go, rust, c, cpp, javascript,
    typescript, tsx).
  - workers: number of files checked in parallel.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/mplcheck/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
