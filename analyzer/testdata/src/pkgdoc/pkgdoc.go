// Copyright (c) Acme Corp.
// All rights reserved.

// Package pkgdoc has the wrong header. // want `Missing MPL license header in source file\.`
package pkgdoc
