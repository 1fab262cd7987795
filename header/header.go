// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header checks that source files start with the MPL 2.0 license
// header.
//
// The check is host-agnostic: a host resolves source units through a
// [SourceProvider] and receives findings through a [Sink]. See the analyzer
// and source packages for the two hosts shipped with this module.
package header

import (
	"errors"
	"unicode/utf8"
)

// Template is the canonical license header every source file must start with.
const Template = `// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.`

const (
	// Message is the primary message of a missing header diagnostic.
	Message = "Missing MPL license header in source file."
	// HelpIntro introduces the template in the help text of a diagnostic.
	HelpIntro = "The license should look like this:"
)

// Help is the help text attached to every missing header diagnostic.
const Help = HelpIntro + "\n" + Template

var (
	// ErrInvalidEncoding is returned when the header region of a unit is not
	// valid UTF-8.
	ErrInvalidEncoding = errors.New("header region is not valid UTF-8")
	// ErrOutOfRange is returned when a declaration lies outside of the text of
	// the unit it was resolved to.
	ErrOutOfRange = errors.New("declaration offset out of range")
)

// Pos is an absolute offset in the source space of a host. Offsets of
// different units never overlap within one run.
type Pos int

// Span is a half-open range [Start, End) of absolute offsets.
type Span struct {
	Start Pos
	End   Pos
}

// Unit is one physical source file as seen by the host.
type Unit struct {
	// Name identifies the unit in diagnostics, usually a file path.
	Name string
	// Text is the full content of the unit.
	Text []byte
	// Start is the absolute offset of the first byte of Text.
	Start Pos
	// Real reports whether the unit is backed by a file written by a human.
	// Generated and otherwise synthetic units are never checked.
	Real bool
}

// Config holds the tunable constants of the check.
type Config struct {
	// ToleranceDivisor is the fraction of the template length, as 1/n, that a
	// header may differ from it by and still be accepted.
	ToleranceDivisor int
	// SpanWidth is the width in bytes of the span reported for a missing
	// header, anchored at the start of the first declaration.
	SpanWidth int
}

// DefaultConfig returns the configuration used by the shipped tools.
func DefaultConfig() Config {
	return Config{
		ToleranceDivisor: 10,
		SpanWidth:        1,
	}
}

// Tolerance returns the maximum edit distance accepted for template.
func (c Config) Tolerance(template string) int {
	if c.ToleranceDivisor <= 0 {
		return 0
	}
	return utf8.RuneCountInString(template) / c.ToleranceDivisor
}
