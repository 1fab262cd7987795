// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package report collects header diagnostics and renders them.
package report

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"go/token"
	"io"
	"slices"
	"strings"

	"github.com/google/licensecheck"

	"go.astrophena.name/mplcheck/header"
	"go.astrophena.name/mplcheck/syncx"
)

// Finding is a diagnostic resolved to a file position.
type Finding struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Offset    int    `json:"offset"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Help      string `json:"help"`
	Distance  int    `json:"distance"`
	Tolerance int    `json:"tolerance"`
	Fixable   bool   `json:"fixable"`
	// License is the identifier of another license found in the header, if
	// any.
	License string `json:"license,omitempty"`
}

// Positioner converts absolute offsets to file positions.
type Positioner interface {
	Position(header.Pos) token.Position
}

// Collector is a [header.Sink] that keeps every diagnostic. It is safe for
// concurrent use.
type Collector struct {
	pos      Positioner
	findings syncx.Protected[[]Finding]
}

// NewCollector returns a Collector resolving positions with pos.
func NewCollector(pos Positioner) *Collector {
	return &Collector{pos: pos}
}

// Report implements [header.Sink].
func (c *Collector) Report(d header.Diagnostic) {
	p := c.pos.Position(d.Span.Start)
	f := Finding{
		File:      cmp.Or(p.Filename, d.Unit),
		Line:      p.Line,
		Column:    p.Column,
		Offset:    p.Offset,
		Severity:  d.Severity.String(),
		Message:   d.Message,
		Help:      d.Help,
		Distance:  d.Verdict.Distance,
		Tolerance: d.Verdict.Tolerance,
		Fixable:   d.Fixable(),
		License:   detect(d.Verdict.Header),
	}
	c.findings.Write(func(fs *[]Finding) { *fs = append(*fs, f) })
}

// detect returns the identifier of the first known license in hdr.
func detect(hdr string) string {
	if hdr == "" {
		return ""
	}
	cov := licensecheck.Scan([]byte(hdr))
	if len(cov.Match) == 0 {
		return ""
	}
	return cov.Match[0].ID
}

// Findings returns the collected findings ordered by file and position.
func (c *Collector) Findings() []Finding {
	var out []Finding
	c.findings.Read(func(fs []Finding) { out = slices.Clone(fs) })
	slices.SortFunc(out, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Offset, b.Offset),
		)
	})
	return out
}

// Format is an output format. It implements [flag.Value].
type Format string

// Supported formats.
const (
	Text Format = "text"
	JSON Format = "json"
	HTML Format = "html"
)

// String implements [flag.Value].
func (f *Format) String() string { return string(*f) }

// Set implements [flag.Value].
func (f *Format) Set(s string) error {
	switch Format(s) {
	case Text, JSON, HTML:
		*f = Format(s)
		return nil
	default:
		return fmt.Errorf("unknown format %q, want one of text, json, html", s)
	}
}

// Write renders findings to w in format f.
func (f Format) Write(ctx context.Context, w io.Writer, findings []Finding) error {
	switch f {
	case Text, "":
		return WriteText(w, findings)
	case JSON:
		return WriteJSON(w, findings)
	case HTML:
		return WriteHTML(ctx, w, findings)
	default:
		return fmt.Errorf("unknown format %q", string(f))
	}
}

// WriteText writes findings in the classic compiler format, one warning per
// file followed by the indented help text.
func WriteText(w io.Writer, findings []Finding) error {
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", f.File, f.Line, f.Column, f.Severity, f.Message); err != nil {
			return err
		}
		for line := range strings.SplitSeq(f.Help, "\n") {
			if _, err := fmt.Fprintf(w, "\t%s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes findings as an indented JSON array.
func WriteJSON(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}
