// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"context"
	"fmt"
	"log/slog"

	"go.astrophena.name/mplcheck/logger"
)

// SourceProvider resolves absolute offsets to the units containing them.
type SourceProvider interface {
	// Unit returns the unit that contains pos.
	Unit(pos Pos) (*Unit, error)
}

// Sink receives diagnostics produced by a [Checker].
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc is an adapter to allow the use of ordinary functions as a [Sink].
type SinkFunc func(Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Severity is the severity of a diagnostic.
type Severity int

// Warning is the only severity this package emits.
const Warning Severity = iota

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic describes a unit with a missing license header.
type Diagnostic struct {
	Severity Severity
	Span     Span
	Unit     string
	Message  string
	Help     string
	Verdict  Verdict
}

// Fixable reports whether the header region of the unit is empty, so that
// prepending the template resolves the diagnostic without clobbering
// anything.
func (d Diagnostic) Fixable() bool { return d.Verdict.Header == "" }

// Outcome tells what happened to a single check.
type Outcome int

const (
	// Synthetic means the unit is not a real file and was skipped.
	Synthetic Outcome = iota
	// Duplicate means the unit was already checked in this run.
	Duplicate
	// Acceptable means the unit has the license header.
	Acceptable
	// Missing means the unit lacks the header and a diagnostic was reported.
	Missing
)

var outcomeNames = [...]string{
	Synthetic:  "synthetic",
	Duplicate:  "duplicate",
	Acceptable: "acceptable",
	Missing:    "missing",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Result is returned by [Checker.Check].
type Result struct {
	Outcome Outcome
	// Verdict is set when Outcome is Acceptable or Missing.
	Verdict Verdict
}

// Checker checks license headers of units during one run. Each unit is
// checked at most once per Checker.
type Checker struct {
	cfg     Config
	checked CheckedUnits
}

// New returns a Checker with an empty set of checked units.
func New(cfg Config) *Checker {
	return &Checker{cfg: cfg}
}

// Checked returns the set of units checked so far.
func (c *Checker) Checked() *CheckedUnits { return &c.checked }

// Check checks the unit containing the declaration decl. The unit is resolved
// through src, and a diagnostic is sent to sink if its header is missing.
//
// A non-nil error means the host handed over offsets that do not fit the
// unit's text; no diagnostic is reported in that case.
func (c *Checker) Check(ctx context.Context, src SourceProvider, sink Sink, decl Span) (Result, error) {
	unit, err := src.Unit(decl.Start)
	if err != nil {
		return Result{}, fmt.Errorf("resolving unit at %d: %w", decl.Start, err)
	}
	if !unit.Real {
		logger.Debug(ctx, "skipping synthetic unit", slog.String("unit", unit.Name))
		return Result{Outcome: Synthetic}, nil
	}
	if c.checked.Seen(unit.Start) {
		logger.Debug(ctx, "skipping checked unit", slog.String("unit", unit.Name))
		return Result{Outcome: Duplicate}, nil
	}

	hdr, err := Extract(unit.Text, int(decl.Start-unit.Start))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", unit.Name, err)
	}

	v := Judge(hdr, Template, c.cfg)
	logger.Debug(ctx, "judged header",
		slog.String("unit", unit.Name),
		slog.Int("distance", v.Distance),
		slog.Int("tolerance", v.Tolerance),
	)
	if v.Acceptable {
		return Result{Outcome: Acceptable, Verdict: v}, nil
	}

	sink.Report(Diagnostic{
		Severity: Warning,
		Span:     Span{Start: decl.Start, End: decl.Start + Pos(c.cfg.SpanWidth)},
		Unit:     unit.Name,
		Message:  Message,
		Help:     Help,
		Verdict:  v,
	})
	return Result{Outcome: Missing, Verdict: v}, nil
}
