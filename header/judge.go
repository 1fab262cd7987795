// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import "github.com/agnivade/levenshtein"

// Verdict is the outcome of comparing a header with the template.
type Verdict struct {
	Header     string // trimmed header region of the unit
	Distance   int    // edit distance between Header and the template
	Tolerance  int    // largest accepted Distance
	Acceptable bool
}

// Distance returns the Levenshtein distance between a and b, counted in
// runes. Insertions, deletions and substitutions all cost one.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Judge compares header with template and decides whether it is close enough
// under cfg.
func Judge(header, template string, cfg Config) Verdict {
	v := Verdict{
		Header:    header,
		Distance:  Distance(header, template),
		Tolerance: cfg.Tolerance(template),
	}
	v.Acceptable = v.Distance <= v.Tolerance
	return v
}
