// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import "github.com/go4org/hashtriemap"

// CheckedUnits records the start offsets of units that were already checked
// in a run. It is safe for concurrent use. The zero value is an empty set.
type CheckedUnits struct {
	m hashtriemap.HashTrieMap[Pos, struct{}]
}

// Seen reports whether start was already recorded, recording it otherwise.
// The check and the insertion happen atomically.
func (s *CheckedUnits) Seen(start Pos) bool {
	_, loaded := s.m.LoadOrStore(start, struct{}{})
	return loaded
}

// Contains reports whether start was recorded, without recording it.
func (s *CheckedUnits) Contains(start Pos) bool {
	_, ok := s.m.Load(start)
	return ok
}

// Len returns the number of recorded units.
func (s *CheckedUnits) Len() int {
	var n int
	s.m.Range(func(Pos, struct{}) bool {
		n++
		return true
	})
	return n
}
