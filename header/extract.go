// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Extract returns the first length bytes of text with surrounding whitespace
// removed. It fails if length is outside of text or the prefix is not valid
// UTF-8.
func Extract(text []byte, length int) (string, error) {
	if length < 0 || length > len(text) {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, length, len(text))
	}
	prefix := text[:length]
	if !utf8.Valid(prefix) {
		return "", ErrInvalidEncoding
	}
	return strings.TrimSpace(string(prefix)), nil
}
