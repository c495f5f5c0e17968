package util

import (
	"log"
	"unicode/utf8"
)

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// InternalError reports a violated invariant. These are programming
// errors in the caller and are never recoverable.
func InternalError(s string, err error) {
	log.Panicf("textpad: %s: %v\n", s, err)
}

// ValidPrefix returns the longest prefix of p that does not end in a
// partial UTF-8 sequence. Bytes that are simply invalid are kept.
func ValidPrefix(p []byte) []byte {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if utf8.RuneStart(p[i]) {
			if !utf8.FullRune(p[i:]) {
				return p[:i]
			}
			break
		}
	}
	return p
}
