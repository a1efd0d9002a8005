package common

import "strings"

// WipeByteArray overwrites b with zeros. Used to drop passwords from memory
// once they have been sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// FirstNonEmpty returns the first value that is not blank after trimming,
// or "" when all are blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
