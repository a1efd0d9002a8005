// Package filex holds the small filesystem helpers used for report exports.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// SafeName lower-cases s, turns runs of whitespace into a single
// underscore and strips path separators, e.g. "Open Cup  2025" -> "open_cup_2025".
func SafeName(s string) string {
	s = strings.TrimSpace(s)
	s = whitespace.ReplaceAllString(s, "_")
	s = strings.NewReplacer("/", "", "\\", "", "..", "").Replace(s)
	return strings.ToLower(s)
}

// WriteFile stores data as dir/name, creating dir if needed, and returns the
// full path written.
func WriteFile(dir, name string, data []byte) (string, error) {
	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(abs, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
