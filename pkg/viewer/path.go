package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned by ExpandPath for blank input.
var ErrEmptyPath = errors.New("viewer: empty path")

// ExpandPath trims s, replaces a leading ~ with the home directory and
// expands $VAR and ${VAR} references.
func ExpandPath(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyPath
	}

	if s == "~" || strings.HasPrefix(s, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		s = filepath.Join(home, s[1:])
	}

	s = os.ExpandEnv(s)
	if s == "" {
		return "", ErrEmptyPath
	}
	return filepath.Clean(s), nil
}
