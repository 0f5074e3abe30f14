package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigNames are the file names FindConfig looks for, in order.
var ConfigNames = []string{"lifeline.yaml", "lifeline.yml", "lifeline.toml", "lifeline.json"}

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists checks if the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// FindConfig returns the first ConfigNames entry present in one of dirs.
// Dirs may start with '~'. It returns "" when nothing is found.
func FindConfig(dirs ...string) string {
	for _, d := range dirs {
		base, err := ExpandHome(d)
		if err != nil {
			continue
		}
		for _, name := range ConfigNames {
			p := filepath.Join(base, name)
			if !PathExists(p) {
				continue
			}
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p
			}
		}
	}
	return ""
}
