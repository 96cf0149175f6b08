package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BaseName is the conventional file stem looked up at a project root.
const BaseName = "fumadocs.config"

// ConventionalNames lists the file names Discover looks for, in priority order.
var ConventionalNames = []string{
	BaseName + ".js",
	BaseName + ".mjs",
	BaseName + ".cjs",
	BaseName + ".yaml",
	BaseName + ".yml",
	BaseName + ".json",
	BaseName + ".toml",
}

// FileName returns the conventional file name for a format.
func FileName(format Format) string {
	if format == FormatYAML {
		return BaseName + ".yaml"
	}
	return BaseName + "." + string(format)
}

// Discover returns the path of the first conventional site config file in dir.
func Discover(dir string) (string, error) {
	for _, name := range ConventionalNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", err
		}
		if info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNotFound, dir, strings.Join(ConventionalNames, ", "))
}
