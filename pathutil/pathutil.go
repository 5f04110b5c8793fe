// Package pathutil provides the path helpers used when wiring
// dictionaries to each other across directories.
package pathutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// RelativePath returns the relative path leading from fromDir to
// toPath, using parent ("..") segments where needed.
func RelativePath(fromDir, toPath string) (string, error) {
	rel, err := filepath.Rel(fromDir, toPath)
	if err != nil {
		return "", fmt.Errorf("resolving relative path from %s to %s: %w", fromDir, toPath, err)
	}
	return rel, nil
}

// HighestCommonRootFolder returns the deepest folder shared by all
// paths. Arguments may be files or folders; a path with an extension
// is treated as a file and replaced by its parent. Errors if paths is
// empty or the paths share no common root.
func HighestCommonRootFolder(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", errors.New("no paths given")
	}
	folders := make([][]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		if filepath.Ext(abs) != "" {
			abs = filepath.Dir(abs)
		}
		folders = append(folders, splitPath(abs))
	}
	if len(folders) == 1 {
		return joinPath(folders[0]), nil
	}
	shortest := folders[0]
	for _, f := range folders[1:] {
		if len(f) < len(shortest) {
			shortest = f
		}
	}
	var common []string
	for i, part := range shortest {
		for _, f := range folders {
			if f[i] != part {
				if len(common) == 0 {
					return "", errors.New("paths share no common root folder")
				}
				return joinPath(common), nil
			}
		}
		common = append(common, part)
	}
	return joinPath(common), nil
}

func splitPath(p string) []string {
	vol := filepath.VolumeName(p)
	rest := strings.TrimPrefix(p[len(vol):], string(filepath.Separator))
	parts := []string{vol + string(filepath.Separator)}
	if rest != "" {
		parts = append(parts, strings.Split(rest, string(filepath.Separator))...)
	}
	return parts
}

func joinPath(parts []string) string {
	return filepath.Join(parts...)
}
