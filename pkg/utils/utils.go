package utils

import (
	"strings"
)

// SplitExt splits name into base name and extension at the last dot. Leading
// dots never start an extension, so ".bashrc" has none and "archive.tar.gz"
// has ".gz".
func SplitExt(name string) (base, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return name, ""
	}
	if strings.Trim(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// IsUsableName reports whether name can be used as a single directory entry.
func IsUsableName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
