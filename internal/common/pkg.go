package common

import (
	"path"
	"strconv"
	"strings"
)

// PkgAlias returns the identifier an import path is referred to by when no
// alias is given. A trailing major version element such as "/v2" is
// skipped. Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	return strings.ReplaceAll(base, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	n, err := strconv.Atoi(s[1:])

	return err == nil && n >= 2
}
