package player

import "strings"

// FixURI makes a relative sound path usable by native media.
// Android needs an absolute path, built from the directory of the current
// document; other platforms accept the relative path as is.
func FixURI(relative, platform, document string) string {
	if !strings.EqualFold(platform, "android") {
		return relative
	}

	prefix := ""
	if i := strings.LastIndex(document, "/"); i >= 0 {
		prefix = document[:i]
	}

	return prefix + "/" + relative
}
