package daemon

import "strings"

func trimLeadingSlash(s string) string {
	return strings.TrimPrefix(s, "/")
}

func trimSlashes(s string) string {
	return strings.Trim(s, "/")
}
