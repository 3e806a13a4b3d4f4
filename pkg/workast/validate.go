package workast

import (
	"strings"
	"time"
)

func isNonEmpty(s string) bool { return len(s) > 0 }

func isIntInRange(n, min, max int) bool { return n >= min && n <= max }

// isWholeMillis reports whether d is a whole number of milliseconds of at
// least one millisecond.
func isWholeMillis(d time.Duration) bool {
	return d >= time.Millisecond && d%time.Millisecond == 0
}

func isAllowedMethod(m string) bool {
	for _, allowed := range AllowedMethods {
		if m == allowed {
			return true
		}
	}
	return false
}

// trimBaseURL strips a single trailing slash.
func trimBaseURL(base string) string {
	return strings.TrimSuffix(base, "/")
}

// normalizeURL joins base and path with exactly the slash the base lacks.
//
//	normalizeURL("https://example.com/", "posts")  // https://example.com/posts
//	normalizeURL("https://example.com", "/posts")  // https://example.com/posts
func normalizeURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return trimBaseURL(base) + path
}
