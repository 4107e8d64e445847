package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultLibPath returns the directory searched for the ffmpeg binaries on
// the given GOOS.
func DefaultLibPath(goos string) string {
	switch goos {
	case "windows":
		return NormalizeRouteFor("C:/ffmpeg/bin/", '\\')
	case "darwin":
		return NormalizeRouteFor("/usr/local/bin/", '/')
	default:
		return NormalizeRouteFor("/usr/bin/", '/')
	}
}

// NormalizeRoute rewrites both slash kinds to the host separator and makes
// sure the route ends with one.
func NormalizeRoute(route string) string {
	return NormalizeRouteFor(route, os.PathSeparator)
}

// NormalizeRouteFor is NormalizeRoute for an explicit separator.
func NormalizeRouteFor(route string, sep rune) string {
	r := strings.Map(func(c rune) rune {
		if c == '/' || c == '\\' {
			return sep
		}
		return c
	}, route)
	if !strings.HasSuffix(r, string(sep)) {
		r += string(sep)
	}
	return r
}

func currentOS() string {
	return runtime.GOOS
}

// LibDir strips the trailing separator so the route can be used as a PATH
// entry.
func LibDir(route string) string {
	if len(route) > 1 {
		route = strings.TrimRight(route, `/\`)
	}
	return filepath.Clean(route)
}
