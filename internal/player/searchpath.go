package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// AddSearchPath puts dir in front of PATH so the decoder finds ffmpeg and
// ffprobe there first. Adding a directory twice is a no-op.
func AddSearchPath(dir string) error {
	if dir == "" {
		return nil
	}
	dir = filepath.Clean(dir)

	current := os.Getenv("PATH")
	for _, entry := range filepath.SplitList(current) {
		if filepath.Clean(entry) == dir {
			return nil
		}
	}

	if current == "" {
		return os.Setenv("PATH", dir)
	}
	return os.Setenv("PATH", strings.Join([]string{dir, current}, string(os.PathListSeparator)))
}

// CheckInstallation verifies that ffmpeg and ffprobe are reachable.
func CheckInstallation() error {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s is not installed or not in PATH: %w", bin, err)
		}
	}
	return nil
}
