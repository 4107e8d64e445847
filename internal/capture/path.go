package capture

import (
	"fmt"
	"path/filepath"
	"strings"
)

const fallbackDirName = "capture"

// BaseName is the last segment of source, splitting on both '/' and '\'
// whatever the host OS. The extension is kept, so
// "/home/user/videos/clip.mp4" gives "clip.mp4".
func BaseName(source string) string {
	name := strings.TrimRight(source, `/\`)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return fallbackDirName
	}
	return name
}

// OutputDir is the directory that receives the snapshots of source.
func OutputDir(root, source string) string {
	return filepath.Join(root, BaseName(source))
}

// FramePath is the file for the index-th snapshot, e.g. Capture_7.png.
func FramePath(dir, prefix string, index int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", prefix, index, ext))
}
