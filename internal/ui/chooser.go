package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// VideoExtensions are the file types offered by the chooser.
var VideoExtensions = []string{".avi", ".wmv", ".mkv", ".mp4", ".flv", ".rmvb"}

// PromptChooser asks for a video path on the terminal. Relative answers are
// resolved against root.
type PromptChooser struct {
	in   *bufio.Reader
	out  io.Writer
	root string
}

func NewPromptChooser(in *bufio.Reader, out io.Writer, root string) *PromptChooser {
	return &PromptChooser{in: in, out: out, root: root}
}

// Choose returns the absolute path of an existing video. An empty answer,
// an unsupported extension or a missing file all count as a cancelled
// selection.
func (p *PromptChooser) Choose() (string, bool, error) {
	fmt.Fprintf(p.out, "Please select the video (%s), empty to cancel: ", strings.Join(VideoExtensions, " "))

	line, err := readLine(p.in)
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read selection: %w", err)
	}

	path := strings.Trim(strings.TrimSpace(line), `"'`)
	if path == "" {
		return "", false, nil
	}

	if !IsVideo(path) {
		fmt.Fprintf(p.out, "Unsupported file type: %s\n", filepath.Ext(path))
		return "", false, nil
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(p.root, path)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		fmt.Fprintf(p.out, "File not found: %s\n", path)
		return "", false, nil
	}
	return path, true, nil
}

// IsVideo reports whether path has one of the VideoExtensions.
func IsVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}
