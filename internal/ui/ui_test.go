package ui

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedantwpatil/frame-snap/internal/capture"
	"github.com/vedantwpatil/frame-snap/internal/session"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestMenuNext(t *testing.T) {
	var out bytes.Buffer
	m := NewMenu(reader("1\n2\n3\n4"), &out)

	var got []session.Intent
	for {
		intent, err := m.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, intent)
	}

	assert.Equal(t, []session.Intent{
		session.IntentChooseFile,
		session.IntentMute,
		session.IntentStop,
		session.IntentExit,
	}, got)
	assert.Contains(t, out.String(), "1. Choose file")
	assert.Contains(t, out.String(), "4. Exit")
}

func TestMenuRejectsInvalidOptions(t *testing.T) {
	var out bytes.Buffer
	m := NewMenu(reader("0\nfive\n\r\n 3 \r\n"), &out)

	intent, err := m.Next()
	require.NoError(t, err)
	assert.Equal(t, session.IntentStop, intent)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid option"))
}

func TestChooserResolvesRelativePaths(t *testing.T) {
	root := t.TempDir()
	clip := filepath.Join(root, "clip.MP4")
	require.NoError(t, os.WriteFile(clip, nil, 0644))

	c := NewPromptChooser(reader("clip.MP4\n"), io.Discard, root)
	path, ok, err := c.Choose()

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, clip, path)
}

func TestChooserCancelled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.mkv"), 0755))

	tests := []struct {
		name  string
		input string
	}{
		{"empty answer", "\n"},
		{"closed input", ""},
		{"unsupported extension", "notes.txt\n"},
		{"missing file", "missing.avi\n"},
		{"directory", "dir.mkv\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPromptChooser(reader(tt.input), io.Discard, root)
			path, ok, err := c.Choose()

			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, path)
		})
	}
}

func TestChooserStripsQuotes(t *testing.T) {
	root := t.TempDir()
	clip := filepath.Join(root, "my clip.flv")
	require.NoError(t, os.WriteFile(clip, nil, 0644))

	c := NewPromptChooser(reader(`"`+clip+`"`+"\n"), io.Discard, "/unused")
	path, ok, err := c.Choose()

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, clip, path)
}

func TestIsVideo(t *testing.T) {
	for _, name := range []string{"a.avi", "a.WMV", "a.mkv", "a.mp4", "a.flv", "a.rmvb"} {
		assert.True(t, IsVideo(name), name)
	}
	for _, name := range []string{"a.mov", "a", "a.mp4.txt"} {
		assert.False(t, IsVideo(name), name)
	}
}

func TestDefaultBindingsSkipChooseFile(t *testing.T) {
	seen := map[session.Intent]bool{}
	for _, b := range DefaultBindings {
		assert.NotEqual(t, session.IntentChooseFile, b.Intent)
		assert.Contains(t, b.Keys, "ctrl")
		seen[b.Intent] = true
	}
	assert.Len(t, seen, 3)
}

func TestCompletionMessage(t *testing.T) {
	res := capture.Result{Source: "/videos/clip.mp4", Dir: "/out/clip.mp4", Saved: 248, Skipped: 2}
	assert.Equal(t, "Saved 248 frames of clip.mp4 to /out/clip.mp4 (2 skipped)", completionMessage(res))

	res.Skipped = 0
	assert.Equal(t, "Saved 248 frames of clip.mp4 to /out/clip.mp4", completionMessage(res))
}
