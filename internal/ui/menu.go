package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vedantwpatil/frame-snap/internal/session"
)

type menuItem struct {
	label  string
	intent session.Intent
}

var menuItems = []menuItem{
	{"Choose file", session.IntentChooseFile},
	{"Mute/unmute current video", session.IntentMute},
	{"Stop current video", session.IntentStop},
	{"Exit", session.IntentExit},
}

// Menu is the numbered command prompt on the terminal.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
}

// NewMenu reads answers from in. Share the same reader with the chooser so
// neither one buffers input meant for the other.
func NewMenu(in *bufio.Reader, out io.Writer) *Menu {
	return &Menu{in: in, out: out}
}

// Next shows the commands and blocks until a valid option is picked. It
// returns io.EOF once the input is closed.
func (m *Menu) Next() (session.Intent, error) {
	for {
		fmt.Fprintln(m.out, "\nCommands:")
		for i, item := range menuItems {
			fmt.Fprintf(m.out, "%d. %s\n", i+1, item.label)
		}
		fmt.Fprint(m.out, "Choose an option: ")

		line, err := readLine(m.in)
		if err != nil {
			return 0, err
		}

		if intent, ok := parseChoice(line); ok {
			return intent, nil
		}
		fmt.Fprintln(m.out, "Invalid option")
	}
}

func parseChoice(line string) (session.Intent, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(menuItems) {
		return 0, false
	}
	return menuItems[n-1].intent, true
}

// readLine returns one line without its terminator. A final line without a
// newline is still returned; io.EOF is reported only when nothing was read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
