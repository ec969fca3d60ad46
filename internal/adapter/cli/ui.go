// Package cli implements the interactive terminal surface: the login and
// signup pages, the role menus, the transaction entry form driver, and the
// paged report tables.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// UI reads operator input line by line and writes prompts and results. Input
// and output are injected so tests can script a whole session.
type UI struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewUI creates a UI over the given reader and writer.
func NewUI(in io.Reader, out io.Writer) *UI {
	return &UI{in: bufio.NewScanner(in), out: out}
}

// ReadLine prints a prompt and returns the next input line, trimmed.
func (u *UI) ReadLine(prompt string) (string, error) {
	fmt.Fprint(u.out, prompt)
	if !u.in.Scan() {
		if err := u.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(u.in.Text()), nil
}

// Sayf writes one formatted output line.
func (u *UI) Sayf(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

// SectionHeader prints a banner for a page.
func (u *UI) SectionHeader(title string) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintf(u.out, "\n%s\n%s\n%s\n\n", bar, center(title, 60), bar)
}

// PressEnter blocks until the operator presses enter.
func (u *UI) PressEnter(message string) {
	_, _ = u.ReadLine(message)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
