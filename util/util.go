// Package util holds small helpers shared by the interfaces and commands.
package util

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/poolsuite-cli/poolsuite/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify formats count with the singular or plural noun.
func Quantify(count int, singular, plural string) string {
	noun := plural
	if count == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", count, noun)
}

// Capitalize upper-cases the first byte of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize reports the size of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FormatClock renders a number of seconds as m:ss, or h:mm:ss past the hour.
// Negative and non-finite values render as 0:00.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// PrintErasable prints msg on the current line and returns a func that blanks it.
func PrintErasable(msg string) (erase func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore calls f and drops its error. Meant for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the largest item, or the zero value when there are none.
func Max[T constraints.Ordered](items ...T) T {
	return pick(items, func(a, b T) bool { return a > b })
}

// Min returns the smallest item, or the zero value when there are none.
func Min[T constraints.Ordered](items ...T) T {
	return pick(items, func(a, b T) bool { return a < b })
}

func pick[T constraints.Ordered](items []T, better func(a, b T) bool) (best T) {
	for i, item := range items {
		if i == 0 || better(item, best) {
			best = item
		}
	}
	return best
}

// Delete removes path, recursively if it is a directory.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
