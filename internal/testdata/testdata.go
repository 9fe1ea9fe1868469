// Package testdata reads fixture files of dialogue lines for tests.
//
// Fixture files are line oriented. Lines starting with '#' are comments, all
// other lines hold an input line and, optionally, its canonical form:
//
//	{\c&h0000ff}Red ⇒ {\c&H0000FF&}Red # lower-case hex, missing ampersand
//
// If the canonical form is missing, the input is expected to be canonical.
package testdata

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Arrow separates the input from the canonical form of a fixture line.
const Arrow = "⇒"

// commentMark starts a trailing comment. It has to be preceded by a space,
// as '#' may occur in dialogue text.
const commentMark = " # "

// Path returns the path of a fixture file.
func Path(file string) string {
	_, pkgdir, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}
	return filepath.Join(filepath.Dir(pkgdir), "lines", file)
}

// TestFile iterates over the fixture lines of a file.
type TestFile struct {
	in        *os.File
	scanner   *bufio.Scanner
	lineno    int
	input     string
	canonical string
	comment   string
}

// OpenTestFile opens a fixture file. Relative names are resolved with Path.
// If the file cannot be opened, an error is reported to t (if t is non-nil)
// and nil is returned.
func OpenTestFile(filename string, t *testing.T) *TestFile {
	if !filepath.IsAbs(filename) {
		filename = Path(filename)
	}
	f, err := os.Open(filename)
	if err != nil {
		if t != nil {
			t.Errorf("ERROR loading %s: %v", filename, err)
		} else {
			fmt.Fprintf(os.Stderr, "ERROR loading %s: %v\n", filename, err)
		}
		return nil
	}
	return &TestFile{
		in:      f,
		scanner: bufio.NewScanner(f),
	}
}

// Scan advances to the next fixture line, skipping comments and empty lines.
func (tf *TestFile) Scan() bool {
	for tf.scanner.Scan() {
		tf.lineno++
		text := strings.TrimSpace(tf.scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		tf.comment = ""
		if i := strings.LastIndex(text, commentMark); i >= 0 {
			text, tf.comment = strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(commentMark):])
		}
		if in, out, found := strings.Cut(text, Arrow); found {
			tf.input, tf.canonical = strings.TrimSpace(in), strings.TrimSpace(out)
		} else {
			tf.input, tf.canonical = text, text
		}
		return true
	}
	return false
}

// Input is the dialogue line to parse.
func (tf *TestFile) Input() string {
	return tf.input
}

// Canonical is the expected composition of the parsed input.
func (tf *TestFile) Canonical() string {
	return tf.canonical
}

// Comment is the trailing comment of the fixture line, if any.
func (tf *TestFile) Comment() string {
	return tf.comment
}

// Line is the line number of the current fixture line.
func (tf *TestFile) Line() int {
	return tf.lineno
}

func (tf *TestFile) Err() error {
	return tf.scanner.Err()
}

func (tf *TestFile) Close() {
	tf.in.Close()
}
