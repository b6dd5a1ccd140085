// Package manifest reads the plain-text file lists that select part of a
// dataset tree: one relative path per line, optionally followed by a label.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Style tells Parse how to read a line.
type Style int

const (
	// PathOnly treats the whole trimmed line as the path (test lists).
	PathOnly Style = iota
	// Labeled takes the first whitespace-delimited token as the path and the
	// second as the label (train lists, e.g. "ApplyEyeMakeup/v_x.avi 1").
	Labeled
)

// Entry is one non-blank manifest line.
type Entry struct {
	Path  string
	Label string
	Line  int
}

const bom = "\ufeff"

// Parse reads all entries from r. Blank lines are skipped.
func Parse(r io.Reader, style Style) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if n == 1 {
			line = strings.TrimPrefix(line, bom)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry := Entry{Path: line, Line: n}
		if style == Labeled {
			fields := strings.Fields(line)
			entry.Path = fields[0]
			if len(fields) > 1 {
				entry.Label = fields[1]
			}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return entries, nil
}

// ReadFile parses the manifest at path.
func ReadFile(path string, style Style) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Parse(f, style)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
