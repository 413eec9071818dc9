// Package converter turns a plain-text dump, one entry per line, into the JSON
// array read by the import command.
package converter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInputNotFound is returned when the source text file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// maxLineSize bounds a single entry; long-form entries run to a few KB.
const maxLineSize = 1024 * 1024

// escapes are literal two-character sequences the dump uses for line breaks
// inside an entry.
var escapes = strings.NewReplacer(`\r`, "\r", `\n`, "\n")

// Convert reads r line by line. Lines are trimmed, blank lines are dropped and
// escaped line breaks are expanded.
func Convert(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	entries := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, escapes.Replace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return entries, nil
}

// Write encodes entries as an indented JSON array without HTML escaping, so
// CJK text and punctuation stay readable in the output file.
func Write(w io.Writer, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// ConvertFile converts inputPath into outputPath and returns the entry count.
func ConvertFile(inputPath, outputPath string) (int, error) {
	in, err := os.Open(inputPath)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	entries, err := Convert(in)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output: %w", err)
	}
	if err := Write(out, entries); err != nil {
		out.Close()
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	return len(entries), nil
}
