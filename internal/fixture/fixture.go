// Package fixture loads the sample script served by the test endpoint.
//
// A fixture is either a JSON array of strings (the request body format) or,
// for hand-written samples, plain text with one line per input line.
package fixture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"scriptparse/internal/api"
)

var (
	// ErrNotFound is returned when the fixture file does not exist.
	ErrNotFound = errors.New("fixture not found")
	// ErrMalformed is returned when the fixture cannot be read as script lines.
	ErrMalformed = errors.New("malformed fixture")
)

// Load reads the fixture at path.
func Load(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("load fixture: %w: no path configured", ErrNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load fixture %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	lines, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	return lines, nil
}

// Decode interprets fixture contents. Documents whose first non-space byte
// is '[' are decoded as JSON; everything else is split into lines.
func Decode(data []byte) ([]string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		lines, err := api.DecodeLines(bytes.NewReader(trimmed))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return lines, nil
	}
	return splitLines(data)
}

func splitLines(data []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return lines, nil
}
