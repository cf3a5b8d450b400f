package archive

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("run not found")

// Source names where a run's input came from.
type Source string

const (
	SourceSubmit  Source = "submit"
	SourceFixture Source = "fixture"
	SourceCLI     Source = "cli"
)

// ParseSource maps user input onto a Source; unknown values report false.
func ParseSource(value string) (Source, bool) {
	switch Source(strings.ToLower(strings.TrimSpace(value))) {
	case SourceSubmit:
		return SourceSubmit, true
	case SourceFixture:
		return SourceFixture, true
	case SourceCLI:
		return SourceCLI, true
	default:
		return "", false
	}
}

// Run is one archived parse.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Source     Source
	LineCount  int
	BlockCount int
	Languages  []string
	// ResultJSON is the response body exactly as served.
	ResultJSON []byte
}

// NewRun carries the fields a caller supplies when recording a run.
type NewRun struct {
	Source     Source
	LineCount  int
	BlockCount int
	Languages  []string
	ResultJSON []byte
}

// Health summarizes the archive database for diagnostics.
type Health struct {
	Path           string
	Exists         bool
	Readable       bool
	SchemaVersion  int
	IntegrityCheck bool
	TotalRuns      int
	Error          string
}
