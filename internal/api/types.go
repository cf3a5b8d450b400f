package api

import (
	"encoding/json"
	"time"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ScriptResponse is the body returned for a parsed script.
type ScriptResponse struct {
	Script    []Block  `json:"script"`
	Languages []string `json:"languages"`
}

// RunSummary describes an archived run without its result body.
type RunSummary struct {
	ID         string   `json:"id"`
	CreatedAt  string   `json:"createdAt"`
	Source     string   `json:"source"`
	LineCount  int      `json:"lineCount"`
	BlockCount int      `json:"blockCount"`
	Languages  []string `json:"languages"`
}

// RunDetail is an archived run including the response it produced.
type RunDetail struct {
	RunSummary
	Result json.RawMessage `json:"result"`
}

// RunListResponse wraps archived run summaries.
type RunListResponse struct {
	Runs []RunSummary `json:"runs"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServerStatus reports the running server's state.
type ServerStatus struct {
	Running        bool   `json:"running"`
	PID            int    `json:"pid"`
	Address        string `json:"address"`
	StartedAt      string `json:"startedAt,omitempty"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
	LockFilePath   string `json:"lockFilePath"`
	ArchiveEnabled bool   `json:"archiveEnabled"`
	ArchivePath    string `json:"archivePath,omitempty"`
	ArchivedRuns   int    `json:"archivedRuns"`
}

// FormatTime renders t the way every API timestamp is rendered.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
