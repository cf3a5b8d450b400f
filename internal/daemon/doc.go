// Package daemon runs the long-lived scriptparse HTTP server.
//
// A Daemon owns the parse pipeline (Processor), the optional run archive, the
// metrics registry, and the HTTP listener. A flock on the data directory keeps
// a second server from starting against the same archive.
//
// Routes:
//
//	POST /            parse a JSON array of lines
//	GET  /test/       parse the configured fixture file
//	GET  /healthz     liveness probe
//	GET  /metrics     Prometheus exposition
//	GET  /api/status  server state (bearer token when configured)
//	GET  /api/runs    archived runs, newest first
//	GET  /api/runs/ID one archived run with its response body
package daemon
