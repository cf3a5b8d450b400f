// Package preflight provides readiness checks for the filesystem paths and
// services scriptparse depends on.
//
// These checks run in two contexts:
//   - The server runtime calls RunAll at startup and logs every failure, so a
//     broken fixture or unwritable data directory shows up before the first
//     request does.
//   - The CLI "scriptparse status" command uses individual check functions
//     (CheckServer, CheckArchive) to display service health.
//
// Each check is gated by its config toggle; disabled features pass with a
// "Disabled" detail.
package preflight
