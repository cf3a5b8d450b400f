// Package logs reads the server's session logs for `scriptparse logs`.
//
// Tail returns the last lines of a file together with a byte offset; passing
// that offset back with Follow set waits for lines appended later. Memory use
// is bounded by the requested line count.
package logs
