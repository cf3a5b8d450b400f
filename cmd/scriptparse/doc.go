// Package main hosts the scriptparse CLI entrypoint and command graph.
//
// "serve" runs the HTTP server in the foreground. "parse" and "fixture" run
// the same pipeline locally on a file, stdin, or the configured fixture.
// "runs" reads the local archive directly, so it works whether or not a
// server is running. "status" combines local preflight checks with a probe of
// the configured server.
package main
