// Package api defines the wire format shared by the HTTP server and the CLI.
//
// # Key Types
//
// ScriptResponse: the parse result, {"script": [...], "languages": [...]}.
//
// Block: one segment encoded as a flat object. The "meta" key comes first and
// holds the metadata lines; every other key is a language name mapped to that
// language's merged text, in order of first appearance within the block.
//
// RunSummary/RunDetail: archived parse runs. RunDetail carries the archived
// response verbatim as json.RawMessage.
//
// # Decoding
//
// DecodeLines reads a request body that must be a JSON array of strings.
// Anything else is reported as script.ErrContract so handlers can map it to a
// client error without inspecting messages.
package api
