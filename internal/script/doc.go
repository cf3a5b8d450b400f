// Package script turns a flat sequence of transcript lines into blocks of
// metadata followed by text merged per language.
//
// A Classifier decides for each trimmed line whether it is metadata (an
// uppercase header) or content, consulting a language.Identifier for content
// lines. A Segmenter folds the classified lines into Blocks: consecutive
// metadata lines accumulate on the current block, and the first metadata line
// after content flushes it and starts the next one. The last block is always
// emitted, even when it is empty. Parser ties the pieces together and is the
// entry point for the HTTP and CLI layers.
//
// Every Parse call owns its segmenter, so a Parser is safe for concurrent use
// as long as its identifier is.
package script
