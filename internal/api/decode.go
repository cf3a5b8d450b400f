package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"scriptparse/internal/script"
)

// DecodeLines reads a JSON array of strings from r. Malformed JSON, a
// non-array document, trailing data, and non-string entries are all
// script.ErrContract. A body over an http.MaxBytesReader limit is returned
// as *http.MaxBytesError.
func DecodeLines(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, tooLarge
		}
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", script.ErrContract)
		}
		return nil, fmt.Errorf("%w: invalid JSON: %v", script.ErrContract, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, tooLarge
		}
		return nil, fmt.Errorf("%w: unexpected data after JSON array", script.ErrContract)
	}

	values, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: body must be a JSON array of strings", script.ErrContract)
	}
	return script.LinesFromValues(values)
}
