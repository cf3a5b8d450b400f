// Package config loads, normalizes, and validates scriptparse configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SCRIPTPARSE_API_TOKEN and PORT. The Config type centralizes every knob the
// server and CLI need: data and log directories, the fixture file, the HTTP
// bind address, the metadata heuristic's excluded quotes, and the language
// identifier's fallbacks.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
