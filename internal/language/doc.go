// Package language owns language codes and language identification.
//
// It maps ISO 639-1/639-2 codes and word forms onto the lowercase language
// names the script parser reports ("english", "farsi"), defines the Code and
// Detection types used by the classifier, and ships ScriptIdentifier, a
// CPU-only detector that decides a line's language from its Unicode scripts
// and a handful of letter hints.
//
// Identifiers never fail: anything that cannot be identified resolves to the
// Unknown detection, whose code is the "unknown" sentinel.
package language
