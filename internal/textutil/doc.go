// Package textutil provides rune-level text predicates shared by the script
// parser.
//
// Case tests follow the Unicode case-mapping properties rather than ASCII
// ranges, so uppercase Cyrillic or Greek headers are recognised the same way
// as Latin ones.
package textutil
