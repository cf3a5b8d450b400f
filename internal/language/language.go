package language

import "strings"

// names maps each reported language name to the ISO 639-1/639-2 codes and
// word forms that resolve to it.
var names = map[string][]string{
	"english":    {"en", "eng"},
	"farsi":      {"fa", "fas", "per", "persian"},
	"arabic":     {"ar", "ara"},
	"hebrew":     {"he", "heb"},
	"greek":      {"el", "ell", "gre"},
	"russian":    {"ru", "rus"},
	"ukrainian":  {"uk", "ukr"},
	"spanish":    {"es", "spa"},
	"french":     {"fr", "fra", "fre"},
	"german":     {"de", "deu", "ger"},
	"italian":    {"it", "ita"},
	"portuguese": {"pt", "por"},
	"polish":     {"pl", "pol"},
	"dutch":      {"nl", "nld", "dut"},
	"japanese":   {"ja", "jpn"},
	"korean":     {"ko", "kor"},
	"chinese":    {"zh", "zho", "chi"},
	"hindi":      {"hi", "hin"},
	"thai":       {"th", "tha"},
	"georgian":   {"ka", "kat", "geo"},
	"armenian":   {"hy", "hye", "arm"},
}

var aliases = func() map[string]string {
	index := make(map[string]string, len(names)*4)
	for name, forms := range names {
		index[name] = name
		for _, form := range forms {
			index[form] = name
		}
	}
	return index
}()

// Name returns the reported language name ("english", "farsi") for any
// recognized ISO code or word form, or the empty string.
func Name(code string) string {
	return aliases[strings.ToLower(strings.TrimSpace(code))]
}
