package sanitize

import (
	"fmt"
	"sort"
	"strings"
)

// Charmap maps a single code point to its ASCII replacement.
type Charmap map[rune]string

// AllowList holds the punctuation allowed through the filter besides 0-9 and a-z.
type AllowList string

const (
	DefaultAllowList AllowList = "-_."
	DefaultSeparator           = "-"
)

// Contains reports whether r is allow-listed.
func (a AllowList) Contains(r rune) bool {
	return strings.ContainsRune(string(a), r)
}

// DefaultCharmap returns a fresh copy of the built-in transliteration table.
func DefaultCharmap() Charmap {
	return Charmap{
		'á': "a",
		'à': "a",
		'â': "a",
		'ǎ': "a",
		'ă': "a",
		'ä': "ae",
		'ã': "a",
		'é': "e",
		'è': "e",
		'ê': "e",
		'ě': "e",
		'ĕ': "e",
		'ë': "e",
		'í': "i",
		'ì': "i",
		'î': "i",
		'ǐ': "i",
		'ĭ': "i",
		'ï': "i",
		'ó': "o",
		'ò': "o",
		'ô': "o",
		'ǒ': "o",
		'ö': "oe",
		'õ': "o",
		'ø': "o",
		'ɵ': "o",
		'ú': "u",
		'ù': "u",
		'û': "u",
		'ǔ': "u",
		'ŭ': "u",
		'ü': "ue",
		'ñ': "n",
		'ý': "y",
		'ÿ': "y",
		'ẞ': "ss",
		'ß': "ss",
	}
}

// Merge returns a new Charmap with the entries of other laid over cm.
func (cm Charmap) Merge(other Charmap) Charmap {
	out := make(Charmap, len(cm)+len(other))
	for k, v := range cm {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Validate checks that no replacement contains another key. A chained entry
// would make the result depend on substitution order.
func (cm Charmap) Validate() error {
	for _, k := range cm.keys() {
		for _, r := range cm[k] {
			if _, ok := cm[r]; ok {
				return fmt.Errorf("%w: replacement %q for %q contains key %q", ErrChainedCharmap, cm[k], k, r)
			}
		}
	}
	return nil
}

func (cm Charmap) keys() []rune {
	keys := make([]rune, 0, len(cm))
	for k := range cm {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// replacer builds a single-pass replacer with keys in code point order.
func (cm Charmap) replacer() *strings.Replacer {
	keys := cm.keys()
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, string(k), cm[k])
	}
	return strings.NewReplacer(pairs...)
}
