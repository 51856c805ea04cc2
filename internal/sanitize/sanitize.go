// Package sanitize turns arbitrary strings into names made of lowercase ASCII
// letters, digits and a small set of allowed punctuation.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/example/sanename/pkg/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrChainedCharmap is returned when a charmap replacement contains a key.
	ErrChainedCharmap = errors.New("charmap replacement contains another key")

	// ErrInvalidSeparator is returned when the word separator would itself be
	// removed by the filter.
	ErrInvalidSeparator = errors.New("separator contains characters outside the output alphabet")
)

// Config is the input to New.
type Config struct {
	Charmap   Charmap
	Allow     AllowList
	Separator string
}

// DefaultConfig returns the built-in table, "-_." and "-".
func DefaultConfig() Config {
	return Config{
		Charmap:   DefaultCharmap(),
		Allow:     DefaultAllowList,
		Separator: DefaultSeparator,
	}
}

// Sanitizer is immutable once built and safe for concurrent use.
type Sanitizer struct {
	replacer  *strings.Replacer
	allow     AllowList
	separator string
}

// New validates cfg and builds a Sanitizer from it.
func New(cfg Config) (*Sanitizer, error) {
	if err := cfg.Charmap.Validate(); err != nil {
		return nil, err
	}
	for _, r := range cfg.Separator {
		if !isAlnum(r) && !cfg.Allow.Contains(r) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSeparator, cfg.Separator)
		}
	}
	return build(cfg), nil
}

// Default returns a Sanitizer for DefaultConfig.
func Default() *Sanitizer {
	return build(DefaultConfig())
}

func build(cfg Config) *Sanitizer {
	return &Sanitizer{
		replacer:  cfg.Charmap.replacer(),
		allow:     cfg.Allow,
		separator: cfg.Separator,
	}
}

// Sanitize sanitizes input as a single token under policy p.
func Sanitize(input string, cm Charmap, allow AllowList, p Policy) string {
	return build(Config{Charmap: cm, Allow: allow}).Token(input, p)
}

// SanitizeFilename sanitizes a base name word by word, joins the words with
// DefaultSeparator and appends the lowercased extension.
func SanitizeFilename(base, ext string, cm Charmap, allow AllowList) string {
	return build(Config{Charmap: cm, Allow: allow, Separator: DefaultSeparator}).Filename(base, ext)
}

// String sanitizes input with allow-listed characters kept at any position.
func (s *Sanitizer) String(input string) string {
	return s.Token(input, KeepEverywhere)
}

// Token lowercases and trims input, applies the charmap, then drops every
// character that is not 0-9, a-z, or allow-listed at a position p permits.
func (s *Sanitizer) Token(input string, p Policy) string {
	runes := []rune(s.substitute(fold(input)))

	var b strings.Builder
	b.Grow(len(runes))
	for i, r := range runes {
		if isAlnum(r) || (s.allow.Contains(r) && p.allows(positionOf(i, len(runes)))) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Filename sanitizes each whitespace-delimited word of base on its own and
// joins them with the separator. Only the first word may start with an
// allow-listed character. The extension is lowercased and nothing else.
func (s *Sanitizer) Filename(base, ext string) string {
	return s.words(base) + lower(ext)
}

// Name splits filename into base name and extension and sanitizes it.
func (s *Sanitizer) Name(filename string) string {
	base, ext := s.Parts(filename)
	return base + ext
}

// Parts is Name with the sanitized base name and lowercased extension
// returned separately.
func (s *Sanitizer) Parts(filename string) (base, ext string) {
	base, ext = utils.SplitExt(filename)
	return s.words(base), lower(ext)
}

func (s *Sanitizer) words(base string) string {
	words := strings.FieldsFunc(base, isWordBreak)
	for i, w := range words {
		if i == 0 {
			words[i] = s.Token(w, FirstToken)
		} else {
			words[i] = s.Token(w, NextToken)
		}
	}
	return strings.Join(words, s.separator)
}

// Separator returns the string placed between sanitized words.
func (s *Sanitizer) Separator() string {
	return s.separator
}

func (s *Sanitizer) substitute(str string) string {
	return s.replacer.Replace(str)
}

// lower gets a new Caser per call because a Caser holds state.
func lower(str string) string {
	return cases.Lower(language.Und).String(str)
}

func fold(str string) string {
	return strings.TrimSpace(lower(str))
}

// isWordBreak reports Unicode whitespace and the information separators
// U+001C..U+001F.
func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

func isAlnum(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'z')
}
