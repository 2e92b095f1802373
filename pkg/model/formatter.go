package model

import (
	"regexp"
	"strings"
)

// Formatter maps a catalog identifier to its canonical URL via a template
// containing one "$1" placeholder, and optionally validates/extracts IDs
// back out of URLs via a compiled regex.
type Formatter struct {
	Template string
	IDRegex  *regexp.Regexp
}

// URL substitutes id into the template's "$1" placeholder.
func (f Formatter) URL(id string) string {
	return strings.Replace(f.Template, "$1", id, 1)
}

// ExtractID pulls the identifier segment out of a URL produced by this
// formatter's template, validating it against IDRegex when one is set.
func (f Formatter) ExtractID(url string) (string, bool) {
	prefix, suffix, ok := splitOnPlaceholder(f.Template)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(url, prefix) || !strings.HasSuffix(url, suffix) {
		return "", false
	}
	id := url[len(prefix) : len(url)-len(suffix)]
	if id == "" {
		return "", false
	}
	if f.IDRegex != nil && !f.IDRegex.MatchString(id) {
		return "", false
	}
	return id, true
}

func splitOnPlaceholder(template string) (prefix, suffix string, ok bool) {
	i := strings.Index(template, "$1")
	if i == -1 {
		return "", "", false
	}
	return template[:i], template[i+2:], true
}

// FormatterRegistry maps a property to one or more known URL formatters,
// used both to synthesize a canonical URL for an identifier and to invert
// a URL back into (property, identifier) when validating links.
type FormatterRegistry struct {
	byProperty map[PropertyID][]Formatter
}

// NewFormatterRegistry creates an empty registry.
func NewFormatterRegistry() *FormatterRegistry {
	return &FormatterRegistry{byProperty: make(map[PropertyID][]Formatter)}
}

// Register adds a formatter for a property.
func (r *FormatterRegistry) Register(pid PropertyID, f Formatter) {
	r.byProperty[pid] = append(r.byProperty[pid], f)
}

// URL returns the canonical URL for id under property pid, using the
// first registered formatter.
func (r *FormatterRegistry) URL(pid PropertyID, id string) (string, bool) {
	fs, ok := r.byProperty[pid]
	if !ok || len(fs) == 0 {
		return "", false
	}
	return fs[0].URL(id), true
}

// ExtractID inverts a URL into (id, property), trying every registered
// property/formatter combination until one matches.
func (r *FormatterRegistry) ExtractID(url string) (id string, pid PropertyID, ok bool) {
	for prop, fs := range r.byProperty {
		for _, f := range fs {
			if extracted, matched := f.ExtractID(url); matched {
				return extracted, prop, true
			}
		}
	}
	return "", "", false
}
