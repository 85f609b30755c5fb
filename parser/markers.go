package parser

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Marker is an XML-style tagged span in model output, such as
// <answer>42</answer>.
type Marker struct {
	// Tag is the marker name without angle brackets.
	Tag string

	// Value is the trimmed content between the opening and closing tags.
	Value string

	// Raw is the full matched text including tags.
	Raw string
}

// MarkerMatcher finds tagged spans for a set of tag names.
// Patterns are compiled once per tag; the matcher is safe for concurrent use.
type MarkerMatcher struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// NewMarkerMatcher creates a matcher for the given tag names.
func NewMarkerMatcher(tags ...string) *MarkerMatcher {
	m := &MarkerMatcher{patterns: make(map[string]*regexp.Regexp, len(tags))}
	for _, tag := range tags {
		m.AddTag(tag)
	}
	return m
}

// AddTag registers another tag. Adding a known tag is a no-op.
func (m *MarkerMatcher) AddTag(tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patterns[tag]; ok {
		return
	}
	quoted := regexp.QuoteMeta(tag)
	m.patterns[tag] = regexp.MustCompile(`(?s)<` + quoted + `>(.*?)</` + quoted + `>`)
}

// Tags returns the registered tag names, sorted.
func (m *MarkerMatcher) Tags() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tags := make([]string, 0, len(m.patterns))
	for tag := range m.patterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// FindAll returns every marker for tag in content, in order of appearance.
func (m *MarkerMatcher) FindAll(content, tag string) []Marker {
	pattern, ok := m.pattern(tag)
	if !ok {
		return nil
	}

	var markers []Marker
	for _, match := range pattern.FindAllStringSubmatch(content, -1) {
		markers = append(markers, Marker{Tag: tag, Value: strings.TrimSpace(match[1]), Raw: match[0]})
	}
	return markers
}

// FindFirst returns the first marker for tag.
// Returns false if the tag is unknown or absent.
func (m *MarkerMatcher) FindFirst(content, tag string) (Marker, bool) {
	pattern, ok := m.pattern(tag)
	if !ok {
		return Marker{}, false
	}

	match := pattern.FindStringSubmatch(content)
	if match == nil {
		return Marker{}, false
	}
	return Marker{Tag: tag, Value: strings.TrimSpace(match[1]), Raw: match[0]}, true
}

// Contains reports whether content has a marker for tag.
func (m *MarkerMatcher) Contains(content, tag string) bool {
	pattern, ok := m.pattern(tag)
	return ok && pattern.MatchString(content)
}

func (m *MarkerMatcher) pattern(tag string) (*regexp.Regexp, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.patterns[tag]
	return p, ok
}
