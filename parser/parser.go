package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// CodeBlock represents a fenced code block.
type CodeBlock struct {
	// Language is the language specifier after the opening fence (e.g., "json", "yaml").
	Language string

	// Content is the text inside the block, excluding fences.
	Content string

	// Raw is the complete block including the fences.
	Raw string
}

// Parser extracts structured content from model output.
// A Parser is safe for concurrent use.
type Parser struct {
	codeBlockRegex    *regexp.Regexp
	sectionRegex      *regexp.Regexp
	bulletRegex       *regexp.Regexp
	numberedListRegex *regexp.Regexp
}

// NewParser creates a new parser with compiled regexes.
func NewParser() *Parser {
	return &Parser{
		codeBlockRegex:    regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```"),
		sectionRegex:      regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`),
		bulletRegex:       regexp.MustCompile(`(?m)^\s*[-*]\s+(.+)$`),
		numberedListRegex: regexp.MustCompile(`(?m)^\s*\d+[.)]\s+(.+)$`),
	}
}

// defaultParser backs the package-level helpers and the OutputParser implementations.
var defaultParser = NewParser()

// ExtractAllCode returns every fenced code block in text.
func (p *Parser) ExtractAllCode(text string) []CodeBlock {
	matches := p.codeBlockRegex.FindAllStringSubmatch(text, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, match := range matches {
		blocks = append(blocks, CodeBlock{
			Language: match[1],
			Content:  match[2],
			Raw:      match[0],
		})
	}
	return blocks
}

// ExtractCode returns the content of the first code block with the given
// language, or of the first block at all when language is empty.
func (p *Parser) ExtractCode(text, language string) string {
	for _, block := range p.ExtractAllCode(text) {
		if language == "" || block.Language == language {
			return block.Content
		}
	}
	return ""
}

// ExtractJSON returns the first JSON document found in text.
// Fenced json (or unlabeled) blocks are tried first, then the whole text,
// then the outermost {...} or [...] span.
func (p *Parser) ExtractJSON(text string) (json.RawMessage, bool) {
	for _, block := range p.ExtractAllCode(text) {
		if block.Language != "json" && block.Language != "" {
			continue
		}
		if raw := strings.TrimSpace(block.Content); json.Valid([]byte(raw)) {
			return json.RawMessage(raw), true
		}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), true
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(trimmed, pair[0])
		end := strings.LastIndex(trimmed, pair[1])
		if start < 0 || end <= start {
			continue
		}
		if candidate := trimmed[start : end+1]; json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}

	return nil, false
}

// ExtractYAML returns every yaml/yml code block that decodes to a mapping.
func (p *Parser) ExtractYAML(text string) []map[string]any {
	var blocks []map[string]any
	for _, block := range p.ExtractAllCode(text) {
		if block.Language != "yaml" && block.Language != "yml" {
			continue
		}
		var data map[string]any
		if err := yaml.Unmarshal([]byte(block.Content), &data); err == nil {
			blocks = append(blocks, data)
		}
	}
	return blocks
}

// ExtractSection returns the body under a markdown header with the given
// title. Exact matches win over case-insensitive ones.
func (p *Parser) ExtractSection(text, title string) string {
	sections := p.extractSections(text)

	for _, sec := range sections {
		if sec.title == title {
			return sec.content
		}
	}
	for _, sec := range sections {
		if strings.EqualFold(sec.title, title) {
			return sec.content
		}
	}
	return ""
}

// ExtractList returns "-" and "*" bullet items.
func (p *Parser) ExtractList(text string) []string {
	return submatches(p.bulletRegex, text)
}

// ExtractNumberedList returns "1." and "1)" list items.
func (p *Parser) ExtractNumberedList(text string) []string {
	return submatches(p.numberedListRegex, text)
}

// section is a markdown header title and the text up to the next header.
type section struct {
	title   string
	content string
}

// extractSections returns the sections of text in document order.
func (p *Parser) extractSections(text string) []section {
	matches := p.sectionRegex.FindAllStringSubmatchIndex(text, -1)
	sections := make([]section, 0, len(matches))

	for i, match := range matches {
		contentEnd := len(text)
		if i+1 < len(matches) {
			contentEnd = matches[i+1][0]
		}
		sections = append(sections, section{
			title:   strings.TrimSpace(text[match[4]:match[5]]),
			content: strings.TrimSpace(text[match[1]:contentEnd]),
		})
	}

	return sections
}

// submatches returns the trimmed first capture group of every match.
func submatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	items := make([]string, 0, len(matches))
	for _, match := range matches {
		items = append(items, strings.TrimSpace(match[1]))
	}
	return items
}

// ExtractJSON is a convenience function for JSON extraction.
func ExtractJSON(text string) (json.RawMessage, bool) {
	return defaultParser.ExtractJSON(text)
}

// ExtractCode is a convenience function for code extraction.
func ExtractCode(text, language string) string {
	return defaultParser.ExtractCode(text, language)
}
