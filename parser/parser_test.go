package parser

import (
	"encoding/json"
	"reflect"
	"testing"
)

// =============================================================================
// Code Block Extraction Tests
// =============================================================================

func TestExtractCode_MultipleLanguages(t *testing.T) {
	response := "```python\nprint('hello')\n```\n\n```go\nfmt.Println(\"hello\")\n```"

	p := NewParser()

	if got := p.ExtractCode(response, "python"); got != "print('hello')\n" {
		t.Errorf("python code = %q", got)
	}
	if got := p.ExtractCode(response, "go"); got != "fmt.Println(\"hello\")\n" {
		t.Errorf("go code = %q", got)
	}
	if got := p.ExtractCode(response, ""); got != "print('hello')\n" {
		t.Errorf("first block = %q", got)
	}
	if got := p.ExtractCode(response, "rust"); got != "" {
		t.Errorf("missing language = %q, want empty", got)
	}
}

func TestExtractAllCode_WithRaw(t *testing.T) {
	response := "Text\n```js\nconsole.log('test');\n```\nMore"

	blocks := NewParser().ExtractAllCode(response)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Language != "js" {
		t.Errorf("Language = %q, want js", blocks[0].Language)
	}
	if blocks[0].Raw != "```js\nconsole.log('test');\n```" {
		t.Errorf("Raw = %q", blocks[0].Raw)
	}
}

// =============================================================================
// JSON Extraction Tests
// =============================================================================

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantOK   bool
	}{
		{
			name:     "labeled code block",
			response: "```json\n{\"key\": \"value\"}\n```",
			want:     `{"key": "value"}`,
			wantOK:   true,
		},
		{
			name:     "unlabeled code block",
			response: "```\n{\"unlabeled\": true}\n```",
			want:     `{"unlabeled": true}`,
			wantOK:   true,
		},
		{
			name:     "bare document",
			response: `  {"bare": 1}  `,
			want:     `{"bare": 1}`,
			wantOK:   true,
		},
		{
			name:     "embedded in prose",
			response: "Here is the result:\n{\"inline\": true}\n\nThat's it.",
			want:     `{"inline": true}`,
			wantOK:   true,
		},
		{
			name:     "array in prose",
			response: "Result: [1, 2, 3] done",
			want:     `[1, 2, 3]`,
			wantOK:   true,
		},
		{
			name:     "invalid block",
			response: "```json\n{invalid json}\n```",
			wantOK:   false,
		},
		{
			name:     "no json",
			response: "No JSON here at all",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := NewParser().ExtractJSON(tt.response)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && string(raw) != tt.want {
				t.Errorf("ExtractJSON() = %s, want %s", raw, tt.want)
			}
		})
	}
}

func TestConvenienceExtractJSON(t *testing.T) {
	raw, ok := ExtractJSON("```json\n{\"n\": 42}\n```")
	if !ok {
		t.Fatal("expected JSON")
	}
	var data map[string]int
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data["n"] != 42 {
		t.Errorf("n = %d, want 42", data["n"])
	}
}

// =============================================================================
// YAML, Section and List Tests
// =============================================================================

func TestExtractYAML(t *testing.T) {
	response := "```yaml\nname: test\ncount: 2\n```\n```yml\nother: true\n```\n```yaml\n: bad: [\n```"

	blocks := NewParser().ExtractYAML(response)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0]["name"] != "test" || blocks[0]["count"] != 2 {
		t.Errorf("first block = %v", blocks[0])
	}
	if blocks[1]["other"] != true {
		t.Errorf("second block = %v", blocks[1])
	}
}

func TestExtractSection(t *testing.T) {
	response := `# Summary
Short summary.

## Details
Longer details.

## Next Steps
Do things.`

	p := NewParser()

	if got := p.ExtractSection(response, "Details"); got != "Longer details." {
		t.Errorf("Details = %q", got)
	}
	if got := p.ExtractSection(response, "next steps"); got != "Do things." {
		t.Errorf("case-insensitive = %q", got)
	}
	if got := p.ExtractSection(response, "Missing"); got != "" {
		t.Errorf("missing = %q, want empty", got)
	}
}

func TestExtractSection_FirstCaseInsensitiveMatch(t *testing.T) {
	response := `## NOTES
upper

## notes
lower

## Notes
exact`

	p := NewParser()

	for i := 0; i < 20; i++ {
		if got := p.ExtractSection(response, "nOtEs"); got != "upper" {
			t.Fatalf("ExtractSection() = %q, want first header in document order", got)
		}
	}
	if got := p.ExtractSection(response, "Notes"); got != "exact" {
		t.Errorf("exact match = %q, want %q", got, "exact")
	}
}

func TestExtractList(t *testing.T) {
	response := `Tasks:
- First item
*   Second item
  - Indented item`

	got := NewParser().ExtractList(response)
	want := []string{"First item", "Second item", "Indented item"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractList() = %v, want %v", got, want)
	}
}

func TestExtractNumberedList(t *testing.T) {
	response := `Steps:
1. First step
2) Second step
10. Tenth step`

	got := NewParser().ExtractNumberedList(response)
	want := []string{"First step", "Second step", "Tenth step"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractNumberedList() = %v, want %v", got, want)
	}
}
