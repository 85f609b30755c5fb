package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/promptkit/parser"
	"github.com/randalmurphal/promptkit/template"
)

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "review.yaml", `
name: code-review
description: Reviews a diff
template: "Review this diff:\n{diff}"
format: f-string
validate: true
output: json
`)

	def, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "code-review", def.Name)
	assert.Equal(t, "Reviews a diff", def.Description)
	assert.Equal(t, "Review this diff:\n{diff}", def.Template)
	assert.Equal(t, template.FormatFString, def.Format)
	assert.True(t, def.Validate)
	assert.Equal(t, OutputJSON, def.Output)
	assert.Equal(t, path, def.Path)
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "summary.toml", `
description = "Summarizes text"
template = "Summarize for {audience}: {text}"
output = "tag:summary"
`)

	def, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "summary", def.Name, "name defaults to file stem")
	assert.Equal(t, "Summarize for {audience}: {text}", def.Template)
	assert.Equal(t, "tag:summary", def.Output)
}

func TestLoadFile_TOMLUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", `
template = "x"
temprature = 0.2
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: temprature")
}

func TestLoadFile_MarkdownWithFrontmatter(t *testing.T) {
	path := writeFile(t, t.TempDir(), "greeting.md", `---
description: Greets a user
validate: true
---

Say hello to {name}.
`)

	def, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "greeting", def.Name)
	assert.Equal(t, "Greets a user", def.Description)
	assert.True(t, def.Validate)
	assert.Equal(t, "Say hello to {name}.", def.Template)
}

func TestLoadFile_PlainText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "plain.txt", "\nTranslate {text} to {language}.\n")

	def, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "plain", def.Name)
	assert.Equal(t, "Translate {text} to {language}.", def.Template)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unsupported extension",
			file:    "prompt.json",
			content: "{}",
			wantErr: ErrUnsupportedFile,
		},
		{
			name:    "empty template",
			file:    "empty.yaml",
			content: "name: empty\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "unknown output parser",
			file:    "out.yaml",
			content: "template: x\noutput: xml\n",
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "unsupported format",
			file:    "fmt.yaml",
			content: "template: x\nformat: jinja\n",
			wantErr: template.ErrUnsupportedFormat,
		},
		{
			name:    "unclosed frontmatter",
			file:    "open.md",
			content: "---\nname: open\nbody",
			wantMsg: "frontmatter not closed",
		},
		{
			name:    "template in frontmatter",
			file:    "dup.md",
			content: "---\ntemplate: x\n---\nbody",
			wantMsg: "file body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			_, err := LoadFile(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "B {x}")
	writeFile(t, dir, "a.yaml", "template: A {y}\n")
	writeFile(t, dir, "notes.json", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeFile(t, filepath.Join(dir, "nested"), "c.md", "nested files are skipped")

	defs, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, defs, 2)
	assert.Equal(t, "a", defs[0].Name)
	assert.Equal(t, "b", defs[1].Name)
}

func TestLoadDir_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extract.yaml", "template: \"Extract fields from {doc}\"\noutput: json\n")

	defs, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	p, err := defs[0].Build()
	require.NoError(t, err)
	require.IsType(t, &parser.JSONParser[map[string]any]{}, p.OutputParser())

	got, err := p.OutputParser().Parse(`{"title": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "x"}, got)
}

func TestLoadDir_Duplicate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.md", "---\nname: same\n---\nfirst")
	writeFile(t, dir, "two.yaml", "name: same\ntemplate: second\n")

	_, err := LoadDir(context.Background(), dir)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDir_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsPromptFile(t *testing.T) {
	assert.True(t, IsPromptFile("x.YAML"))
	assert.True(t, IsPromptFile("dir/x.prompt"))
	assert.False(t, IsPromptFile("x.go"))
	assert.False(t, IsPromptFile("x.md.swp"))
}
