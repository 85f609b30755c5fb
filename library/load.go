package library

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// supportedExts maps file extensions to their decoders.
var supportedExts = map[string]func([]byte, *Definition) error{
	".yaml":   decodeYAML,
	".yml":    decodeYAML,
	".toml":   decodeTOML,
	".md":     decodeText,
	".txt":    decodeText,
	".prompt": decodeText,
}

// IsPromptFile reports whether path has an extension LoadFile understands.
func IsPromptFile(path string) bool {
	_, ok := supportedExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadFile reads one prompt definition.
//
// YAML and TOML files hold a Definition directly. Markdown and text files
// hold the template itself, optionally preceded by YAML frontmatter between
// "---" lines. The name defaults to the file name without its extension.
func LoadFile(path string) (Definition, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := supportedExts[ext]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read prompt file: %w", err)
	}

	var def Definition
	if err := decode(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	def.Path = path

	if err := def.Check(); err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDir reads every prompt file directly inside dir, sorted by name.
// Subdirectories and unsupported files are skipped. Two files declaring the
// same name fail with ErrDuplicate.
func LoadDir(ctx context.Context, dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read prompt dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsPromptFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	defs := make([]Definition, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			def, err := LoadFile(path)
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	for i := 1; i < len(defs); i++ {
		if defs[i].Name == defs[i-1].Name {
			return nil, fmt.Errorf("%w: %q in %s and %s",
				ErrDuplicate, defs[i].Name, defs[i-1].Path, defs[i].Path)
		}
	}

	return defs, nil
}

func decodeYAML(data []byte, def *Definition) error {
	return yaml.Unmarshal(data, def)
}

func decodeTOML(data []byte, def *Definition) error {
	md, err := toml.Decode(string(data), def)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// decodeText treats the body as the template, with optional frontmatter.
func decodeText(data []byte, def *Definition) error {
	if !bytes.HasPrefix(data, []byte("---")) {
		def.Template = strings.TrimSpace(string(data))
		return nil
	}

	frontmatter, body, err := splitFrontmatter(data)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(frontmatter), def); err != nil {
		return fmt.Errorf("parse frontmatter: %w", err)
	}
	if def.Template != "" {
		return errors.New("template must be the file body, not a frontmatter field")
	}
	def.Template = strings.TrimSpace(body)
	return nil
}

// splitFrontmatter separates YAML frontmatter between "---" lines from the body.
func splitFrontmatter(data []byte) (frontmatter, body string, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var fmLines, bodyLines []string
	inFrontmatter := false
	foundEnd := false

	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		switch {
		case lineNum == 1 && strings.TrimSpace(line) == "---":
			inFrontmatter = true
		case inFrontmatter && strings.TrimSpace(line) == "---":
			inFrontmatter = false
			foundEnd = true
		case inFrontmatter:
			fmLines = append(fmLines, line)
		case foundEnd:
			bodyLines = append(bodyLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("scan content: %w", err)
	}

	if !foundEnd {
		return "", "", errors.New("frontmatter not closed (missing ---)")
	}
	return strings.Join(fmLines, "\n"), strings.Join(bodyLines, "\n"), nil
}
