package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/promptkit/template"
)

// entry pairs a definition with its built template.
type entry struct {
	def    Definition
	prompt *template.PromptTemplate
}

// Library is a named collection of prompt templates, optionally backed by
// a directory of prompt files. It is safe for concurrent use.
type Library struct {
	cfg      Config
	logger   *slog.Logger
	onReload func(names []string, err error)

	mu      sync.RWMutex
	entries map[string]entry
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used for reload and watch events.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithOnReload registers a callback invoked after every directory reload
// with the loaded prompt names, or the error that aborted the reload.
func WithOnReload(fn func(names []string, err error)) Option {
	return func(l *Library) { l.onReload = fn }
}

// New creates a Library. If cfg.Dir is set, its prompt files are loaded
// before New returns. If cfg.Watch is set, the directory is watched until
// ctx is cancelled.
func New(ctx context.Context, cfg Config, opts ...Option) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid library config: %w", err)
	}

	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultConfig().Debounce
	}

	l := &Library{
		cfg:     cfg,
		logger:  slog.Default(),
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(l)
	}

	if cfg.Dir != "" {
		if err := l.Reload(ctx); err != nil {
			return nil, err
		}
	}

	if cfg.Watch {
		watcher, err := l.newWatcher()
		if err != nil {
			return nil, err
		}
		go l.watchLoop(ctx, watcher)
	}
	return l, nil
}

// Reload rebuilds the library from its directory. If any file fails to load
// or build, the current prompts stay in place and the error is returned.
// Prompts added with Register are dropped by a successful reload.
func (l *Library) Reload(ctx context.Context) error {
	if l.cfg.Dir == "" {
		return ErrNoDir
	}

	entries, err := l.loadEntries(ctx)
	if err != nil {
		l.notify(nil, err)
		return err
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	names := sortedNames(entries)
	l.logger.Debug("prompt library loaded",
		slog.String("dir", l.cfg.Dir),
		slog.Int("prompts", len(names)))
	l.notify(names, nil)
	return nil
}

func (l *Library) loadEntries(ctx context.Context) (map[string]entry, error) {
	defs, err := LoadDir(ctx, l.cfg.Dir)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]entry, len(defs))
	for _, def := range defs {
		p, err := def.Build(l.buildOptions()...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Path, err)
		}
		entries[def.Name] = entry{def: def, prompt: p}
	}
	return entries, nil
}

// Register adds a prompt to the library. Registering an existing name
// fails with ErrDuplicate.
func (l *Library) Register(def Definition) error {
	p, err := def.Build(l.buildOptions()...)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[def.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, def.Name)
	}
	l.entries[def.Name] = entry{def: def, prompt: p}
	return nil
}

// Get returns the prompt with the given name.
func (l *Library) Get(name string) (*template.PromptTemplate, error) {
	e, err := l.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.prompt, nil
}

// Definition returns the definition the named prompt was built from.
func (l *Library) Definition(name string) (Definition, error) {
	e, err := l.lookup(name)
	if err != nil {
		return Definition{}, err
	}
	return e.def, nil
}

// Render renders the named prompt with bindings.
func (l *Library) Render(name string, bindings template.Bindings) (string, error) {
	p, err := l.Get(name)
	if err != nil {
		return "", err
	}

	out, err := p.Render(bindings)
	if err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return out, nil
}

// Schema returns the input schema of the named prompt, titled with its
// name and description.
func (l *Library) Schema(name string) (*jsonschema.Schema, error) {
	e, err := l.lookup(name)
	if err != nil {
		return nil, err
	}

	schema, err := e.prompt.InputSchema()
	if err != nil {
		return nil, fmt.Errorf("schema for prompt %s: %w", name, err)
	}
	schema.Title = name
	schema.Description = e.def.Description
	return schema, nil
}

// Names returns the names of all prompts, sorted.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedNames(l.entries)
}

// Len returns the number of prompts.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Library) lookup(name string) (entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, ok := l.entries[name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

func (l *Library) buildOptions() []template.Option {
	if l.cfg.ValidateAll {
		return []template.Option{template.WithValidation()}
	}
	return nil
}

func (l *Library) notify(names []string, err error) {
	if l.onReload != nil {
		l.onReload(names, err)
	}
}

func sortedNames(entries map[string]entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
