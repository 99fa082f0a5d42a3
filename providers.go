package blankfill

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tyler-sommer/stick"
)

// TermSentence is the template tag rendered into the term anchor run.
const TermSentence = "term"

// DefaultTermTemplate composes the term line from its label and both dates.
const DefaultTermTemplate = "{{ label }}: с {{ from }} по {{ to }}"

// StickSentenceProvider renders Twig templates held in memory.
type StickSentenceProvider struct {
	env       *stick.Env
	templates map[string]string
	vars      map[string]any // shared template variables
}

// Option configures a StickSentenceProvider.
type Option func(*StickSentenceProvider) error

// WithFS loads every *.twig file found under dir in the supplied FS.
func WithFS[F fs.FS](fsys F, dir string) Option {
	return func(p *StickSentenceProvider) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			tag := strings.TrimSuffix(filepath.Base(path), ".twig")
			p.templates[tag] = strings.TrimRight(string(content), "\r\n")
			return nil
		})
	}
}

// WithTemplates lets you inject an in-memory map.
func WithTemplates(m map[string]string) Option {
	return func(p *StickSentenceProvider) error {
		for k, v := range m {
			p.templates[k] = v
		}
		return nil
	}
}

// WithVar adds a variable that will be available in all templates
func WithVar(key string, value any) Option {
	return func(p *StickSentenceProvider) error {
		p.vars[key] = value
		return nil
	}
}

// NewStickSentenceProvider builds a provider preloaded with the default term
// template; options may override it.
func NewStickSentenceProvider(opts ...Option) (*StickSentenceProvider, error) {
	p := &StickSentenceProvider{
		env:       stick.New(nil),
		templates: map[string]string{TermSentence: DefaultTermTemplate},
		vars:      make(map[string]any),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// defaultSentences serves Fillers created without a provider.
var defaultSentences SentenceProvider

func init() {
	p, err := NewStickSentenceProvider()
	if err != nil {
		panic(fmt.Sprintf("blankfill: default sentence provider: %v", err))
	}
	defaultSentences = p
}

// AddTemplate updates or inserts one template.
func (p *StickSentenceProvider) AddTemplate(tag, tpl string) { p.templates[tag] = tpl }

// Sentence renders the template for tag. Call-site vars win over shared ones.
func (p *StickSentenceProvider) Sentence(tag string, vars map[string]any) (string, error) {
	tpl, ok := p.templates[tag]
	if !ok {
		return "", fmt.Errorf("template %q not found", tag)
	}
	return render(p.env, tag, tpl, p.vars, vars)
}

// inlineTemplate serves a single template string for any tag.
type inlineTemplate string

func (t inlineTemplate) Sentence(tag string, vars map[string]any) (string, error) {
	return render(stick.New(nil), tag, string(t), nil, vars)
}

func render(env *stick.Env, tag, tpl string, shared, vars map[string]any) (string, error) {
	templateCtx := make(map[string]stick.Value, len(shared)+len(vars)+1)
	templateCtx["tag"] = tag
	for k, v := range shared {
		templateCtx[k] = v
	}
	for k, v := range vars {
		templateCtx[k] = v
	}

	var out strings.Builder
	if err := env.Execute(tpl, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute %q: %w", tag, err)
	}
	return out.String(), nil
}
