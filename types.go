package blankfill

import (
	"context"
	"runtime"
)

// DefaultMaxBack bounds the backward slot scan before the name caption.
const DefaultMaxBack = 6

// Runner lets FillBatch schedule work with any concurrency model.
type Runner interface {
	Go(fn func() error) // schedule
	Wait() error        // join / propagate first err
}

// SentenceProvider renders the composed sentences written into anchor runs.
type SentenceProvider interface {
	Sentence(tag string, vars map[string]any) (string, error)
}

// Options represents functional options for a fill pass
type Options struct {
	MaxBack      int         // 0 → DefaultMaxBack
	MaxForward   int         // 0 → unbounded forward scan
	Lenient      bool        // recover from malformed XML
	Vocabulary   *Vocabulary // nil → DefaultVocabulary
	TermTemplate string      // overrides the provider's "term" template
	Runner       Runner      // nil → NewLimitedRunner(ctx, Concurrency)
	Concurrency  int         // 0 → runtime.NumCPU()
}

// Functional option constructors
func WithMaxBack(n int) func(*Options) {
	return func(o *Options) { o.MaxBack = n }
}

func WithMaxForward(n int) func(*Options) {
	return func(o *Options) { o.MaxForward = n }
}

func WithLenient() func(*Options) {
	return func(o *Options) { o.Lenient = true }
}

// WithVocabulary replaces anchor phrases; empty entries fall back to
// DefaultVocabulary.
func WithVocabulary(v Vocabulary) func(*Options) {
	return func(o *Options) { o.Vocabulary = &v }
}

func WithTermTemplate(tpl string) func(*Options) {
	return func(o *Options) { o.TermTemplate = tpl }
}

func WithRunner(r Runner) func(*Options) {
	return func(o *Options) { o.Runner = r }
}

func WithConcurrency(n int) func(*Options) {
	return func(o *Options) { o.Concurrency = n }
}

func resolveOptions(optFns []func(*Options)) Options {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxBack <= 0 {
		opts.MaxBack = DefaultMaxBack
	}
	if opts.MaxForward < 0 {
		opts.MaxForward = 0
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return opts
}

func (o Options) vocabulary() Vocabulary {
	if o.Vocabulary == nil {
		return DefaultVocabulary()
	}
	return o.Vocabulary.merge(DefaultVocabulary())
}

func (o Options) runner(ctx context.Context) Runner {
	if o.Runner != nil {
		return o.Runner
	}
	return NewLimitedRunner(ctx, o.Concurrency)
}
