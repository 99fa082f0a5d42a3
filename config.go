package blankfill

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk form of a fill run.
type Config struct {
	Vocabulary   Vocabulary      `yaml:"vocabulary"`
	Assignment   FieldAssignment `yaml:"assignment"`
	Lenient      bool            `yaml:"lenient"`
	MaxBack      int             `yaml:"max_back"`
	MaxForward   int             `yaml:"max_forward"`
	TermTemplate string          `yaml:"term_template"`
	Concurrency  int             `yaml:"concurrency"`
	Jobs         []Job           `yaml:"jobs"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the top-level assignment and every job's assignment
// against the configured vocabulary.
func (c *Config) Validate() error {
	if err := c.Assignment.Validate(c.Vocabulary); err != nil {
		return err
	}
	for i, job := range c.Jobs {
		if err := job.Assignment.Validate(c.Vocabulary); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}

// Options converts the file settings into functional options.
func (c *Config) Options() []func(*Options) {
	opts := []func(*Options){WithVocabulary(c.Vocabulary)}
	if c.Lenient {
		opts = append(opts, WithLenient())
	}
	if c.MaxBack > 0 {
		opts = append(opts, WithMaxBack(c.MaxBack))
	}
	if c.MaxForward > 0 {
		opts = append(opts, WithMaxForward(c.MaxForward))
	}
	if c.TermTemplate != "" {
		opts = append(opts, WithTermTemplate(c.TermTemplate))
	}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	return opts
}
