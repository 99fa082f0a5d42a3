package blankfill

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var termVars = map[string]any{
	"label": "Срок прохождения практики",
	"from":  "01.07.2025",
	"to":    "14.07.2025",
}

func TestNewStickSentenceProvider(t *testing.T) {
	t.Run("default term template", func(t *testing.T) {
		provider, err := NewStickSentenceProvider()
		require.NoError(t, err)

		sentence, err := provider.Sentence(TermSentence, termVars)
		require.NoError(t, err)
		assert.Equal(t, "Срок прохождения практики: с 01.07.2025 по 14.07.2025", sentence)
	})

	t.Run("unknown tag", func(t *testing.T) {
		provider, err := NewStickSentenceProvider()
		require.NoError(t, err)

		sentence, err := provider.Sentence("nonexistent", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.Empty(t, sentence)
	})

	t.Run("broken template", func(t *testing.T) {
		provider, err := NewStickSentenceProvider(WithTemplates(map[string]string{"bad": "{{ unclosed "}))
		require.NoError(t, err)

		_, err = provider.Sentence("bad", nil)
		assert.Error(t, err)
	})
}

func TestWithTemplates(t *testing.T) {
	provider, err := NewStickSentenceProvider(WithTemplates(map[string]string{
		TermSentence: "{{ from }} - {{ to }}",
		"tagged":     "tag is {{ tag }}",
	}))
	require.NoError(t, err)

	sentence, err := provider.Sentence(TermSentence, termVars)
	require.NoError(t, err)
	assert.Equal(t, "01.07.2025 - 14.07.2025", sentence, "overrides the default")

	sentence, err = provider.Sentence("tagged", nil)
	require.NoError(t, err)
	assert.Equal(t, "tag is tagged", sentence)
}

func TestWithVar(t *testing.T) {
	provider, err := NewStickSentenceProvider(
		WithTemplates(map[string]string{"signed": "{{ from }} ({{ city }})"}),
		WithVar("city", "Казань"),
		WithVar("from", "shared"),
	)
	require.NoError(t, err)

	sentence, err := provider.Sentence("signed", map[string]any{"from": "01.07.2025"})
	require.NoError(t, err)
	assert.Equal(t, "01.07.2025 (Казань)", sentence, "call-site vars win")
}

func TestWithFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/term.twig":       {Data: []byte("{{ label }} {{ from }}–{{ to }}\n")},
		"templates/nested/sig.twig": {Data: []byte("signed {{ tag }}")},
		"templates/readme.md":       {Data: []byte("ignored")},
	}

	provider, err := NewStickSentenceProvider(WithFS(fsys, "templates"))
	require.NoError(t, err)

	sentence, err := provider.Sentence(TermSentence, termVars)
	require.NoError(t, err)
	assert.Equal(t, "Срок прохождения практики 01.07.2025–14.07.2025", sentence, "trailing newline trimmed")

	sentence, err = provider.Sentence("sig", nil)
	require.NoError(t, err)
	assert.Equal(t, "signed sig", sentence)

	_, err = provider.Sentence("readme", nil)
	assert.Error(t, err)

	t.Run("missing dir", func(t *testing.T) {
		_, err := NewStickSentenceProvider(WithFS(fsys, "nope"))
		assert.Error(t, err)
	})
}

func TestStickSentenceProvider_AddTemplate(t *testing.T) {
	provider, err := NewStickSentenceProvider()
	require.NoError(t, err)

	provider.AddTemplate(TermSentence, "{{ label }}: {{ from }}/{{ to }}")
	sentence, err := provider.Sentence(TermSentence, termVars)
	require.NoError(t, err)
	assert.Equal(t, "Срок прохождения практики: 01.07.2025/14.07.2025", sentence)
}

func TestInlineTemplate(t *testing.T) {
	sentence, err := inlineTemplate("{{ tag }}: {{ from }}").Sentence(TermSentence, termVars)
	require.NoError(t, err)
	assert.Equal(t, "term: 01.07.2025", sentence)
}
