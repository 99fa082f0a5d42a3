package blankfill

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

const testNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// docXML wraps paragraphs into a complete document part.
func docXML(paragraphs ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + testNamespaces + `><w:body>` +
		strings.Join(paragraphs, "") +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
}

func para(runs ...string) string {
	return `<w:p><w:pPr><w:jc w:val="both"/></w:pPr>` + strings.Join(runs, "") + `</w:p>`
}

// textRun is a plain bold run.
func textRun(text string) string {
	return `<w:r><w:rPr><w:rFonts w:ascii="Times New Roman"/><w:b/><w:sz w:val="28"/></w:rPr>` +
		`<w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// blankRun is an underlined run holding only spaces.
func blankRun() string {
	return `<w:r w:rsidR="00A1"><w:rPr><w:rFonts w:ascii="Times New Roman"/><w:sz w:val="28"/><w:u w:val="single"/></w:rPr>` +
		`<w:t xml:space="preserve">      </w:t></w:r>`
}

// underlinedRun is an underlined run holding text, such as a written blank
// or an underlined label.
func underlinedRun(text string) string {
	return `<w:r><w:rPr><w:sz w:val="28"/><w:u w:val="single"/></w:rPr>` +
		`<w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// tabRun is an underlined run holding a tab marker.
func tabRun() string {
	return `<w:r><w:rPr><w:u w:val="single"/></w:rPr><w:tab/></w:r>`
}

// bareRun is an underlined run without any w:t.
func bareRun() string {
	return `<w:r><w:rPr><w:u w:val="single"/></w:rPr></w:r>`
}

func mustParse(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc, err := ParseDocument([]byte(xml), false)
	require.NoError(t, err)
	return doc
}

func mustIndex(t *testing.T, xml string) *RunIndex {
	t.Helper()
	ri, err := BuildRunIndex(mustParse(t, xml))
	require.NoError(t, err)
	return ri
}

// elementString serializes a detached copy of e.
func elementString(t *testing.T, e *etree.Element) string {
	t.Helper()
	d := etree.NewDocument()
	d.AddChild(e.Copy())
	s, err := d.WriteToString()
	require.NoError(t, err)
	return s
}

func runText(t *testing.T, ri *RunIndex, i int) string {
	t.Helper()
	text, _ := ri.At(i).Text()
	return text
}
