package blankfill

import (
	"strings"

	"github.com/beevik/etree"
)

// WordNamespace is the WordprocessingML main namespace.
const WordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Run is a handle to one w:r element of the document body.
type Run struct {
	Index    int // position in document order, fixed for one pass
	elem     *etree.Element
	detached bool
	written  bool // content replaced during this pass
}

// RunIndex is the ordered, flat view over every run of a document body.
type RunIndex struct {
	body *etree.Element
	runs []*Run
}

// BuildRunIndex walks the document body depth-first and records every run in
// document order. It returns a *StructureError when the tree is not a
// WordprocessingML document.
func BuildRunIndex(doc *etree.Document) (*RunIndex, error) {
	if doc == nil {
		return nil, &StructureError{Reason: "nil document"}
	}
	root := doc.Root()
	if root == nil {
		return nil, &StructureError{Reason: "document has no root element"}
	}
	if !isWord(root, "document") {
		return nil, &StructureError{Reason: "root element " + root.FullTag() + " is not w:document"}
	}
	body := wordChild(root, "body")
	if body == nil {
		return nil, &StructureError{Reason: "w:body not found"}
	}

	ri := &RunIndex{body: body}
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if isWord(c, "r") {
				ri.runs = append(ri.runs, &Run{Index: len(ri.runs), elem: c})
			}
			walk(c)
		}
	}
	walk(body)
	return ri, nil
}

// Len returns the number of runs recorded when the index was built,
// including runs detached since.
func (ri *RunIndex) Len() int { return len(ri.runs) }

// At returns the run at position i or nil when out of range.
func (ri *RunIndex) At(i int) *Run {
	if i < 0 || i >= len(ri.runs) {
		return nil
	}
	return ri.runs[i]
}

// Live returns the runs still attached to the tree, in document order.
func (ri *RunIndex) Live() []*Run {
	out := make([]*Run, 0, len(ri.runs))
	for _, r := range ri.runs {
		if !r.detached {
			out = append(out, r)
		}
	}
	return out
}

// Element exposes the underlying w:r node.
func (r *Run) Element() *etree.Element { return r.elem }

// Detached reports whether the run was removed from the tree during the pass.
func (r *Run) Detached() bool { return r.detached }

// Formatting returns the run's w:rPr block, or nil.
func (r *Run) Formatting() *etree.Element { return wordChild(r.elem, "rPr") }

// Text returns the content of the first w:t child. ok is false when the run
// has no w:t at all.
func (r *Run) Text() (text string, ok bool) {
	t := wordChild(r.elem, "t")
	if t == nil {
		return "", false
	}
	return t.Text(), true
}

// HasUnderline reports whether the formatting block carries an underline.
// An explicit w:val="none" switches the underline off.
func (r *Run) HasUnderline() bool {
	rPr := r.Formatting()
	if rPr == nil {
		return false
	}
	u := wordChild(rPr, "u")
	if u == nil {
		return false
	}
	return wordAttr(u, "val") != "none"
}

// HasTabStop reports whether the run holds a w:tab marker.
func (r *Run) HasTabStop() bool { return wordChild(r.elem, "tab") != nil }

// IsBlankSlot classifies the run as an unfilled template blank: underlined
// and either textually empty or carrying a tab marker.
func (r *Run) IsBlankSlot() bool {
	if r.detached || !r.HasUnderline() {
		return false
	}
	if text, ok := r.Text(); !ok || strings.TrimSpace(text) == "" {
		return true
	}
	return r.HasTabStop()
}

// prefix returns the namespace prefix the run element was written with.
func (r *Run) prefix() string { return r.elem.Space }

func isWord(e *etree.Element, local string) bool {
	return e.Tag == local && e.NamespaceURI() == WordNamespace
}

func wordChild(e *etree.Element, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if isWord(c, local) {
			return c
		}
	}
	return nil
}

// wordAttr looks up a w:-namespaced attribute by local name regardless of
// the prefix in use.
func wordAttr(e *etree.Element, local string) string {
	for i := range e.Attr {
		a := &e.Attr[i]
		if a.Key == local && (a.Space == "" || a.NamespaceURI() == WordNamespace) {
			return a.Value
		}
	}
	return ""
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
