package blankfill

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SetText replaces every content child of the run with a single w:t holding
// text. The w:rPr block is kept as the same node. Leading or trailing
// whitespace marks the text node xml:space="preserve".
func (r *Run) SetText(text string) {
	rPr := r.Formatting()
	for n := len(r.elem.Child); n > 0; n = len(r.elem.Child) {
		r.elem.RemoveChildAt(n - 1)
	}
	if rPr != nil {
		r.elem.AddChild(rPr)
	}
	t := r.elem.CreateElement(qualify(r.prefix(), "t"))
	if edgeSpace(text) {
		t.CreateAttr("xml:space", "preserve")
	}
	t.SetText(text)
	r.written = true
}

// ResolveChoice keeps one side of an "optionA/optionB" text. Runs without
// exactly one slash are left alone.
func (r *Run) ResolveChoice(keepLeft bool) {
	t := wordChild(r.elem, "t")
	if t == nil {
		return
	}
	left, right, ok := splitChoice(t.Text())
	if !ok {
		return
	}
	if keepLeft {
		t.SetText(left)
	} else {
		t.SetText(right)
	}
	r.written = true
}

func splitChoice(text string) (left, right string, ok bool) {
	if strings.Count(text, "/") != 1 {
		return "", "", false
	}
	left, right, _ = strings.Cut(text, "/")
	return strings.TrimSpace(left), strings.TrimSpace(right), true
}

// RemoveFollowingSiblings drops every w:r that follows run i inside its
// parent element and marks the affected handles detached. It returns the
// number of removed run elements.
func (ri *RunIndex) RemoveFollowingSiblings(i int) int {
	anchor := ri.At(i)
	if anchor == nil || anchor.detached {
		return 0
	}
	parent := anchor.elem.Parent()
	if parent == nil {
		return 0
	}

	removed := 0
	after := false
	for _, c := range parent.ChildElements() {
		if c == anchor.elem {
			after = true
			continue
		}
		if after && isWord(c, "r") {
			parent.RemoveChild(c)
			removed++
		}
	}
	if removed > 0 {
		ri.markDetached()
	}
	return removed
}

// markDetached flags handles whose element no longer hangs off the body.
func (ri *RunIndex) markDetached() {
	for _, r := range ri.runs {
		if r.detached {
			continue
		}
		e := r.elem
		for e != nil && e != ri.body {
			e = e.Parent()
		}
		if e == nil {
			r.detached = true
		}
	}
}

func edgeSpace(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}
