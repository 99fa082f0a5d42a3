package blankfill

import "strings"

// FindAnchor returns the index of the first live run whose text contains
// phrase, or -1.
func (ri *RunIndex) FindAnchor(phrase string) int {
	if phrase == "" {
		return -1
	}
	for _, r := range ri.runs {
		if r.detached {
			continue
		}
		if text, ok := r.Text(); ok && strings.Contains(text, phrase) {
			return r.Index
		}
	}
	return -1
}

// FindNextSlot returns the first blank slot strictly after from, or -1.
// maxForward > 0 limits how many live runs are inspected.
func (ri *RunIndex) FindNextSlot(from, maxForward int) int {
	seen := 0
	for i := from + 1; i < len(ri.runs); i++ {
		r := ri.runs[i]
		if r.detached {
			continue
		}
		if maxForward > 0 && seen == maxForward {
			break
		}
		seen++
		if r.IsBlankSlot() {
			return i
		}
	}
	return -1
}

// CollectPrecedingSlots walks backwards from before-1 and gathers the
// contiguous blank slots it meets, at most maxBack of them. The result is in
// document order.
func (ri *RunIndex) CollectPrecedingSlots(before, maxBack int) []int {
	if before > len(ri.runs) {
		before = len(ri.runs)
	}
	var res []int
	for i := before - 1; i >= 0 && len(res) < maxBack; i-- {
		r := ri.runs[i]
		if r.detached {
			continue
		}
		if !r.IsBlankSlot() {
			break
		}
		res = append([]int{i}, res...)
	}
	return res
}

// FindChoice returns the first live run whose text holds a slash and at
// least one of the option tokens, or -1.
func (ri *RunIndex) FindChoice(c Choice) int {
	for _, r := range ri.runs {
		if r.detached {
			continue
		}
		text, ok := r.Text()
		if !ok || !strings.Contains(text, "/") {
			continue
		}
		if (c.Left != "" && strings.Contains(text, c.Left)) || (c.Right != "" && strings.Contains(text, c.Right)) {
			return r.Index
		}
	}
	return -1
}

// valueBetween returns the first live run strictly between from and to that
// is underlined and already holds value, or -1. Runs written during the
// current pass do not count.
func (ri *RunIndex) valueBetween(from, to int, value string) int {
	for i := from + 1; i < to && i < len(ri.runs); i++ {
		if ri.runs[i].holds(value) {
			return i
		}
	}
	return -1
}

// valueBefore reports whether the live run right before i sits in the same
// paragraph and already holds value, i.e. i is a leftover of an earlier pass.
func (ri *RunIndex) valueBefore(i int, value string) bool {
	if i <= 0 || i >= len(ri.runs) {
		return false
	}
	for j := i - 1; j >= 0; j-- {
		r := ri.runs[j]
		if r.detached {
			continue
		}
		return r.elem.Parent() == ri.runs[i].elem.Parent() && r.holds(value)
	}
	return false
}

// holds reports whether an underlined run not touched in this pass carries
// exactly value, ignoring surrounding whitespace.
func (r *Run) holds(value string) bool {
	if r.detached || r.written || !r.HasUnderline() {
		return false
	}
	text, ok := r.Text()
	return ok && strings.TrimSpace(text) == strings.TrimSpace(value)
}
