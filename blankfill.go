package blankfill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
)

// Filler writes a FieldAssignment into the blanks of a document body.
type Filler struct {
	sentences SentenceProvider
	log       *slog.Logger
}

// New returns a Filler that logs with slog.Default(). A nil provider uses
// the default stick templates.
func New(p SentenceProvider) *Filler {
	return NewWithLogger(p, slog.Default())
}

// NewWithLogger lets the caller supply their own logger.
func NewWithLogger(p SentenceProvider, log *slog.Logger) *Filler {
	if log == nil {
		log = slog.Default()
	}
	if p == nil {
		p = defaultSentences
	}
	return &Filler{sentences: p, log: log}
}

// Fill runs one pass over doc, mutating it in place. Fields whose anchor or
// slot cannot be found are left untouched and recorded in the report; only a
// *StructureError (or a cancelled ctx) fails the pass, and both are reported
// before anything is written. Values are written as given; use
// FieldAssignment.Validate to check input beforehand.
func (x *Filler) Fill(
	ctx context.Context,
	doc *etree.Document,
	a FieldAssignment,
	optFns ...func(*Options),
) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := resolveOptions(optFns)
	vocab := opts.vocabulary()

	ri, err := BuildRunIndex(doc)
	if err != nil {
		x.log.Debug("Run index failed", "error", err)
		return nil, err
	}
	x.log.Debug("=== FILL STARTED ===", "runs", ri.Len(), "max_back", opts.MaxBack, "max_forward", opts.MaxForward)

	sentences := x.sentences
	if opts.TermTemplate != "" {
		sentences = inlineTemplate(opts.TermTemplate)
	}

	// composed before any write
	sentence, composeErr := composeTerm(sentences, vocab.TermAnchor, a.DateFrom, a.DateTo)

	rep := &Report{RunCount: ri.Len()}
	rep.add(x.fillForward(ri, FieldCourse, vocab.CourseAnchor, a.Course, opts.MaxForward))
	rep.add(x.fillForward(ri, FieldGroup, vocab.GroupAnchor, a.Group, opts.MaxForward))
	rep.add(x.fillName(ri, vocab.NameCaption, a.StudentName, opts.MaxBack))

	term, removed := x.fillTerm(ri, vocab.TermAnchor, sentence, composeErr)
	rep.add(term)
	rep.RemovedRuns = removed

	rep.add(x.fillChoice(ri, FieldDirection, vocab.Direction, a.Direction))
	rep.add(x.fillChoice(ri, FieldPracticeType, vocab.PracticeType, a.PracticeType))

	x.log.Info("Fill completed", "filled", rep.Filled(), "fields", len(rep.Fields), "removed_runs", rep.RemovedRuns)
	return rep, nil
}

// DryRun fills a copy of doc and reports what a real pass would do.
func (x *Filler) DryRun(
	ctx context.Context,
	doc *etree.Document,
	a FieldAssignment,
	optFns ...func(*Options),
) (*Report, error) {
	if doc == nil {
		return nil, &StructureError{Reason: "nil document"}
	}
	return x.Fill(ctx, doc.Copy(), a, optFns...)
}

// Explain performs a dry run and returns a human-readable report.
func (x *Filler) Explain(
	ctx context.Context,
	doc *etree.Document,
	a FieldAssignment,
	optFns ...func(*Options),
) (string, error) {
	rep, err := x.DryRun(ctx, doc, a, optFns...)
	if err != nil {
		return "", err
	}
	return rep.formatAsText(), nil
}

// fillForward writes " value " into the first slot after the anchor.
func (x *Filler) fillForward(ri *RunIndex, field, anchor, value string, maxForward int) FieldOutcome {
	out := FieldOutcome{Field: field, Anchor: anchor, AnchorRun: -1}
	if value == "" {
		x.log.Debug("No value supplied, skipping", "field", field)
		out.Status = StatusSkipped
		return out
	}
	idx := ri.FindAnchor(anchor)
	out.AnchorRun = idx
	if idx < 0 {
		x.log.Warn("Anchor not found", "field", field, "anchor", anchor)
		out.Status = StatusAnchorNotFound
		return out
	}
	slot := ri.FindNextSlot(idx, maxForward)
	if slot < 0 {
		x.log.Warn("Slot not found", "field", field, "anchor_run", idx)
		out.Status = StatusSlotNotFound
		return out
	}
	if done := ri.valueBetween(idx, slot, value); done >= 0 {
		x.log.Debug("Field already filled", "field", field, "anchor_run", idx, "run", done)
		out.Status, out.Runs = StatusAlreadyFilled, []int{done}
		return out
	}

	text := " " + value + " "
	ri.At(slot).SetText(text)
	x.log.Debug("Filled field", "field", field, "anchor_run", idx, "slot", slot)
	out.Status, out.Runs, out.Value = StatusFilled, []int{slot}, text
	return out
}

// fillName writes the name into the first of the blanks preceding the
// caption and clears the rest to a single space.
func (x *Filler) fillName(ri *RunIndex, caption, name string, maxBack int) FieldOutcome {
	out := FieldOutcome{Field: FieldStudentName, Anchor: caption, AnchorRun: -1}
	if name == "" {
		x.log.Debug("No value supplied, skipping", "field", FieldStudentName)
		out.Status = StatusSkipped
		return out
	}
	idx := ri.FindAnchor(caption)
	out.AnchorRun = idx
	if idx < 0 {
		x.log.Warn("Anchor not found", "field", FieldStudentName, "anchor", caption)
		out.Status = StatusAnchorNotFound
		return out
	}
	slots := ri.CollectPrecedingSlots(idx, maxBack)
	if len(slots) == 0 {
		x.log.Warn("Slot not found", "field", FieldStudentName, "anchor_run", idx)
		out.Status = StatusSlotNotFound
		return out
	}
	if ri.valueBefore(slots[0], name) {
		// cleared leftovers of an earlier pass are still blank slots
		x.log.Debug("Field already filled", "field", FieldStudentName, "anchor_run", idx)
		out.Status = StatusAlreadyFilled
		return out
	}

	text := " " + name + " "
	ri.At(slots[0]).SetText(text)
	for _, j := range slots[1:] {
		ri.At(j).SetText(" ")
	}
	x.log.Debug("Filled field", "field", FieldStudentName, "anchor_run", idx, "slots", slots)
	out.Status, out.Runs, out.Value = StatusFilled, slots, text
	return out
}

// composeTerm renders the term sentence. It returns "" when either date is
// missing.
func composeTerm(sentences SentenceProvider, anchor, from, to string) (string, error) {
	if from == "" || to == "" {
		return "", nil
	}
	text, err := sentences.Sentence(TermSentence, map[string]any{
		"label": anchor,
		"from":  from,
		"to":    to,
	})
	if err != nil {
		return "", fmt.Errorf("compose %s: %w", FieldTerm, err)
	}
	return text, nil
}

// fillTerm rewrites the term anchor run with the composed sentence and drops
// the runs that followed it in its paragraph.
func (x *Filler) fillTerm(ri *RunIndex, anchor, sentence string, composeErr error) (FieldOutcome, int) {
	out := FieldOutcome{Field: FieldTerm, Anchor: anchor, AnchorRun: -1}
	if composeErr != nil {
		x.log.Warn("Sentence not composed, skipping", "field", FieldTerm, "error", composeErr)
		out.Status, out.Error = StatusSkipped, composeErr.Error()
		return out, 0
	}
	if sentence == "" {
		x.log.Debug("No value supplied, skipping", "field", FieldTerm)
		out.Status = StatusSkipped
		return out, 0
	}
	idx := ri.FindAnchor(anchor)
	out.AnchorRun = idx
	if idx < 0 {
		x.log.Warn("Anchor not found", "field", FieldTerm, "anchor", anchor)
		out.Status = StatusAnchorNotFound
		return out, 0
	}

	ri.At(idx).SetText(sentence)
	removed := ri.RemoveFollowingSiblings(idx)
	x.log.Debug("Filled field", "field", FieldTerm, "anchor_run", idx, "removed_runs", removed)
	out.Status, out.Runs, out.Value = StatusFilled, []int{idx}, sentence
	return out, removed
}

// fillChoice resolves the first slash choice mentioning either option.
func (x *Filler) fillChoice(ri *RunIndex, field string, c Choice, selection string) FieldOutcome {
	anchor := c.Left + "/" + c.Right
	out := FieldOutcome{Field: field, Anchor: anchor, AnchorRun: -1}
	idx := ri.FindChoice(c)
	out.AnchorRun = idx
	if idx < 0 {
		x.log.Warn("Choice not found", "field", field, "options", anchor)
		out.Status = StatusAnchorNotFound
		return out
	}

	run := ri.At(idx)
	before, _ := run.Text()
	if _, _, ok := splitChoice(before); !ok {
		x.log.Warn("Choice not resolvable", "field", field, "run", idx, "text", before)
		out.Status = StatusSlotNotFound
		return out
	}
	if selection != "" && selection != c.Left && selection != c.Right {
		x.log.Warn("Unknown selection, keeping right option", "field", field, "selection", selection)
	}
	run.ResolveChoice(c.KeepLeft(selection))
	after, _ := run.Text()
	x.log.Debug("Resolved choice", "field", field, "run", idx, "kept", after)
	out.Status, out.Runs, out.Value = StatusFilled, []int{idx}, after
	return out
}
