// Package blankfill writes values into the blanks of a word-processing
// template that has no form fields. Blanks are found by context: an anchor
// phrase is located in the flat run sequence of the document body, and the
// underlined, textually empty runs around it are rewritten. Formatting
// blocks are never touched.
//
// # Problem Statement
//
// Many institutional forms are authored as plain documents where a blank is
// nothing more than an underlined run of spaces or an underlined tab. There
// are no named fields to bind to, the blank for one value is often split
// over several runs, and option lists such as "09.03.04/38.03.05" are typed
// into a single run for the reader to strike through by hand.
//
// # Basic Usage
//
//	f := blankfill.New(nil)
//	rep, err := f.FillArchive(ctx, "form.docx", "form_filled.docx", blankfill.FieldAssignment{
//	    StudentName:  "Иванов Иван Иванович",
//	    Course:       "3",
//	    Group:        "ИВТ-21",
//	    DateFrom:     "01.07.2025",
//	    DateTo:       "14.07.2025",
//	    Direction:    "09.03.04",
//	    PracticeType: "Проектная",
//	})
//
// A missing anchor or blank never fails the pass; it shows up in the Report:
//
//	out, _ := rep.Format(blankfill.FormatText)
//
// # Fill Steps
//
// Fill applies, in order:
//
//   - course: first blank after the course anchor
//   - group: first blank after the group anchor
//   - student name: contiguous blanks before the name caption (at most
//     MaxBack); the first receives the name, the rest a single space
//   - term: the anchor run itself receives a composed sentence and the runs
//     following it in its paragraph are removed
//   - direction and practice type: the first "A/B" run naming either option
//     is reduced to the selected side
//
// A field whose blank region already holds the value from an earlier pass is
// reported as already_filled, so a second pass leaves the form unchanged.
//
// Runs are addressed through a RunIndex built once per pass. Removed runs are
// marked detached rather than renumbered, so later lookups never see stale
// positions.
//
// # Sentences
//
// The term sentence is rendered with a Twig template through stick:
//
//	p, _ := blankfill.NewStickSentenceProvider(blankfill.WithTemplates(map[string]string{
//	    blankfill.TermSentence: "{{ label }} {{ from }} – {{ to }}",
//	}))
//	f := blankfill.New(p)
//
// # Containers
//
// FillArchive rewrites only word/document.xml and raw-copies every other
// entry. Unpack, Pack and FillDir cover the directory-based workflow, and
// FillBatch fills many containers concurrently.
package blankfill
