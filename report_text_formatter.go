package blankfill

import (
	"fmt"
	"strings"
)

// formatAsText formats the report as an ASCII tree.
func (r *Report) formatAsText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fill Report (runs=%d, filled=%d/%d, removed=%d)\n",
		r.RunCount, r.Filled(), len(r.Fields), r.RemovedRuns)

	for i, f := range r.Fields {
		connector := "├─ "
		if i == len(r.Fields)-1 {
			connector = "└─ "
		}
		sb.WriteString("  " + connector + formatOutcome(f) + "\n")
	}
	return sb.String()
}

// formatOutcome formats information for a single field.
func formatOutcome(f FieldOutcome) string {
	parts := []string{f.Field, string(f.Status)}

	var details []string
	if f.Anchor != "" {
		details = append(details, fmt.Sprintf("anchor=%q", f.Anchor))
	}
	if f.AnchorRun >= 0 {
		details = append(details, fmt.Sprintf("at=%d", f.AnchorRun))
	}
	switch len(f.Runs) {
	case 0:
	case 1:
		details = append(details, fmt.Sprintf("run=%d", f.Runs[0]))
	default:
		details = append(details, fmt.Sprintf("runs=%v", f.Runs))
	}
	if f.Value != "" {
		details = append(details, fmt.Sprintf("value=%q", f.Value))
	}
	if f.Error != "" {
		details = append(details, fmt.Sprintf("error=%q", f.Error))
	}

	if len(details) > 0 {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(details, ", ")))
	}
	return strings.Join(parts, " ")
}
