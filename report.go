package blankfill

// Field names used in reports.
const (
	FieldCourse       = "course"
	FieldGroup        = "group"
	FieldStudentName  = "student_name"
	FieldTerm         = "term"
	FieldDirection    = "direction"
	FieldPracticeType = "practice_type"
)

// FieldStatus describes what happened to one field during a pass.
type FieldStatus string

const (
	StatusFilled         FieldStatus = "filled"
	StatusAnchorNotFound FieldStatus = "anchor_not_found"
	StatusSlotNotFound   FieldStatus = "slot_not_found"
	StatusAlreadyFilled  FieldStatus = "already_filled"
	StatusSkipped        FieldStatus = "skipped" // no value supplied
)

// FieldOutcome records the result of one fill step.
type FieldOutcome struct {
	Field     string      `json:"field"`
	Anchor    string      `json:"anchor"`
	Status    FieldStatus `json:"status"`
	AnchorRun int         `json:"anchorRun"`      // -1 when the anchor was not found
	Runs      []int       `json:"runs,omitempty"` // runs whose content was rewritten
	Value     string      `json:"value,omitempty"`
	Error     string      `json:"error,omitempty"` // why a supplied value was not written
}

// Report summarises a fill pass. Misses are recorded here instead of being
// returned as errors.
type Report struct {
	RunCount    int            `json:"runCount"`
	RemovedRuns int            `json:"removedRuns"`
	Fields      []FieldOutcome `json:"fields"`
}

// Outcome returns the recorded outcome for field.
func (r *Report) Outcome(field string) (FieldOutcome, bool) {
	for _, f := range r.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldOutcome{}, false
}

// Filled counts the fields that were written.
func (r *Report) Filled() int {
	n := 0
	for _, f := range r.Fields {
		if f.Status == StatusFilled {
			n++
		}
	}
	return n
}

// FormatType represents different output formats for a report.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
)

// Format renders the report; unknown formats fall back to text.
func (r *Report) Format(f FormatType) (string, error) {
	if f == FormatJSON {
		return r.formatAsJSON()
	}
	return r.formatAsText(), nil
}

func (r *Report) add(o FieldOutcome) { r.Fields = append(r.Fields, o) }
