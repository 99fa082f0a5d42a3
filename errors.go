package blankfill

import "errors"

var (
	// ErrStructure is matched by every *StructureError.
	ErrStructure = errors.New("unrecognized document structure")
	// ErrNotDocument is returned when a file is not a zip-based container.
	ErrNotDocument = errors.New("not a word-processing container")
	// ErrMissingPart is returned when a container has no word/document.xml.
	ErrMissingPart = errors.New("document body part not found")
	// ErrUnsafePath is returned for archive entries outside the target dir.
	ErrUnsafePath = errors.New("archive entry escapes destination")
	// ErrEmptyJobs is returned by FillBatch for an empty job list.
	ErrEmptyJobs = errors.New("no jobs provided")
)

// StructureError reports a tree that could not be parsed or lacks the
// w:document/w:body vocabulary. It aborts the whole pass.
type StructureError struct {
	Reason string
	Err    error // parse error, if any
}

func (e *StructureError) Error() string {
	msg := ErrStructure.Error() + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StructureError) Unwrap() error { return e.Err }

func (e *StructureError) Is(target error) bool { return target == ErrStructure }
