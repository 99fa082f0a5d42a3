package blankfill

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldAssignment holds the values written into one document. Dates are
// opaque strings; Direction and PracticeType select a side of the
// corresponding Vocabulary choice.
type FieldAssignment struct {
	StudentName  string `yaml:"student_name" json:"studentName" validate:"singleline"`
	Course       string `yaml:"course" json:"course" validate:"singleline"`
	Group        string `yaml:"group" json:"group" validate:"singleline"`
	DateFrom     string `yaml:"date_from" json:"dateFrom" validate:"singleline"`
	DateTo       string `yaml:"date_to" json:"dateTo" validate:"singleline"`
	Direction    string `yaml:"direction" json:"direction" validate:"singleline"`
	PracticeType string `yaml:"practice_type" json:"practiceType" validate:"singleline"`
}

var assignmentValidate *validator.Validate

func init() {
	assignmentValidate = validator.New()
	_ = assignmentValidate.RegisterValidation("singleline", validateSingleLine)
}

// validateSingleLine rejects control characters; values end up inside a
// single w:t node.
func validateSingleLine(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
}

// Validate checks an assignment before it reaches Fill: values must fit on
// one line and each selector must name one of the vocabulary's options.
// Empty vocabulary entries fall back to DefaultVocabulary. Fill itself never
// validates; it writes whatever it is given.
func (a FieldAssignment) Validate(v Vocabulary) error {
	if err := assignmentValidate.Struct(a); err != nil {
		return fmt.Errorf("invalid assignment: %w", err)
	}
	v = v.merge(DefaultVocabulary())
	if err := checkSelection("direction", a.Direction, v.Direction); err != nil {
		return err
	}
	return checkSelection("practice type", a.PracticeType, v.PracticeType)
}

func checkSelection(name, sel string, c Choice) error {
	if sel == "" || sel == c.Left || sel == c.Right {
		return nil
	}
	return fmt.Errorf("invalid assignment: %s %q is neither %q nor %q", name, sel, c.Left, c.Right)
}
