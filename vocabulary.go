package blankfill

// Choice is a pair of mutually exclusive options written as "Left/Right".
type Choice struct {
	Left  string `yaml:"left" json:"left"`
	Right string `yaml:"right" json:"right"`
}

// KeepLeft reports which half a selection resolves to. An empty selection
// or the left option keeps the left half; anything else keeps the right.
func (c Choice) KeepLeft(selection string) bool { return selection == "" || selection == c.Left }

// Vocabulary lists the anchor phrases and option pairs a template uses.
type Vocabulary struct {
	CourseAnchor string `yaml:"course_anchor" json:"courseAnchor"`
	GroupAnchor  string `yaml:"group_anchor" json:"groupAnchor"`
	NameCaption  string `yaml:"name_caption" json:"nameCaption"`
	TermAnchor   string `yaml:"term_anchor" json:"termAnchor"`
	Direction    Choice `yaml:"direction" json:"direction"`
	PracticeType Choice `yaml:"practice_type" json:"practiceType"`
}

// DefaultVocabulary returns the phrases of the internship assignment form.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		CourseAnchor: "Выдано студенту",
		GroupAnchor:  "группы",
		NameCaption:  "(фамилия, имя, отчество при наличии)",
		TermAnchor:   "Срок прохождения практики",
		Direction:    Choice{Left: "09.03.04", Right: "38.03.05"},
		PracticeType: Choice{Left: "Научно-исследовательская", Right: "Проектная"},
	}
}

// merge fills empty entries of v from d.
func (v Vocabulary) merge(d Vocabulary) Vocabulary {
	pick := func(a, b string) string {
		if a == "" {
			return b
		}
		return a
	}
	v.CourseAnchor = pick(v.CourseAnchor, d.CourseAnchor)
	v.GroupAnchor = pick(v.GroupAnchor, d.GroupAnchor)
	v.NameCaption = pick(v.NameCaption, d.NameCaption)
	v.TermAnchor = pick(v.TermAnchor, d.TermAnchor)
	if v.Direction == (Choice{}) {
		v.Direction = d.Direction
	}
	if v.PracticeType == (Choice{}) {
		v.PracticeType = d.PracticeType
	}
	return v
}
