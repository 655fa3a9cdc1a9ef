package model

// Document is the entire persisted catalog, rooted at the branches
// collection. It is always written as a whole; there are no partial saves.
type Document struct {
	Branches []Branch `json:"branches"`
}

// EmptyDocument returns the canonical empty document used to bootstrap a
// fresh store.
func EmptyDocument() *Document {
	return &Document{Branches: []Branch{}}
}

// Clone returns a deep copy of the document. Mutations are always applied
// to a clone so that a failed save never corrupts the served state.
func (d *Document) Clone() *Document {
	clone := &Document{Branches: make([]Branch, len(d.Branches))}
	for i := range d.Branches {
		clone.Branches[i] = d.Branches[i].clone()
	}
	return clone
}

func (b Branch) clone() Branch {
	semesters := make([]Semester, len(b.Semesters))
	for i := range b.Semesters {
		semesters[i] = b.Semesters[i].clone()
	}
	b.Semesters = semesters
	return b
}

func (s Semester) clone() Semester {
	subjects := make([]Subject, len(s.Subjects))
	for i := range s.Subjects {
		subjects[i] = s.Subjects[i].clone()
	}
	s.Subjects = subjects
	return s
}

func (s Subject) clone() Subject {
	questions := make([]Question, len(s.Questions))
	for i := range s.Questions {
		questions[i] = s.Questions[i].clone()
	}
	s.Questions = questions
	return s
}

func (q Question) clone() Question {
	if q.Chapter != nil {
		chapter := *q.Chapter
		q.Chapter = &chapter
	}
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
