// Package store implements the in-memory catalog hierarchy: path
// resolution, insertion with validation, and cascade deletion over a
// Document value. All operations are synchronous value-level mutations;
// callers own locking and persistence.
package store

import (
	"sort"
	"strings"
	"time"

	"github.com/acadstack/qcatalog-backend/internal/model"
)

// ─── Resolution ─────────────────────────────────────────────────────────
// Paths are walked strictly top-down so the first missing ancestor
// determines the reported segment.

func ResolveBranch(doc *model.Document, branchID string) (*model.Branch, error) {
	for i := range doc.Branches {
		if doc.Branches[i].ID == branchID {
			return &doc.Branches[i], nil
		}
	}
	return nil, notFound("Branch")
}

func ResolveSemester(doc *model.Document, branchID, semesterID string) (*model.Semester, error) {
	branch, err := ResolveBranch(doc, branchID)
	if err != nil {
		return nil, err
	}
	for i := range branch.Semesters {
		if branch.Semesters[i].ID == semesterID {
			return &branch.Semesters[i], nil
		}
	}
	return nil, notFound("Semester")
}

func ResolveSubject(doc *model.Document, branchID, semesterID, subjectID string) (*model.Subject, error) {
	semester, err := ResolveSemester(doc, branchID, semesterID)
	if err != nil {
		return nil, err
	}
	for i := range semester.Subjects {
		if semester.Subjects[i].ID == subjectID {
			return &semester.Subjects[i], nil
		}
	}
	return nil, notFound("Subject")
}

func ResolveQuestion(doc *model.Document, branchID, semesterID, subjectID, questionID string) (*model.Question, error) {
	subject, err := ResolveSubject(doc, branchID, semesterID, subjectID)
	if err != nil {
		return nil, err
	}
	for i := range subject.Questions {
		if subject.Questions[i].QuestionID == questionID {
			return &subject.Questions[i], nil
		}
	}
	return nil, notFound("Question")
}

// ─── Insertion ──────────────────────────────────────────────────────────

// InsertBranch appends a new branch with a generated id and empty semester
// list. Name is required; description defaults to "".
func InsertBranch(doc *model.Document, name, description string) (*model.Branch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name is required")
	}
	doc.Branches = append(doc.Branches, model.Branch{
		ID:          model.NewID(),
		Name:        name,
		Description: description,
		Semesters:   []model.Semester{},
	})
	return &doc.Branches[len(doc.Branches)-1], nil
}

// InsertSemester appends a new semester under the given branch.
func InsertSemester(doc *model.Document, branchID string, number int) (*model.Semester, error) {
	if number <= 0 {
		return nil, invalid("number must be a positive integer")
	}
	branch, err := ResolveBranch(doc, branchID)
	if err != nil {
		return nil, err
	}
	branch.Semesters = append(branch.Semesters, model.Semester{
		ID:       model.NewID(),
		Number:   number,
		Subjects: []model.Subject{},
	})
	return &branch.Semesters[len(branch.Semesters)-1], nil
}

// InsertSubject appends a new subject under the given semester.
func InsertSubject(doc *model.Document, branchID, semesterID, name, code string) (*model.Subject, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name is required")
	}
	if strings.TrimSpace(code) == "" {
		return nil, invalid("code is required")
	}
	semester, err := ResolveSemester(doc, branchID, semesterID)
	if err != nil {
		return nil, err
	}
	semester.Subjects = append(semester.Subjects, model.Subject{
		ID:        model.NewID(),
		Name:      name,
		Code:      code,
		Questions: []model.Question{},
	})
	return &semester.Subjects[len(semester.Subjects)-1], nil
}

// QuestionInput carries the optional-heavy question creation fields.
// Zero values select the documented defaults: current year and 1 mark.
type QuestionInput struct {
	Text    string
	Type    string
	Year    int
	QNumber string
	Chapter *string
	Marks   float64
	Options string
}

// InsertQuestion appends a new question under the given subject, then
// re-sorts the subject's questions by (year, qNumber). Options text is only
// honored for MCQ-typed questions: split on line breaks, trimmed, empty
// lines dropped.
func InsertQuestion(doc *model.Document, branchID, semesterID, subjectID string, in QuestionInput) (*model.Question, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, invalid("text is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, invalid("type is required")
	}
	if in.Marks < 0 {
		return nil, invalid("marks must be a positive number")
	}
	subject, err := ResolveSubject(doc, branchID, semesterID, subjectID)
	if err != nil {
		return nil, err
	}

	question := model.Question{
		QuestionID: model.NewID(),
		Year:       in.Year,
		QNumber:    in.QNumber,
		Chapter:    in.Chapter,
		Text:       in.Text,
		Type:       in.Type,
		Marks:      in.Marks,
	}
	if question.Year == 0 {
		question.Year = time.Now().Year()
	}
	if question.Marks == 0 {
		question.Marks = 1
	}
	if isMCQ(in.Type) {
		question.Options = splitOptions(in.Options)
	}

	subject.Questions = append(subject.Questions, question)
	sortQuestions(subject.Questions)

	return ResolveQuestion(doc, branchID, semesterID, subjectID, question.QuestionID)
}

func isMCQ(questionType string) bool {
	return strings.EqualFold(strings.TrimSpace(questionType), "MCQ")
}

func splitOptions(raw string) []string {
	options := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}

// sortQuestions keeps questions in (year ascending, qNumber lexicographic)
// display order. The sort is stable so same-key questions keep insertion
// order.
func sortQuestions(questions []model.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Year != questions[j].Year {
			return questions[i].Year < questions[j].Year
		}
		return questions[i].QNumber < questions[j].QNumber
	})
}

// ─── Deletion ───────────────────────────────────────────────────────────
// Deletes cascade structurally: removing a node removes the whole subtree.
// A missing leaf under a valid ancestor path is an error, never a no-op.

func DeleteBranch(doc *model.Document, branchID string) error {
	for i := range doc.Branches {
		if doc.Branches[i].ID == branchID {
			doc.Branches = append(doc.Branches[:i], doc.Branches[i+1:]...)
			return nil
		}
	}
	return notFound("Branch")
}

func DeleteSemester(doc *model.Document, branchID, semesterID string) error {
	branch, err := ResolveBranch(doc, branchID)
	if err != nil {
		return err
	}
	for i := range branch.Semesters {
		if branch.Semesters[i].ID == semesterID {
			branch.Semesters = append(branch.Semesters[:i], branch.Semesters[i+1:]...)
			return nil
		}
	}
	return notFound("Semester")
}

func DeleteSubject(doc *model.Document, branchID, semesterID, subjectID string) error {
	semester, err := ResolveSemester(doc, branchID, semesterID)
	if err != nil {
		return err
	}
	for i := range semester.Subjects {
		if semester.Subjects[i].ID == subjectID {
			semester.Subjects = append(semester.Subjects[:i], semester.Subjects[i+1:]...)
			return nil
		}
	}
	return notFound("Subject")
}

func DeleteQuestion(doc *model.Document, branchID, semesterID, subjectID, questionID string) error {
	subject, err := ResolveSubject(doc, branchID, semesterID, subjectID)
	if err != nil {
		return err
	}
	for i := range subject.Questions {
		if subject.Questions[i].QuestionID == questionID {
			subject.Questions = append(subject.Questions[:i], subject.Questions[i+1:]...)
			return nil
		}
	}
	return notFound("Question")
}
