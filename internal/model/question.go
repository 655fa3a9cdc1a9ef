package model

// Question is an exam or study question attached to a subject. The type
// field is an open enumeration (Explanation, Short Answer, Long Answer,
// Diagram, Problem, Definition, MCQ, ...); MCQ questions additionally carry
// an ordered list of options.
type Question struct {
	QuestionID string   `json:"questionId"`
	Year       int      `json:"year"`
	QNumber    string   `json:"qNumber"`
	Chapter    *string  `json:"chapter"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Marks      float64  `json:"marks"`
	Options    []string `json:"options,omitempty"`
}

// CreateQuestionRequest is the payload for creating a question. Options is
// free text; for MCQ questions it is split on line breaks server-side.
type CreateQuestionRequest struct {
	Text    string  `json:"text" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Year    int     `json:"year" binding:"omitempty,gt=0"`
	QNumber string  `json:"qNumber"`
	Chapter *string `json:"chapter"`
	Marks   float64 `json:"marks" binding:"omitempty,gt=0"`
	Options string  `json:"options"`
}
