package model

// Semester is a numbered term within a branch.
type Semester struct {
	ID       string    `json:"id"`
	Number   int       `json:"number"`
	Subjects []Subject `json:"subjects"`
}

// CreateSemesterRequest is the payload for creating a semester.
// The zero value fails `required`, so non-positive numbers never bind.
type CreateSemesterRequest struct {
	Number int `json:"number" binding:"required,gt=0"`
}
