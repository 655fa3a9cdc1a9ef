package model

// Branch is a top-level academic program or track grouping.
type Branch struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Semesters   []Semester `json:"semesters"`
}

// CreateBranchRequest is the payload for creating a branch.
type CreateBranchRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
