package model

import "github.com/google/uuid"

// NewID generates a globally unique identifier for a new catalog entity.
func NewID() string {
	return uuid.NewString()
}
