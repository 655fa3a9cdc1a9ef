package store

// NotFoundError names the first missing segment on a resolution path.
// Ancestor errors take precedence: a lookup under a missing branch reports
// "Branch not found" regardless of how valid the deeper ids are.
type NotFoundError struct {
	Segment string
}

func (e *NotFoundError) Error() string {
	return e.Segment + " not found"
}

// ValidationError reports a missing or invalid required field on create.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func notFound(segment string) error {
	return &NotFoundError{Segment: segment}
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
