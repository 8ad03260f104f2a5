package entity

// FieldError reports the first schema rule an entity violates. The
// message is user-facing and localized; handlers surface it verbatim
// in a 400 response, mirroring how the persistence layer reports the
// first offending field of a document.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
