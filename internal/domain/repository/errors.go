package repository

import "errors"

// Tagged error kinds produced by the persistence layer. Handlers match
// these exhaustively instead of inspecting driver error strings.
var (
	// ErrNotFound: no document matches the lookup.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate: a unique index rejected the write.
	ErrDuplicate = errors.New("repository: duplicate key")
)
