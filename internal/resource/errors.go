package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound is returned when a (path, local id) pair or unique
	// id does not name any registered resource.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnknownModelResource is returned when a reference resolves to a
	// resource of the wrong kind.
	ErrUnknownModelResource = errors.New("unknown model resource")

	// ErrInvalidModelResource is returned when a resource is used before its
	// mandatory references have been set.
	ErrInvalidModelResource = errors.New("invalid model resource")

	// ErrModelMismatch is returned when a reference crosses model boundaries.
	ErrModelMismatch = errors.New("resource belongs to a different model")

	// ErrDuplicateResourceID is returned when a local id is reserved twice in
	// the same part.
	ErrDuplicateResourceID = errors.New("duplicate resource id")

	// ErrCircularDependency is returned by SortedResources when resources
	// depend on each other.
	ErrCircularDependency = errors.New("circular resource dependency")
)

// Error annotates a resource failure with the resource it concerns.
type Error struct {
	Path string
	ID   ModelResourceID
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resource %d in %q: %v", e.ID, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
