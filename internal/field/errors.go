package field

import "errors"

var (
	// ErrInvalidCompositionMethod is returned for an unknown composition method.
	ErrInvalidCompositionMethod = errors.New("invalid composition method")

	// ErrInvalidColorChannel is returned for an unknown image color channel.
	ErrInvalidColorChannel = errors.New("invalid color channel")

	// ErrMaskRequired is returned when a mask composition has no mask field.
	ErrMaskRequired = errors.New("mask composition requires a mask field")

	// ErrInvalidChannel is returned when a function reference names an
	// output the function does not have, or one of the wrong type.
	ErrInvalidChannel = errors.New("invalid function channel")

	// ErrDuplicateProperty is returned when a volume data property name is
	// used twice.
	ErrDuplicateProperty = errors.New("duplicate volume data property")
)
