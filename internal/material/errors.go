package material

import "errors"

// Configuration errors. All of these are fatal at scene construction.
var (
	// ErrUnknownMaterial indicates a contact rule references a material name
	// that was never registered.
	ErrUnknownMaterial = errors.New("material: contact rule references unknown material")

	// ErrDuplicateMaterial indicates a second registration for the same name.
	ErrDuplicateMaterial = errors.New("material: material already registered")

	// ErrDuplicateRule indicates a second contact rule for the same unordered
	// pair. Rules must be replaced through flags, never stacked.
	ErrDuplicateRule = errors.New("material: contact rule already registered for pair")
)
