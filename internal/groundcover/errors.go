package groundcover

import "errors"

// Validation failures. All of them are reported before the grid is touched.
var (
	ErrLayerNotFound        = errors.New("layer not found")
	ErrInvalidLayerKind     = errors.New("layer is not a ground cover layer")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
