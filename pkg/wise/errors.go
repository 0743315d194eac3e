package wise

import "errors"

var (
	ErrStaleWindowHandle      = errors.New("stale window handle")
	ErrPermissionDenied       = errors.New("accessibility permission denied")
	ErrInvalidDirectiveTarget = errors.New("window is not tracked")
	ErrTimeout                = errors.New("accessibility bridge timed out")
)
