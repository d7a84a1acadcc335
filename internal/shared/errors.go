package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Collection errors
	ErrEmptyInput    = fmt.Errorf("empty input")
	ErrDuplicateSong = fmt.Errorf("song already in collection")
	ErrSongNotFound  = fmt.Errorf("song not found")

	// Catalog and service errors
	ErrSearchUnavailable  = fmt.Errorf("catalog search unavailable")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
