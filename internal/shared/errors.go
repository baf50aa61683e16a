package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Identity errors
	ErrUserResolution = fmt.Errorf("unable to resolve user")

	// API and service errors
	ErrAPIRequest   = fmt.Errorf("API request failed")
	ErrDecode       = fmt.Errorf("failed to decode response")
	ErrToolNotFound = fmt.Errorf("tool not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
