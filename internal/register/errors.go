package register

import "errors"

// Sentinel errors returned by Register operations. Ingress handlers map
// these to HTTP status codes (internal/api); the planner does not see
// them, since GetDirectivesFor reports an absent entry as false.
var (
	ErrAlreadyRegistered = errors.New("application already registered")
	ErrNotRegistered     = errors.New("application not registered")
	ErrNotFound          = errors.New("not found")
	ErrAppNotFound       = errors.New("application not found")
	ErrLocationNotFound  = errors.New("location not found")
)
