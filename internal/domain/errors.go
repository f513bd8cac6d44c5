package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource (project, folder, trip) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, deleting the last folder).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned when an external collaborator (the SNCF journey
// search) is unreachable or misconfigured. The core never retries; handlers
// map this to HTTP 502. Retry policy, if any, belongs to the caller.
var ErrUpstream = errors.New("upstream unavailable")
