package repositories

import "errors"

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting owner
var ErrNotFound = errors.New("not found")
