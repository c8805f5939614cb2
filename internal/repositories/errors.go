package repositories

import "errors"

// ErrNotFound marks lookups that matched no row. Callers distinguish it
// from persistence faults with errors.Is.
var ErrNotFound = errors.New("record not found")
