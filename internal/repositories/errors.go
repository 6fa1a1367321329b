package repositories

import "errors"

// ErrRecordNotFound is returned by every repository implementation when a
// lookup resolves to no row. Services translate it into their own taxonomy.
var ErrRecordNotFound = errors.New("record not found")
