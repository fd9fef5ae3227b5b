package cache

import "errors"

// ErrNotFound is returned when a key, hash field or list element does not exist,
// or the key has expired.
var ErrNotFound = errors.New("cache: entry not found")
