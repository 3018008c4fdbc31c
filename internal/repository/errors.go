package repository

import "errors"

// ErrNotFound is returned (wrapped) when a row lookup or delete matches nothing.
var ErrNotFound = errors.New("not found")
