package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail surfaces the users.email unique constraint. The
	// constraint, not the pre-insert lookup, is what makes registration safe
	// under concurrent requests for the same address.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateSlug surfaces a catalog slug collision.
	ErrDuplicateSlug = errors.New("slug already exists")
)
