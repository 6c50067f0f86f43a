package contracts

import "errors"

var (
	// ErrInvalidRoute is returned when a route lacks what its contract kind needs
	ErrInvalidRoute = errors.New("invalid contract route")
)
