package catalog

import "errors"

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownBeacon   = errors.New("unknown beacon")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)
