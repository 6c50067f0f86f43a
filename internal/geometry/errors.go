package geometry

import "errors"

var (
	ErrDistanceTooLarge = errors.New("distance too large for acceptable accuracy")
	ErrInvalidBody      = errors.New("invalid body parameters")
)
