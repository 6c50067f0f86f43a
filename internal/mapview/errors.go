package mapview

import "errors"

var ErrRouteTooShort = errors.New("route is too short to draw")
