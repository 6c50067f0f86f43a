package flightplan

import "errors"

var (
	ErrNoRunway      = errors.New("location has no runway")
	ErrNoLandingSite = errors.New("location has neither landable runway nor helipad")
)
