// Package contracts turns catalog routes into contract definitions for the
// game's contract configurator add-on.
package contracts

import (
	"strings"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/templating"
)

// PassengerRange bounds the number of passengers of a contract
type PassengerRange struct {
	Min int
	Max int
}

// Class describes a contract type
type Class struct {
	Kind             catalog.Kind
	Name             string
	RouteColor       string // Colour of the route arrows on the map
	MaxSimultaneous  int
	ApproxLaunchCost float64 // Used to compensate a launch-recover cycle
	Agent            string
	Weight           float64 // Zero leaves the add-on default
	Passengers       PassengerRange
}

var classes = map[catalog.Kind]Class{
	catalog.KindService: {
		Kind:             catalog.KindService,
		Name:             "ServiceFlightContract",
		RouteColor:       "gold",
		MaxSimultaneous:  2,
		ApproxLaunchCost: 10000,
		Passengers:       PassengerRange{Min: 2, Max: 4}, // Both bounds included
	},
	catalog.KindBusiness: {
		Kind:             catalog.KindBusiness,
		Name:             "BusinessFlightContract",
		RouteColor:       "tomato",
		MaxSimultaneous:  1,
		ApproxLaunchCost: 10000,
		Agent:            "Kerbal Aircraft Rent",
		Weight:           0.6,
	},
	catalog.KindTouristGroup: {
		Kind:             catalog.KindTouristGroup,
		Name:             "TouristGroupFlightContract",
		RouteColor:       "limegreen",
		MaxSimultaneous:  1,
		ApproxLaunchCost: 15000,
		Agent:            "Kerbal Aircraft Rent",
		Weight:           0.85,
		Passengers:       PassengerRange{Min: 3, Max: 6},
	},
	catalog.KindCharter: {
		Kind:             catalog.KindCharter,
		Name:             "CharterFlightContract",
		RouteColor:       "blue",
		MaxSimultaneous:  2,
		ApproxLaunchCost: 30000,
		Agent:            "Kerbin Charter Jets",
		Weight:           0.85,
		Passengers:       PassengerRange{Min: 8, Max: 17},
	},
	catalog.KindCommercial: {
		Kind:             catalog.KindCommercial,
		Name:             "CommercialFlightContract",
		RouteColor:       "skyblue",
		MaxSimultaneous:  2,
		ApproxLaunchCost: 90000,
		Agent:            "Kerbin BlueSky Airlines",
		Weight:           0.85,
		Passengers:       PassengerRange{Min: 24, Max: 65},
	},
}

// ClassOf returns the class of a contract kind. Unknown kinds get a black
// route and no rewards of their own.
func ClassOf(kind catalog.Kind) Class {
	if c, ok := classes[kind]; ok {
		return c
	}
	return Class{Kind: kind, Name: "FlightContract", RouteColor: "black", MaxSimultaneous: 1}
}

// Classes returns every known class in kind order
func Classes() []Class {
	list := make([]Class, 0, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		list = append(list, classes[kind])
	}
	return list
}

// Type returns the class name without its "FlightContract" suffix
func (c Class) Type() string {
	return strings.TrimSuffix(c.Name, "FlightContract")
}

// FlightType returns the lower case words naming the flight, "tourist group"
func (c Class) FlightType() string {
	return templating.FlightType(c.Type())
}

// CarriesPassengers reports whether the passenger count is drawn by the
// add-on when the contract is offered
func (c Class) CarriesPassengers() bool {
	switch c.Kind {
	case catalog.KindTouristGroup, catalog.KindCharter, catalog.KindCommercial:
		return true
	}
	return false
}
