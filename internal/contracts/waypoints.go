package contracts

import (
	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/cfgnode"
)

// Visit radii around contract waypoints, metres
const (
	takeoffRadius = 20
	parkingRadius = 35
	helipadRadius = 20
)

// waypointGenerator collects the waypoints of a contract and tracks the
// index the add-on assigns to each of them
type waypointGenerator struct {
	iconsPath string
	node      *cfgnode.Node
	count     int
}

func newWaypointGenerator(iconsPath string) *waypointGenerator {
	return &waypointGenerator{
		iconsPath: iconsPath,
		node:      cfgnode.New("BEHAVIOUR").Set("name", "WaypointGenerator").Set("type", "WaypointGenerator"),
	}
}

func setPosition(n *cfgnode.Node, site *catalog.Site) *cfgnode.Node {
	return n.Set("latitude", site.Lat).
		Set("longitude", site.Lon).
		Set("altitude", site.Altitude.Relative)
}

// marked adds a visible waypoint with an icon and returns its index
func (g *waypointGenerator) marked(name, icon string, site *catalog.Site) int {
	wp := g.node.Child("WAYPOINT").Set("name", name).Set("icon", g.iconsPath+icon)
	setPosition(wp, site)
	g.count++
	return g.count - 1
}

// hidden adds an invisible waypoint and returns its index
func (g *waypointGenerator) hidden(name string, site *catalog.Site) int {
	wp := g.node.Child("WAYPOINT").Set("name", name).Set("hidden", true)
	setPosition(wp, site)
	g.count++
	return g.count - 1
}

// near adds count hidden waypoints scattered around the waypoint at index
// and returns the index of the first one
func (g *waypointGenerator) near(index int, altitude float64, count int) int {
	g.node.Child("RANDOM_WAYPOINT_NEAR").
		Set("hidden", true).
		Set("nearIndex", index).
		Set("altitude", altitude).
		Set("count", count).
		Set("minDistance", 1).
		Set("maxDistance", 2)
	first := g.count
	g.count += count
	return first
}

// destination adds the parking and helipad of a location
func (g *waypointGenerator) destination(loc *catalog.Location) (parking, helipad int) {
	parking, helipad = -1, -1
	if loc.AircraftParking != nil {
		parking = g.marked(loc.Name+" aircraft parking", "Parking", loc.AircraftParking)
	}
	if loc.Helipad != nil {
		helipad = g.marked(loc.Name+" helipad", "Helipad", loc.Helipad)
	}
	return parking, helipad
}

// origin adds the runway and helipad of a location
func (g *waypointGenerator) origin(loc *catalog.Location) (runway, helipad int) {
	runway, helipad = -1, -1
	if loc.AircraftLaunch != nil {
		runway = g.marked(loc.Name+" runway", "Runway", loc.AircraftLaunch)
	}
	if loc.Helipad != nil {
		helipad = g.marked(loc.Name+" helipad", "Helipad", loc.Helipad)
	}
	return runway, helipad
}

func takeoffParameter(loc *catalog.Location, runway, helipad int) *cfgnode.Node {
	var options []*cfgnode.Node
	if runway >= 0 {
		options = append(options, visitWaypoint(runway, takeoffRadius,
			"Start the takeoff of your plane at the beginning of the runway of the "+loc.Name, true))
	}
	if helipad >= 0 {
		options = append(options, visitWaypoint(helipad, takeoffRadius,
			"Takeoff your VTOL vessel from the helipad of the "+loc.Name, true))
	}
	return alternatives("Takeoff your vessel at the starting point. You have options", options)
}

func landParameter(loc *catalog.Location, parking, helipad int) *cfgnode.Node {
	var options []*cfgnode.Node
	if parking >= 0 {
		options = append(options, visitWaypoint(parking, parkingRadius,
			"Land your plane to the runway of the "+loc.Name+" and drive it to the parking", false))
	}
	if helipad >= 0 {
		options = append(options, visitWaypoint(helipad, helipadRadius,
			"Land your VTOL vessel to the helipad of the "+loc.Name, false))
	}
	return alternatives("Reach the destination. You have options", options)
}
