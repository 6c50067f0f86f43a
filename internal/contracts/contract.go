package contracts

import (
	"fmt"
	"strconv"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/cfgnode"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/internal/templating"
)

// Contract is a route prepared for generation
type Contract struct {
	Route    catalog.Route
	Class    Class
	From     *catalog.Location
	To       *catalog.Location
	Distance float64 // Great circle distance between the locations, km

	// Staff count of a service flight, drawn at generation time
	Staff int

	// Suggested flight plan, nil when none could be built
	Profile *flightplan.Profile
}

// Name returns the contract type name, also used as the file name
func (c *Contract) Name() string {
	return c.From.AlphanumName() + c.To.AlphanumName() + c.Class.Name
}

// PlaneAllowed reports whether the flight can be made by a plane
func (c *Contract) PlaneAllowed() bool {
	return c.From.PlaneAllowed(c.To)
}

// Rewards returns the funds and reputation of the contract
func (c *Contract) Rewards() Rewards {
	return RewardsFor(c.Route, c.Distance)
}

// PassengerRange returns the passenger counts the contract may carry
func (c *Contract) PassengerRange() PassengerRange {
	if c.Route.Kind == catalog.KindService {
		return PassengerRange{Min: c.Staff, Max: c.Staff}
	}
	return c.Class.Passengers
}

func (c *Contract) staffOf(trait string) int {
	if c.Route.StaffType == trait {
		return c.Staff
	}
	return 0
}

// businessStaffOf returns one when the VIP has the trait
func (c *Contract) businessStaffOf(trait string) int {
	if c.Route.StaffType == trait {
		return 1
	}
	return 0
}

func (c *Contract) passengersText() string {
	switch {
	case c.Route.Kind == catalog.KindService:
		return strconv.Itoa(c.Staff)
	case c.Class.CarriesPassengers():
		return varPassengers
	default:
		return ""
	}
}

func (c *Contract) synopsisData() templating.SynopsisData {
	data := templating.SynopsisData{
		FlightType:   c.Class.FlightType(),
		From:         c.From.Name,
		To:           c.To.Name,
		Passengers:   c.passengersText(),
		Distance:     c.Distance,
		PlaneAllowed: c.PlaneAllowed(),
	}
	if c.Profile != nil {
		data.Route = c.Route.Beacons
		data.AsFlown = c.Profile.AsFlown()
	}
	return data
}

func (c *Contract) descriptionData() templating.DescriptionData {
	return templating.DescriptionData{
		Objective:    c.Route.Objective,
		Departure:    c.From.Description,
		Destination:  c.To.Description,
		SpecialNotes: c.Route.SpecialNotes,
	}
}

// data returns the DATA nodes defining the contract variables
func (c *Contract) data() []*cfgnode.Node {
	var nodes []*cfgnode.Node
	add := func(typ, name, definition string) {
		nodes = append(nodes, cfgnode.New("DATA").Set("type", typ).Set(name, definition))
	}

	switch c.Route.Kind {
	case catalog.KindService:
		add("List<Kerbal>", "passengers", fmt.Sprintf("NewKerbals(%d, %q)", c.Staff, c.Route.StaffType))
	case catalog.KindBusiness:
		add("Kerbal", "VIK", fmt.Sprintf("NewKerbalWithTrait(%q)", c.Route.StaffType))
		add("string", "VIKwho", `@/VIK.Gender() == "Male" ? "he" : "she"`)
		add("string", "VIKwhom", `@/VIK.Gender() == "Male" ? "him" : "her"`)
		add("List<Kerbal>", "passengers", "[ @/VIK ]")
	default:
		add("int", "passengersNum", fmt.Sprintf("Random(%d, %d)", c.Class.Passengers.Min, c.Class.Passengers.Max))
		add("List<Kerbal>", "passengers", "NewKerbals("+varPassengers+")")
		if c.Route.Kind == catalog.KindTouristGroup {
			add("int", "needSecondCrewMember", "Random(0, 1)")
		}
	}
	return nodes
}

// behaviours returns the waypoint generator and the passenger spawning
// behaviours together with the parameters that refer to their waypoints
func (c *Contract) behaviours(iconsPath string) (behaviours []*cfgnode.Node, steps []*cfgnode.Node) {
	wps := newWaypointGenerator(iconsPath)
	parking, landingPad := wps.destination(c.To)
	behaviours = append(behaviours, wps.node)

	switch c.Route.Kind {
	case catalog.KindService:
		spawn := wps.hidden("Staff spawn point", c.From.StaffSpawn)
		first := wps.near(spawn, c.From.StaffSpawn.Altitude.Relative, c.Staff)

		staff := cfgnode.New("BEHAVIOUR").Set("name", "SpawnPassengers").Set("type", "SpawnKerbal")
		for i := 0; i < c.Staff; i++ {
			link := fmt.Sprintf("@/WaypointGenerator.Waypoints().ElementAt(%d)", first+i)
			staff.Child("KERBAL").
				Set("kerbal", fmt.Sprintf("@/passengers.ElementAt(%d)", i)).
				Set("owned", false).
				Set("addToRoster", false).
				Set("lat", link+".Latitude()").
				Set("lon", link+".Longitude()").
				Set("alt", link+".Altitude()")
		}
		behaviours = append(behaviours, staff)

	case catalog.KindBusiness:
		vip := c.From.VIPSpawn
		spawn := cfgnode.New("BEHAVIOUR").Set("name", "SpawnPassengers").Set("type", "SpawnKerbal")
		spawn.Child("KERBAL").
			Set("kerbal", "@/VIK").
			Set("owned", false).
			Set("addToRoster", false).
			Set("lat", vip.Lat).
			Set("lon", vip.Lon).
			Set("alt", vip.Altitude.Absolute())
		behaviours = append(behaviours, spawn)

	default:
		runway, pad := wps.origin(c.From)
		steps = append(steps, takeoffParameter(c.From, runway, pad))
		behaviours = append(behaviours, cfgnode.New("BEHAVIOUR").
			Set("name", "SpawnPassengers").
			Set("type", "SpawnPassengers").
			Set("kerbal", "@/passengers"))
	}

	steps = append(steps, landParameter(c.To, parking, landingPad))
	return behaviours, steps
}

// crew returns the crew requirements of the flight
func (c *Contract) crew() []*cfgnode.Node {
	switch c.Route.Kind {
	case catalog.KindService:
		return []*cfgnode.Node{
			crewRequest("Pilot", 1+c.staffOf("Pilot"), "an aircraft commander"),
		}
	case catalog.KindBusiness:
		return []*cfgnode.Node{
			crewRequest("Pilot", 1+c.businessStaffOf("Pilot"), "an aircraft commander"),
			crewRequest("Engineer", 1+c.businessStaffOf("Engineer"), "a flight engineer"),
		}
	case catalog.KindTouristGroup:
		return []*cfgnode.Node{
			crewRequest("Pilot", 1, "an aircraft commander"),
			optionsGroup("AtLeast", "Has at least one of these crew members").
				Set("count", varSecondCrewMember).
				Set("hidden", "("+varSecondCrewMember+" == 0)").
				Set("hideChildren", "("+varSecondCrewMember+" == 0)").
				Add(crewRequest("Pilot", 2, "a second pilot"), crewRequest("Engineer", 1, "a flight engineer")),
		}
	case catalog.KindCharter:
		return []*cfgnode.Node{
			crewRequest("Pilot", 1, "an aircraft commander"),
			optionsGroup("Any", "Has at least one of these crew members").
				Add(crewRequest("Pilot", 2, "a second pilot"), crewRequest("Engineer", 1, "a flight engineer")),
		}
	default:
		return []*cfgnode.Node{
			crewRequest("Pilot", 1, "an aircraft commander"),
			crewRequest("Pilot", 2, "a second pilot"),
			crewRequest("Engineer", 1, "a flight engineer"),
		}
	}
}

// parameters assembles the completion parameters around the waypoint steps
func (c *Contract) parameters(steps []*cfgnode.Node) []*cfgnode.Node {
	group := vesselGroup(c.crew()...)
	if c.Class.CarriesPassengers() {
		group.Add(passengersRequest(varPassengers))
	} else {
		group.Add(passengersRequest(""))
	}
	group.Add(steps...)
	group.Add(stopRequest(), waitingRequest())
	return []*cfgnode.Node{group, safetyRequest()}
}
