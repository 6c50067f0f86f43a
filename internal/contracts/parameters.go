package contracts

import (
	"strings"

	"github.com/kerbinside/gapgen/internal/cfgnode"
)

func parameter(name, typ string) *cfgnode.Node {
	return cfgnode.New("PARAMETER").Set("name", name).Set("type", typ)
}

func optionsGroup(typ, title string) *cfgnode.Node {
	return parameter(typ, typ).
		Set("title", title).
		Set("disableOnStateChange", false)
}

func vesselGroup(children ...*cfgnode.Node) *cfgnode.Node {
	return parameter("VesselParameterGroup", "VesselParameterGroup").
		Set("title", "Perform a flight").
		Add(children...)
}

func crewRequest(trait string, count int, whois string) *cfgnode.Node {
	return parameter("HasCrew", "HasCrew").
		Set("trait", trait).
		Set("minCrew", count).
		Set("title", "Has "+whois+" aboard").
		Set("disableOnStateChange", false).
		Set("hideChildren", true)
}

// passengersRequest requires the passengers aboard. count is shown in the
// title when not empty.
func passengersRequest(count string) *cfgnode.Node {
	title := strings.ReplaceAll("Has all "+count+" passengers aboard", "  ", " ")
	p := parameter("HasPassengers", "HasCrew").
		Set("title", title).
		Set("disableOnStateChange", false).
		Set("kerbal", "@/passengers")
	if count != "" {
		p.Set("hideChildren", true)
	}
	return p
}

func visitWaypoint(index, distance int, title string, once bool) *cfgnode.Node {
	return parameter("VisitWaypoint", "VisitWaypoint").
		Set("index", index).
		Set("distance", distance).
		Set("title", title).
		Set("disableOnStateChange", once)
}

func stopRequest() *cfgnode.Node {
	return parameter("ReachState", "ReachState").
		Set("maxSpeed", 0.0).
		Set("situation", "LANDED").
		Set("title", "Stop your vessel completely").
		Set("disableOnStateChange", false).
		Set("completeInSequence", true).
		Set("hideChildren", true)
}

func waitingRequest() *cfgnode.Node {
	return parameter("Duration", "Duration").
		Set("duration", "30s").
		Set("preWaitText", "Wait for the passengers to exit").
		Set("waitingText", "Waiting for the passengers to exit").
		Set("completionText", "The passengers left the board").
		Set("disableOnStateChange", false).
		Set("completeInSequence", true)
}

func safetyRequest() *cfgnode.Node {
	return parameter("KerbalDeaths", "KerbalDeaths").
		Set("title", "Flight must be safe (avoid killing passengers)").
		Set("hideChildren", true).
		Set("kerbal", "@/passengers")
}

// alternatives wraps several ways to fulfil a step into an Any group, or
// returns the single option marked to complete in sequence
func alternatives(title string, options []*cfgnode.Node) *cfgnode.Node {
	if len(options) == 1 {
		return options[0].Set("completeInSequence", true)
	}
	return optionsGroup("Any", title).
		Set("completeInSequence", true).
		Add(options...)
}
