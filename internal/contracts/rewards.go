package contracts

import (
	"fmt"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/cfgnode"
)

// Expression variables defined in the DATA nodes of a contract
const (
	varPassengers       = "@/passengersNum"
	varSecondCrewMember = "@/needSecondCrewMember"
)

// FundsExpr is an amount of funds that may depend on contract variables
type FundsExpr struct {
	Amount          float64
	PerPassenger    bool    // Multiplied by the passenger count
	SecondCrewBonus float64 // Relative bonus when a second crew member is required
}

// Fixed returns a constant amount
func Fixed(amount float64) FundsExpr {
	return FundsExpr{Amount: amount}
}

// String renders the expression in the add-on's expression language
func (e FundsExpr) String() string {
	amount := cfgnode.FormatFloat(e.Amount)
	switch {
	case e.PerPassenger:
		return amount + " * " + varPassengers
	case e.SecondCrewBonus != 0:
		return fmt.Sprintf("%s * (1.0 + %s * %s)", amount, cfgnode.FormatFloat(e.SecondCrewBonus), varSecondCrewMember)
	default:
		return amount
	}
}

// Eval returns the amount for the given variable values
func (e FundsExpr) Eval(passengers int, secondCrewMember bool) float64 {
	v := e.Amount
	if e.PerPassenger {
		v *= float64(passengers)
	}
	if secondCrewMember {
		v *= 1 + e.SecondCrewBonus
	}
	return v
}

// Rewards are the funds and reputation of a contract
type Rewards struct {
	Advance           FundsExpr
	Reward            FundsExpr
	Reputation        int
	FailureReputation int
}

// RewardsFor computes the rewards of a route flown over distance km
func RewardsFor(route catalog.Route, distance float64) Rewards {
	reward := float64(route.Reward)
	switch route.Kind {
	case catalog.KindService:
		total := 20 * distance
		return Rewards{Advance: Fixed(0.2 * total), Reward: Fixed(0.8 * total), Reputation: 0, FailureReputation: 2}
	case catalog.KindBusiness:
		return Rewards{Advance: Fixed(0), Reward: Fixed(reward), Reputation: 1, FailureReputation: 3}
	case catalog.KindTouristGroup:
		return Rewards{
			Advance:           FundsExpr{Amount: 0.75 * reward, SecondCrewBonus: 0.15},
			Reward:            FundsExpr{Amount: 0.25 * reward, SecondCrewBonus: 0.15},
			Reputation:        1,
			FailureReputation: 3,
		}
	case catalog.KindCharter:
		return Rewards{Advance: FundsExpr{Amount: 1.5 * distance, PerPassenger: true}, Reward: Fixed(0), Reputation: 2, FailureReputation: 4}
	case catalog.KindCommercial:
		half := FundsExpr{Amount: 0.6 * distance, PerPassenger: true}
		return Rewards{Advance: half, Reward: half, Reputation: 3, FailureReputation: 5}
	default:
		return Rewards{}
	}
}

// Randomization applied by the add-on to the reward funds
const (
	rewardFactorMin = 1.0
	rewardFactorMax = 1.15
)

// Bounds returns the lowest and the highest total payment of a contract:
// the advance plus the reward and the launch refund, randomized by the add-on
func (r Rewards) Bounds(passengers PassengerRange, refund float64) (lowest, highest int) {
	low := r.Advance.Eval(passengers.Min, false) + (r.Reward.Eval(passengers.Min, false)+refund)*rewardFactorMin
	high := r.Advance.Eval(passengers.Max, true) + (r.Reward.Eval(passengers.Max, true)+refund)*rewardFactorMax
	return int(low), int(high)
}
