package contracts

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/cfgnode"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/internal/templating"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// GroupsFile holds the contract groups
const GroupsFile = "Groups.cfg"

// Settings control the generated contract pack
type Settings struct {
	RefundCoefficient float64 // Share of the launch cost refunded with the reward
	GroupPrefix       string
	MinVersion        string // Minimal contract configurator version
	MaxSimultaneous   int    // Offered contracts of all kinds at once
	Deadline          int    // Days
	IconsPath         string
	Seed              uint64 // Zero draws a random seed
}

// DefaultSettings returns the settings of the published contract pack
func DefaultSettings() Settings {
	return Settings{
		RefundCoefficient: 0.2,
		GroupPrefix:       "KerbinSideGap",
		MinVersion:        "1.9.6",
		MaxSimultaneous:   5,
		Deadline:          3,
		IconsPath:         "ContractPacks/KerbinSideGAP/Icons/",
	}
}

// Generator builds contract definitions for catalog routes
type Generator struct {
	catalog  *catalog.Catalog
	body     geometry.Body
	texts    *templating.Service
	settings Settings
	rng      *rand.Rand
	logger   *logger.Logger
}

// NewGenerator creates a contract generator
func NewGenerator(cat *catalog.Catalog, body geometry.Body, texts *templating.Service, settings Settings, log *logger.Logger) *Generator {
	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		catalog:  cat,
		body:     body,
		texts:    texts,
		settings: settings,
		rng:      rand.New(rand.NewPCG(seed, seed)),
		logger:   log.Named("contracts"),
	}
}

// Settings returns the generator settings
func (g *Generator) Settings() Settings {
	return g.settings
}

// Refund returns the launch refund paid with the reward of a class
func (g *Generator) Refund(class Class) float64 {
	return g.settings.RefundCoefficient * class.ApproxLaunchCost
}

// Contract prepares a route. profile may be nil.
func (g *Generator) Contract(route catalog.Route, profile *flightplan.Profile) (*Contract, error) {
	from, to, err := g.catalog.Endpoints(route)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		Route:    route,
		Class:    ClassOf(route.Kind),
		From:     from,
		To:       to,
		Distance: g.body.Distance(from.Position(), to.Position()),
		Profile:  profile,
	}

	switch route.Kind {
	case catalog.KindService:
		if from.StaffSpawn == nil {
			return nil, fmt.Errorf("%w: %s: origin base does not have staff spawn point", ErrInvalidRoute, route.Name())
		}
		pr := c.Class.Passengers
		c.Staff = pr.Min + g.rng.IntN(pr.Max-pr.Min+1)
	case catalog.KindBusiness:
		if from.VIPSpawn == nil {
			return nil, fmt.Errorf("%w: %s: origin base does not have VIP spawn point", ErrInvalidRoute, route.Name())
		}
	case catalog.KindTouristGroup, catalog.KindCharter, catalog.KindCommercial:
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidRoute, route.Name(), route.Kind)
	}

	return c, nil
}

// Node builds the CONTRACT_TYPE node of a contract
func (g *Generator) Node(c *Contract) (*cfgnode.Node, error) {
	description, err := g.texts.RenderDescription(c.descriptionData())
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", c.Name(), err)
	}
	synopsis, err := g.texts.RenderSynopsis(c.synopsisData())
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", c.Name(), err)
	}

	n := cfgnode.New("CONTRACT_TYPE").
		Set("name", c.Name()).
		Set("group", g.settings.GroupPrefix+c.Class.Name).
		Set("maxSimultaneous", 1).
		Set("targetBody", g.body.Name).
		Set("prestige", "Trivial").
		Set("deadline", g.settings.Deadline)
	if c.Class.Agent != "" {
		n.Set("agent", c.Class.Agent)
	}
	if c.Class.Weight != 0 {
		n.Set("weight", c.Class.Weight)
	}

	n.Set("title", "Perform "+c.Class.FlightType()+" flight").
		Set("description", description).
		Set("synopsis", synopsis).
		Set("completedMessage", "Your flight successfully completed.")

	rewards := c.Rewards()
	n.Set("advanceFunds", rewards.Advance).
		Set("failureReputation", rewards.FailureReputation).
		Set("failureFunds", rewards.Advance.String()+" * Random(0.1, 0.25)").
		Set("rewardReputation", rewards.Reputation).
		Set("rewardFunds", fmt.Sprintf("(%s + %s) * Random(%s, %s)",
			cfgnode.FormatFloat(g.Refund(c.Class)), rewards.Reward,
			cfgnode.FormatFloat(rewardFactorMin), cfgnode.FormatFloat(rewardFactorMax))).
		Set("rewardScience", 0)

	n.Add(c.data()...)
	behaviours, steps := c.behaviours(g.settings.IconsPath)
	n.Add(behaviours...)
	n.Add(c.parameters(steps)...)

	return n, nil
}

// GroupsNode builds the contract group holding one subgroup per class
func (g *Generator) GroupsNode(classes []Class) *cfgnode.Node {
	n := cfgnode.New("CONTRACT_GROUP").
		Set("name", g.settings.GroupPrefix+"Contract").
		Set("minVersion", g.settings.MinVersion).
		Set("maxSimultaneous", g.settings.MaxSimultaneous)
	for _, class := range classes {
		n.Child("CONTRACT_GROUP").
			Set("name", g.settings.GroupPrefix+class.Name).
			Set("maxSimultaneous", class.MaxSimultaneous)
	}
	return n
}

// WriteContract writes the contract file into dir and returns its path
func (g *Generator) WriteContract(dir string, c *Contract) (string, error) {
	node, err := g.Node(c)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, c.Name()+".cfg")
	if err := cfgnode.WriteFile(path, node); err != nil {
		return "", err
	}

	g.logger.Debug("Contract written",
		logger.String("route", c.Route.Name()),
		logger.String("file", path))

	return path, nil
}

// Generate writes a contract file for every catalog route and the groups
// file. profiles maps route names to their flight plans and may miss routes.
func (g *Generator) Generate(dir string, profiles map[string]*flightplan.Profile) (int, error) {
	incoming := make(map[string]int)
	outgoing := make(map[string]int)
	used := make(map[catalog.Kind]bool)

	for _, route := range g.catalog.Routes() {
		c, err := g.Contract(route, profiles[route.Name()])
		if err != nil {
			return 0, err
		}
		if _, err := g.WriteContract(dir, c); err != nil {
			return 0, err
		}
		outgoing[route.From]++
		incoming[route.To]++
		used[route.Kind] = true
	}

	var classes []Class
	for _, class := range Classes() {
		if used[class.Kind] {
			classes = append(classes, class)
		}
	}
	if err := cfgnode.WriteFile(filepath.Join(dir, GroupsFile), g.GroupsNode(classes)); err != nil {
		return 0, err
	}

	for _, loc := range g.catalog.Locations() {
		g.logger.Debug("Location traffic",
			logger.String("location", loc.Name),
			logger.Int("incoming", incoming[loc.Name]),
			logger.Int("outgoing", outgoing[loc.Name]))
	}

	count := len(g.catalog.Routes())
	g.logger.Info("Contracts generated",
		logger.Int("contracts", count),
		logger.Int("classes", len(classes)),
		logger.String("dir", dir))

	return count, nil
}
