package catalog

import (
	"errors"
	"fmt"
)

// Catalog is the read-only registry of locations, beacons and routes
type Catalog struct {
	locations []Location
	beacons   []Beacon
	routes    []Route

	locationIndex map[string]int
	beaconIndex   map[string]int
}

// New builds a catalog from already decoded records. Lookups of a duplicated
// name return the first record; Validate reports the duplicate.
func New(locations []Location, beacons []Beacon, routes []Route) *Catalog {
	c := &Catalog{
		locations:     locations,
		beacons:       beacons,
		routes:        routes,
		locationIndex: make(map[string]int, len(locations)),
		beaconIndex:   make(map[string]int, len(beacons)),
	}
	for i, loc := range locations {
		if _, ok := c.locationIndex[loc.Name]; !ok {
			c.locationIndex[loc.Name] = i
		}
	}
	for i, b := range beacons {
		if _, ok := c.beaconIndex[b.Name]; !ok {
			c.beaconIndex[b.Name] = i
		}
	}
	return c
}

// Locations returns all locations in catalog order
func (c *Catalog) Locations() []Location {
	return c.locations
}

// BeaconList returns all beacons in catalog order
func (c *Catalog) BeaconList() []Beacon {
	return c.beacons
}

// Routes returns all routes in catalog order
func (c *Catalog) Routes() []Route {
	return c.routes
}

// Location looks up a location by name
func (c *Catalog) Location(name string) (*Location, error) {
	i, ok := c.locationIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	return &c.locations[i], nil
}

// Beacon looks up a beacon by name
func (c *Catalog) Beacon(name string) (Beacon, error) {
	i, ok := c.beaconIndex[name]
	if !ok {
		return Beacon{}, fmt.Errorf("%w: %q", ErrUnknownBeacon, name)
	}
	return c.beacons[i], nil
}

// Beacons resolves a list of beacon names, failing on the first unknown one
func (c *Catalog) Beacons(names []string) ([]Beacon, error) {
	beacons := make([]Beacon, 0, len(names))
	for _, name := range names {
		b, err := c.Beacon(name)
		if err != nil {
			return nil, err
		}
		beacons = append(beacons, b)
	}
	return beacons, nil
}

// Endpoints resolves the departure and destination of a route
func (c *Catalog) Endpoints(r Route) (*Location, *Location, error) {
	from, err := c.Location(r.From)
	if err != nil {
		return nil, nil, fmt.Errorf("route %s: %w", r.Name(), err)
	}
	to, err := c.Location(r.To)
	if err != nil {
		return nil, nil, fmt.Errorf("route %s: %w", r.Name(), err)
	}
	return from, to, nil
}

// Validate checks the whole catalog and reports every problem found
func (c *Catalog) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	seen := make(map[string]bool, len(c.locations))
	for i := range c.locations {
		loc := &c.locations[i]
		if loc.Name == "" {
			invalid("location %d has no name", i+1)
			continue
		}
		if seen[loc.Name] {
			invalid("duplicate location %q", loc.Name)
		}
		seen[loc.Name] = true

		if loc.PositionSite() == nil {
			invalid("location %q has neither helipad nor aircraft launch point", loc.Name)
		}
		for j, rw := range loc.Runways {
			if !rw.First.Landable() && !rw.Second.Landable() {
				invalid("location %q runway %d has no landable end", loc.Name, j+1)
			}
			for _, end := range []RunwayEnd{rw.First, rw.Second} {
				if end.Landable() && (*end.Glideslope < 0 || *end.Glideslope >= 90) {
					invalid("location %q runway %d has glideslope %g out of range", loc.Name, j+1, *end.Glideslope)
				}
			}
		}
	}

	beaconSeen := make(map[string]bool, len(c.beacons))
	for _, b := range c.beacons {
		if beaconSeen[b.Name] {
			invalid("duplicate beacon %q", b.Name)
		}
		beaconSeen[b.Name] = true
	}

	routeSeen := make(map[[2]string]bool, len(c.routes))
	for _, r := range c.routes {
		key := [2]string{r.From, r.To}
		if routeSeen[key] {
			invalid("duplicate route %s", r.Name())
		}
		routeSeen[key] = true

		if !r.Kind.Valid() {
			invalid("route %s has unknown kind %q", r.Name(), r.Kind)
		}
		if r.Kind.FixedReward() && r.Reward <= 0 {
			invalid("route %s must have a positive reward", r.Name())
		}
		if r.Kind.TypedStaff() && r.StaffType == "" {
			invalid("route %s must have a staff type", r.Name())
		}
		if r.FlightLevel < 0 {
			invalid("route %s has negative flight level", r.Name())
		}
		if _, err := c.Beacons(r.Beacons); err != nil {
			errs = append(errs, fmt.Errorf("route %s: %w", r.Name(), err))
		}

		from, to, err := c.Endpoints(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch r.Kind {
		case KindService:
			if from.StaffSpawn == nil {
				invalid("route %s: origin base does not have staff spawn point", r.Name())
			}
		case KindBusiness:
			if from.VIPSpawn == nil {
				invalid("route %s: origin base does not have VIP spawn point", r.Name())
			}
		}
		if from.Name == to.Name {
			invalid("route %s leads to its own origin", r.Name())
		}
	}

	return errors.Join(errs...)
}
