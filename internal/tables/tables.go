// Package tables writes the CSV overviews used to balance the catalog.
package tables

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/cfgnode"
	"github.com/kerbinside/gapgen/internal/contracts"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// Output file names
const (
	DistancesFile = "Distances.csv"
	RewardsFile   = "Rewards.csv"
)

// Builder produces the distance and reward tables of a catalog
type Builder struct {
	catalog *catalog.Catalog
	body    geometry.Body
	logger  *logger.Logger
}

// NewBuilder creates a table builder
func NewBuilder(cat *catalog.Catalog, body geometry.Body, log *logger.Logger) *Builder {
	return &Builder{
		catalog: cat,
		body:    body,
		logger:  log.Named("tables"),
	}
}

func formatDistance(km float64) string {
	return cfgnode.FormatFloat(math.Round(km*100) / 100)
}

// Distances returns the square matrix of distances between all locations
// with a header row and column of names
func (b *Builder) Distances() [][]string {
	locations := b.catalog.Locations()

	header := []string{"Distances"}
	for _, loc := range locations {
		header = append(header, loc.Name)
	}

	rows := [][]string{header}
	for i := range locations {
		row := []string{locations[i].Name}
		for j := range locations {
			d := b.body.Distance(locations[i].Position(), locations[j].Position())
			row = append(row, formatDistance(d))
		}
		rows = append(rows, row)
	}
	return rows
}

// Rewards returns the lowest and highest payment of every route contract
func (b *Builder) Rewards(gen *contracts.Generator) ([][]string, error) {
	rows := [][]string{{"Class", "Departure", "Destination", "Distance", "Min reward", "Max reward"}}
	for _, route := range b.catalog.Routes() {
		c, err := gen.Contract(route, nil)
		if err != nil {
			return nil, err
		}

		lowest, highest := c.Rewards().Bounds(c.PassengerRange(), gen.Refund(c.Class))
		b.logger.Debug("Calculated reward",
			logger.String("route", route.Name()),
			logger.Int("min", lowest),
			logger.Int("max", highest))

		rows = append(rows, []string{
			c.Class.Name,
			c.From.Name,
			c.To.Name,
			formatDistance(c.Distance),
			strconv.Itoa(lowest),
			strconv.Itoa(highest),
		})
	}
	return rows, nil
}

// WriteDistances writes the distance table to path
func (b *Builder) WriteDistances(path string) error {
	if err := writeCSV(path, b.Distances()); err != nil {
		return err
	}
	b.logger.Info("Distance table written",
		logger.Int("locations", len(b.catalog.Locations())),
		logger.String("file", path))
	return nil
}

// WriteRewards writes the reward table to path
func (b *Builder) WriteRewards(path string, gen *contracts.Generator) error {
	rows, err := b.Rewards(gen)
	if err != nil {
		return err
	}
	if err := writeCSV(path, rows); err != nil {
		return err
	}
	b.logger.Info("Reward table written",
		logger.Int("routes", len(rows)-1),
		logger.String("file", path))
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
