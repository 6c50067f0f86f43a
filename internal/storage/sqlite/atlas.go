package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/pkg/logger"
	_ "modernc.org/sqlite"
)

// AtlasFile is the default atlas file name
const AtlasFile = "Atlas.db"

// Atlas is a SQLite export of the catalog and its synthesized flight plans
type Atlas struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewAtlas opens or creates the atlas database at dbPath
func NewAtlas(dbPath string, log *logger.Logger) (*Atlas, error) {
	storageLogger := log.Named("sqlite")

	storageLogger.Info("Opening atlas",
		logger.String("path", dbPath))

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// The atlas is shipped as a single file, so no write-ahead log
	if _, err := db.Exec("PRAGMA journal_mode=DELETE"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	atlas, err := NewAtlasWithDB(db, storageLogger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return atlas, nil
}

// NewAtlasWithDB wraps an open database and creates the schema
func NewAtlasWithDB(db *sql.DB, log *logger.Logger) (*Atlas, error) {
	if err := initDatabase(db, log); err != nil {
		return nil, err
	}
	return &Atlas{db: db, logger: log}, nil
}

// Close closes the database connection
func (a *Atlas) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// initDatabase initializes the database schema
func initDatabase(db *sql.DB, log *logger.Logger) error {
	log.Debug("Initializing atlas schema")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS locations (
			name TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			has_helipad INTEGER NOT NULL DEFAULT 0,
			has_runway INTEGER NOT NULL DEFAULT 0,
			runways INTEGER NOT NULL DEFAULT 0,
			launch_refund INTEGER NOT NULL DEFAULT 0,
			recovery_factor INTEGER NOT NULL DEFAULT 0,
			kk_base_name TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create locations table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS routes (
			name TEXT PRIMARY KEY,
			departure TEXT NOT NULL,
			destination TEXT NOT NULL,
			kind TEXT NOT NULL,
			distance REAL NOT NULL,
			as_flown REAL,          -- NULL when the route has no flight plan
			beacons TEXT,
			FOREIGN KEY (departure) REFERENCES locations(name) ON DELETE CASCADE,
			FOREIGN KEY (destination) REFERENCES locations(name) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create routes table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS waypoints (
			route TEXT NOT NULL,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			alt REAL NOT NULL,
			marker TEXT,
			hidden INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (route, seq),
			FOREIGN KEY (route) REFERENCES routes(name) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create waypoints table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_routes_departure ON routes(departure)`)
	if err != nil {
		return fmt.Errorf("failed to create index on routes.departure: %w", err)
	}

	log.Debug("Atlas schema initialized")
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Export replaces the atlas content with the catalog locations and routes
// and the waypoints of every profile
func (a *Atlas) Export(cat *catalog.Catalog, body geometry.Body, profiles map[string]*flightplan.Profile) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"waypoints", "routes", "locations"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	locStmt, err := tx.Prepare(`
		INSERT INTO locations (name, description, lat, lon, has_helipad, has_runway, runways,
			launch_refund, recovery_factor, kk_base_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare location insert statement: %w", err)
	}
	defer locStmt.Close()

	for _, loc := range cat.Locations() {
		pos := loc.Position()
		_, err := locStmt.Exec(
			loc.Name,
			loc.Description,
			pos.Lat,
			pos.Lon,
			boolToInt(loc.Helipad != nil),
			boolToInt(loc.AircraftLaunch != nil),
			len(loc.Runways),
			loc.LaunchRefund,
			loc.RecoveryFactor,
			nullableString(loc.KKBaseName),
		)
		if err != nil {
			return fmt.Errorf("failed to insert location %s: %w", loc.Name, err)
		}
	}

	routeStmt, err := tx.Prepare(`
		INSERT INTO routes (name, departure, destination, kind, distance, as_flown, beacons)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare route insert statement: %w", err)
	}
	defer routeStmt.Close()

	wpStmt, err := tx.Prepare(`
		INSERT INTO waypoints (route, seq, name, lat, lon, alt, marker, hidden)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare waypoint insert statement: %w", err)
	}
	defer wpStmt.Close()

	waypoints := 0
	for _, route := range cat.Routes() {
		from, to, err := cat.Endpoints(route)
		if err != nil {
			return err
		}

		profile := profiles[route.Name()]
		var asFlown any
		if profile != nil {
			asFlown = profile.AsFlown()
		}

		_, err = routeStmt.Exec(
			route.Name(),
			route.From,
			route.To,
			string(route.Kind),
			body.Distance(from.Position(), to.Position()),
			asFlown,
			nullableString(strings.Join(route.Beacons, ",")),
		)
		if err != nil {
			return fmt.Errorf("failed to insert route %s: %w", route.Name(), err)
		}

		if profile == nil {
			continue
		}
		for seq, wp := range profile.Waypoints {
			_, err := wpStmt.Exec(
				route.Name(),
				seq,
				wp.Name,
				wp.Lat,
				wp.Lon,
				wp.Altitude,
				nullableString(string(wp.Marker)),
				boolToInt(wp.Hidden),
			)
			if err != nil {
				return fmt.Errorf("failed to insert waypoint %s of %s: %w", wp.Name, route.Name(), err)
			}
			waypoints++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit atlas export: %w", err)
	}

	a.logger.Info("Atlas exported",
		logger.Int("locations", len(cat.Locations())),
		logger.Int("routes", len(cat.Routes())),
		logger.Int("waypoints", waypoints))

	return nil
}

// RouteWaypoints returns the stored waypoints of a route in flight order
func (a *Atlas) RouteWaypoints(route string) ([]flightplan.Waypoint, error) {
	rows, err := a.db.Query(`
		SELECT name, lat, lon, alt, marker, hidden
		FROM waypoints
		WHERE route = ?
		ORDER BY seq
	`, route)
	if err != nil {
		return nil, fmt.Errorf("failed to query waypoints: %w", err)
	}
	defer rows.Close()

	var waypoints []flightplan.Waypoint
	for rows.Next() {
		var wp flightplan.Waypoint
		var marker sql.NullString
		var hidden int
		if err := rows.Scan(&wp.Name, &wp.Lat, &wp.Lon, &wp.Altitude, &marker, &hidden); err != nil {
			return nil, fmt.Errorf("failed to scan waypoint: %w", err)
		}
		wp.Marker = flightplan.Marker(marker.String)
		wp.Hidden = hidden != 0
		waypoints = append(waypoints, wp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating waypoint rows: %w", err)
	}

	return waypoints, nil
}

// Count returns the number of rows of an atlas table
func (a *Atlas) Count(table string) (int, error) {
	switch table {
	case "locations", "routes", "waypoints":
	default:
		return 0, fmt.Errorf("unknown atlas table %q", table)
	}

	var n int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
