package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/amadiallo/solsize/internal/engine"
	_ "modernc.org/sqlite"
)

// Store persists named appliance configurations using SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens the database and initializes the schema
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS configurations (
		name TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS appliances (
		config_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		power_watts INTEGER NOT NULL,
		usage_hours REAL NOT NULL,
		start_hour INTEGER DEFAULT 0,
		PRIMARY KEY (config_name, name),
		FOREIGN KEY (config_name) REFERENCES configurations(name) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_appliances_config ON appliances(config_name, position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Configuration describes one saved appliance list
type Configuration struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Count     int       `json:"count"`
}

// SaveConfiguration writes the registry's appliances under the given
// name, replacing any previous contents wholesale. Registry order is
// kept through the position column.
func (s *Store) SaveConfiguration(name string, reg *engine.Registry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO configurations (name, updated_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`, name, time.Now()); err != nil {
		return fmt.Errorf("saving configuration %q: %w", name, err)
	}

	if _, err := tx.Exec(`DELETE FROM appliances WHERE config_name = ?`, name); err != nil {
		return err
	}

	for i, a := range reg.List() {
		_, err := tx.Exec(`INSERT INTO appliances
			(config_name, position, name, power_watts, usage_hours, start_hour)
			VALUES (?, ?, ?, ?, ?, ?)`,
			name, i, a.Name, a.PowerWatts, a.UsageHours, a.StartHour)
		if err != nil {
			return fmt.Errorf("saving appliance %q: %w", a.Name, err)
		}
	}

	return tx.Commit()
}

// LoadConfiguration rebuilds a registry from a saved configuration.
// A name that was never saved yields an empty registry so a fresh
// session starts clean.
func (s *Store) LoadConfiguration(name string) (*engine.Registry, error) {
	rows, err := s.db.Query(`SELECT name, power_watts, usage_hours, start_hour
		FROM appliances WHERE config_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("loading configuration %q: %w", name, err)
	}
	defer rows.Close()

	reg := engine.NewRegistry()
	for rows.Next() {
		var applianceName string
		var power int
		var hours float64
		var startHour int

		if err := rows.Scan(&applianceName, &power, &hours, &startHour); err != nil {
			return nil, err
		}
		if err := reg.Add(applianceName, power, hours, startHour); err != nil {
			return nil, fmt.Errorf("restoring appliance %q: %w", applianceName, err)
		}
	}

	return reg, rows.Err()
}

// ListConfigurations returns the saved configurations, most recent first
func (s *Store) ListConfigurations() ([]Configuration, error) {
	rows, err := s.db.Query(`SELECT c.name, c.updated_at, COUNT(a.name)
		FROM configurations c
		LEFT JOIN appliances a ON a.config_name = c.name
		GROUP BY c.name ORDER BY c.updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := []Configuration{}
	for rows.Next() {
		var c Configuration
		if err := rows.Scan(&c.Name, &c.UpdatedAt, &c.Count); err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}

	return configs, rows.Err()
}

// DeleteConfiguration removes a configuration and its appliances
func (s *Store) DeleteConfiguration(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM appliances WHERE config_name = ?`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM configurations WHERE name = ?`, name); err != nil {
		return err
	}

	return tx.Commit()
}
