package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/amadiallo/solsize/internal/engine"
)

// configFile is the on-disk JSON shape shared with earlier releases:
// {"name": ..., "timestamp": ..., "equipments": [{name, power, time, start_hour}]}
type configFile struct {
	Name       string           `json:"name"`
	Timestamp  string           `json:"timestamp"`
	Equipments []applianceEntry `json:"equipments"`
}

type applianceEntry struct {
	Name      string  `json:"name"`
	Power     int     `json:"power"`
	Time      float64 `json:"time"`
	StartHour *int    `json:"start_hour,omitempty"`
}

// ExportJSON writes a registry as a portable configuration file
func ExportJSON(w io.Writer, name string, reg *engine.Registry) error {
	cfg := configFile{
		Name:      name,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, a := range reg.List() {
		start := a.StartHour
		cfg.Equipments = append(cfg.Equipments, applianceEntry{
			Name:      a.Name,
			Power:     a.PowerWatts,
			Time:      a.UsageHours,
			StartHour: &start,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// ImportJSON reads a configuration file into a fresh registry. Files
// written before start hours existed omit the field; those entries
// default to hour 0.
func ImportJSON(r io.Reader) (string, *engine.Registry, error) {
	var cfg configFile
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return "", nil, fmt.Errorf("parsing configuration: %w", err)
	}

	reg := engine.NewRegistry()
	for _, e := range cfg.Equipments {
		start := 0
		if e.StartHour != nil {
			start = *e.StartHour
		}
		if err := reg.Add(e.Name, e.Power, e.Time, start); err != nil {
			return "", nil, fmt.Errorf("importing appliance %q: %w", e.Name, err)
		}
	}

	return cfg.Name, reg, nil
}
