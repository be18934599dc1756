// Package library loads the read-only equipment catalog offered as
// quick-add templates. The catalog is seed data; nothing in it bypasses
// the registry's add contract.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Item is one catalog entry, shaped like an appliance record plus
// display metadata
type Item struct {
	Name          string  `json:"name"`
	Power         int     `json:"power"`
	Time          float64 `json:"time"`
	StartHour     int     `json:"start_hour"`
	DescriptionEN string  `json:"description_en,omitempty"`
	DescriptionFR string  `json:"description_fr,omitempty"`
}

// Category groups related items
type Category struct {
	NameEN string `json:"name_en"`
	NameFR string `json:"name_fr"`
	Icon   string `json:"icon"`
	Items  []Item `json:"items"`
}

// Catalog is the full equipment library
type Catalog struct {
	Categories map[string]Category `json:"categories"`
}

// Load reads a catalog file. A missing file is not an error: the
// built-in defaults still apply and an empty catalog is returned.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Catalog{Categories: map[string]Category{}}, nil
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("reading equipment library: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing equipment library: %w", err)
	}
	if c.Categories == nil {
		c.Categories = map[string]Category{}
	}
	return c, nil
}

// CategoryIDs returns the category keys in stable sorted order
func (c Catalog) CategoryIDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for id := range c.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Find looks an item up by category id and item name
func (c Catalog) Find(categoryID, itemName string) (Item, bool) {
	cat, ok := c.Categories[categoryID]
	if !ok {
		return Item{}, false
	}
	for _, item := range cat.Items {
		if item.Name == itemName {
			return item, true
		}
	}
	return Item{}, false
}

// Default returns the built-in catalog used when no library file has
// been installed
func Default() Catalog {
	return Catalog{
		Categories: map[string]Category{
			"kitchen": {
				NameEN: "Kitchen",
				NameFR: "Cuisine",
				Icon:   "kitchen",
				Items: []Item{
					{Name: "Refrigerator", Power: 150, Time: 24, StartHour: 0, DescriptionEN: "Standard fridge-freezer", DescriptionFR: "Réfrigérateur-congélateur standard"},
					{Name: "Microwave", Power: 1000, Time: 0.5, StartHour: 12, DescriptionEN: "Microwave oven", DescriptionFR: "Four à micro-ondes"},
					{Name: "Electric kettle", Power: 2000, Time: 0.25, StartHour: 7, DescriptionEN: "Water kettle", DescriptionFR: "Bouilloire électrique"},
				},
			},
			"electronics": {
				NameEN: "Electronics",
				NameFR: "Électronique",
				Icon:   "tv",
				Items: []Item{
					{Name: "Television", Power: 100, Time: 4, StartHour: 18, DescriptionEN: "LED television", DescriptionFR: "Téléviseur LED"},
					{Name: "Laptop", Power: 65, Time: 6, StartHour: 9, DescriptionEN: "Laptop charger", DescriptionFR: "Chargeur d'ordinateur portable"},
					{Name: "Phone charger", Power: 10, Time: 2, StartHour: 22, DescriptionEN: "Smartphone charger", DescriptionFR: "Chargeur de téléphone"},
				},
			},
			"lighting": {
				NameEN: "Lighting",
				NameFR: "Éclairage",
				Icon:   "lamp",
				Items: []Item{
					{Name: "LED bulb", Power: 10, Time: 5, StartHour: 18, DescriptionEN: "Single LED bulb", DescriptionFR: "Ampoule LED"},
					{Name: "Outdoor lamp", Power: 30, Time: 10, StartHour: 19, DescriptionEN: "Outdoor security lamp", DescriptionFR: "Lampe extérieure"},
				},
			},
			"water": {
				NameEN: "Water",
				NameFR: "Eau",
				Icon:   "droplet",
				Items: []Item{
					{Name: "Water pump", Power: 750, Time: 2, StartHour: 8, DescriptionEN: "Borehole pump", DescriptionFR: "Pompe de forage"},
				},
			},
		},
	}
}
