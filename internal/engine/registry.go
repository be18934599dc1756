package engine

import "fmt"

// Registry holds an ordered collection of appliances keyed by name.
// Names are compared case-sensitively and are the only identity an
// appliance has; insertion order is preserved across edits. A registry
// belongs to a single session and is not safe for concurrent writers.
type Registry struct {
	appliances []Appliance
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

func validate(powerWatts int, usageHours float64, startHour int) error {
	if powerWatts <= 0 {
		return fmt.Errorf("power must be positive, got %d: %w", powerWatts, ErrInvalidParameter)
	}
	if usageHours <= 0 {
		return fmt.Errorf("usage hours must be positive, got %g: %w", usageHours, ErrInvalidParameter)
	}
	if startHour < 0 || startHour > 23 {
		return fmt.Errorf("start hour must be in [0,23], got %d: %w", startHour, ErrInvalidParameter)
	}
	return nil
}

func (r *Registry) indexOf(name string) int {
	for i, a := range r.appliances {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Add appends a new appliance. The registry is left untouched when the
// name already exists or the fields fail validation.
func (r *Registry) Add(name string, powerWatts int, usageHours float64, startHour int) error {
	if err := validate(powerWatts, usageHours, startHour); err != nil {
		return err
	}
	if r.indexOf(name) >= 0 {
		return fmt.Errorf("appliance %q: %w", name, ErrDuplicateName)
	}
	r.appliances = append(r.appliances, NewAppliance(name, powerWatts, usageHours, startHour))
	return nil
}

// Edit replaces the appliance named target in place, keeping its ordinal
// position. Renaming onto another existing appliance is rejected with
// ErrDuplicateName so two entries can never share a name.
func (r *Registry) Edit(target, newName string, newPower int, newHours float64, newStart int) error {
	if err := validate(newPower, newHours, newStart); err != nil {
		return err
	}
	i := r.indexOf(target)
	if i < 0 {
		return fmt.Errorf("appliance %q: %w", target, ErrNotFound)
	}
	if newName != target && r.indexOf(newName) >= 0 {
		return fmt.Errorf("appliance %q: %w", newName, ErrDuplicateName)
	}
	r.appliances[i] = NewAppliance(newName, newPower, newHours, newStart)
	return nil
}

// Remove deletes the appliance with the given name
func (r *Registry) Remove(name string) error {
	i := r.indexOf(name)
	if i < 0 {
		return fmt.Errorf("appliance %q: %w", name, ErrNotFound)
	}
	r.appliances = append(r.appliances[:i], r.appliances[i+1:]...)
	return nil
}

// Clear empties the registry
func (r *Registry) Clear() {
	r.appliances = nil
}

// IsEmpty reports whether the registry holds no appliances
func (r *Registry) IsEmpty() bool {
	return len(r.appliances) == 0
}

// Len returns the number of appliances
func (r *Registry) Len() int {
	return len(r.appliances)
}

// Find returns the appliance with the given name, if present
func (r *Registry) Find(name string) (Appliance, bool) {
	if i := r.indexOf(name); i >= 0 {
		return r.appliances[i], true
	}
	return Appliance{}, false
}

// List returns the appliances in insertion order. The returned slice is
// a copy and may be freely modified by the caller.
func (r *Registry) List() []Appliance {
	out := make([]Appliance, len(r.appliances))
	copy(out, r.appliances)
	return out
}

// TotalPower sums the rated power of all appliances in Watts
func (r *Registry) TotalPower() float64 {
	total := 0.0
	for _, a := range r.appliances {
		total += float64(a.PowerWatts)
	}
	return total
}

// TotalEnergy sums the daily consumption of all appliances in Watt-hours
func (r *Registry) TotalEnergy() float64 {
	total := 0.0
	for _, a := range r.appliances {
		total += a.DailyEnergy()
	}
	return total
}

// HourlyProfile returns the aggregate 24-hour demand profile, the
// element-wise sum of every appliance's hourly distribution
func (r *Registry) HourlyProfile() []float64 {
	profile := make([]float64, 24)
	for _, a := range r.appliances {
		for h, w := range a.HourlyConsumption() {
			profile[h] += w
		}
	}
	return profile
}
