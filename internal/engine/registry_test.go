package engine

import (
	"errors"
	"testing"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	if !r.IsEmpty() {
		t.Fatal("new registry should be empty")
	}

	if err := r.Add("fridge", 150, 24, 0); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add("tv", 100, 4, 18); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	if _, ok := r.Find("fridge"); !ok {
		t.Error("Find(fridge) should succeed")
	}
	if _, ok := r.Find("Fridge"); ok {
		t.Error("names are case-sensitive, Find(Fridge) should fail")
	}
}

func TestRegistryAddValidation(t *testing.T) {
	tests := []struct {
		name  string
		power int
		hours float64
		start int
	}{
		{"zero power", 0, 4, 0},
		{"negative power", -50, 4, 0},
		{"zero hours", 100, 0, 0},
		{"start hour too large", 100, 4, 24},
		{"negative start hour", 100, 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Add("x", tt.power, tt.hours, tt.start)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Add = %v, want ErrInvalidParameter", err)
			}
			if !r.IsEmpty() {
				t.Error("failed Add must leave registry unchanged")
			}
		})
	}
}

func TestRegistryAddDuplicateLeavesStateUntouched(t *testing.T) {
	r := NewRegistry()
	r.Add("fridge", 150, 24, 0)
	r.Add("tv", 100, 4, 18)
	before := r.List()

	err := r.Add("fridge", 999, 1, 5)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("Add duplicate = %v, want ErrDuplicateName", err)
	}

	after := r.List()
	if len(after) != len(before) {
		t.Fatalf("Len changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("entry %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestRegistryEdit(t *testing.T) {
	r := NewRegistry()
	r.Add("fridge", 150, 24, 0)
	r.Add("tv", 100, 4, 18)
	r.Add("pump", 750, 2, 8)

	if err := r.Edit("tv", "led tv", 80, 5, 19); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	// Replacement keeps the ordinal position
	list := r.List()
	if list[1].Name != "led tv" || list[1].PowerWatts != 80 {
		t.Errorf("entry 1 = %+v, want edited tv", list[1])
	}
	if _, ok := r.Find("tv"); ok {
		t.Error("old name should be gone after rename")
	}

	if err := r.Edit("toaster", "x", 800, 0.25, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit missing = %v, want ErrNotFound", err)
	}

	// Renaming onto another existing appliance must be rejected
	if err := r.Edit("pump", "fridge", 750, 2, 8); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Edit colliding rename = %v, want ErrDuplicateName", err)
	}

	// Editing in place under the same name stays legal
	if err := r.Edit("fridge", "fridge", 120, 24, 0); err != nil {
		t.Errorf("Edit same name: %v", err)
	}
}

func TestRegistryRemoveAndClear(t *testing.T) {
	r := NewRegistry()
	r.Add("fridge", 150, 24, 0)
	r.Add("tv", 100, 4, 18)

	if err := r.Remove("fridge"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if err := r.Remove("fridge"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove missing = %v, want ErrNotFound", err)
	}

	r.Clear()
	if !r.IsEmpty() {
		t.Error("Clear should empty the registry")
	}
	r.Clear() // clearing an empty registry is fine
}

func TestRegistryAggregates(t *testing.T) {
	r := NewRegistry()
	r.Add("fridge", 150, 24, 0)
	r.Add("tv", 100, 4, 18)
	r.Add("lamp", 20, 6, 17)

	if got := r.TotalPower(); !almostEqual(got, 270) {
		t.Errorf("TotalPower = %v, want 270", got)
	}

	wantEnergy := 0.0
	for _, a := range r.List() {
		wantEnergy += a.DailyEnergy()
	}
	if got := r.TotalEnergy(); !almostEqual(got, wantEnergy) {
		t.Errorf("TotalEnergy = %v, want %v", got, wantEnergy)
	}

	profile := r.HourlyProfile()
	for h := 0; h < 24; h++ {
		want := 0.0
		for _, a := range r.List() {
			want += a.HourlyConsumption()[h]
		}
		if !almostEqual(profile[h], want) {
			t.Errorf("profile[%d] = %v, want %v", h, profile[h], want)
		}
	}

	sum := 0.0
	for _, w := range profile {
		sum += w
	}
	if !almostEqual(sum, r.TotalEnergy()) {
		t.Errorf("sum(profile) = %v, want TotalEnergy %v", sum, r.TotalEnergy())
	}
}

func TestRegistryListIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Add("fridge", 150, 24, 0)

	list := r.List()
	list[0].Name = "mutated"

	if got, _ := r.Find("fridge"); got.Name != "fridge" {
		t.Error("mutating List() result must not affect the registry")
	}
}
