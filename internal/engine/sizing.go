package engine

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDuplicateName    = errors.New("an appliance with this name already exists")
	ErrNotFound         = errors.New("appliance not found")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Resistivity of copper at 20°C (Ω·mm²/m)
const copperResistivity = 0.01724

// Standard conductor cross-sections (mm²) per IEC 60228
var standardSections = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240}

// BatteriesNeeded returns the number of batteries required to cover the
// daily demand for the requested days of autonomy, given the usable
// energy of one battery (V × C × DoD).
func BatteriesNeeded(dailyEnergyWh float64, voltage, capacityAh, autonomyDays int, dischargeDepth float64) (int, error) {
	perBattery := float64(voltage) * float64(capacityAh) * dischargeDepth
	if perBattery <= 0 {
		return 0, fmt.Errorf("battery stores no usable energy (V=%d Ah=%d DoD=%g): %w",
			voltage, capacityAh, dischargeDepth, ErrInvalidParameter)
	}
	required := dailyEnergyWh * float64(autonomyDays)
	return int(math.Ceil(required / perBattery)), nil
}

// PanelsNeeded returns the number of panels required to produce the
// daily demand, given one panel's daily yield (rated W × peak sun hours).
func PanelsNeeded(dailyEnergyWh float64, panelWatts int, sunHours float64) (int, error) {
	perPanel := float64(panelWatts) * sunHours
	if perPanel <= 0 {
		return 0, fmt.Errorf("panel produces no energy (W=%d sun=%g): %w",
			panelWatts, sunHours, ErrInvalidParameter)
	}
	return int(math.Ceil(dailyEnergyWh / perPanel)), nil
}

// SizeRegulator returns the charge controller spec for an array of the
// given power on the given battery bank. The recommended current carries
// a fixed 25% safety margin over the nominal array current.
func SizeRegulator(pvPowerW float64, batteryVoltage int, typ RegulatorType) (RegulatorSpec, error) {
	if batteryVoltage <= 0 {
		return RegulatorSpec{}, fmt.Errorf("battery voltage must be positive, got %d: %w",
			batteryVoltage, ErrInvalidParameter)
	}
	nominal := pvPowerW / float64(batteryVoltage)
	efficiency := 0.85
	if typ == RegulatorMPPT {
		efficiency = 0.98
	}
	return RegulatorSpec{
		NominalCurrent:     nominal,
		RecommendedCurrent: nominal * 1.25,
		NominalPower:       pvPowerW,
		Efficiency:         efficiency,
		Type:               typ,
	}, nil
}

// SizeCable selects a conductor cross-section from the standard ladder
// so that the round-trip voltage drop stays under maxDropPercent of the
// system voltage, using S = (2ρIL)/ΔV. When even 240 mm² cannot meet
// the drop target the largest section is returned with Capped set; that
// is a best-effort result for the caller to flag, not an error. The fuse
// rating is 1.25 × the operating current rounded half-up to a multiple
// of 5 A, never below 5 A.
func SizeCable(currentA, lengthM float64, voltage int, maxDropPercent float64) (CableSpec, error) {
	if voltage <= 0 {
		return CableSpec{}, fmt.Errorf("system voltage must be positive, got %d: %w", voltage, ErrInvalidParameter)
	}
	if lengthM <= 0 {
		return CableSpec{}, fmt.Errorf("cable length must be positive, got %g: %w", lengthM, ErrInvalidParameter)
	}
	if maxDropPercent <= 0 {
		return CableSpec{}, fmt.Errorf("max voltage drop must be positive, got %g: %w", maxDropPercent, ErrInvalidParameter)
	}

	maxDropVolts := float64(voltage) * (maxDropPercent / 100)
	minSection := (2 * copperResistivity * currentA * lengthM) / maxDropVolts

	section := standardSections[len(standardSections)-1]
	capped := true
	for _, s := range standardSections {
		if s >= minSection {
			section = s
			capped = false
			break
		}
	}

	actualDrop := (2 * copperResistivity * currentA * lengthM) / section
	fuse := int(math.Round(currentA*1.25/5)) * 5
	if fuse < 5 {
		fuse = 5
	}

	return CableSpec{
		SectionMM2:        section,
		ActualDropVolts:   actualDrop,
		ActualDropPercent: actualDrop / float64(voltage) * 100,
		FuseRatingA:       fuse,
		CurrentA:          currentA,
		Capped:            capped,
	}, nil
}

// SizeSystem runs the full sizing chain for the registry's demand:
// battery bank, panel array, charge controller, then the cable between
// controller and bank carrying the controller's recommended current.
func SizeSystem(reg *Registry, p SizingParams) (SizingResult, error) {
	daily := reg.TotalEnergy()

	batteries, err := BatteriesNeeded(daily, p.BatteryVoltage, p.BatteryCapacityAh, p.AutonomyDays, p.DischargeDepth)
	if err != nil {
		return SizingResult{}, err
	}
	panels, err := PanelsNeeded(daily, p.PanelWatts, p.SunHours)
	if err != nil {
		return SizingResult{}, err
	}

	pvPower := float64(panels * p.PanelWatts)
	regulator, err := SizeRegulator(pvPower, p.BatteryVoltage, p.Regulator)
	if err != nil {
		return SizingResult{}, err
	}
	cable, err := SizeCable(regulator.RecommendedCurrent, p.CableLengthM, p.BatteryVoltage, p.MaxDropPercent)
	if err != nil {
		return SizingResult{}, err
	}

	return SizingResult{
		DailyEnergyWh: daily,
		TotalPowerW:   reg.TotalPower(),
		Batteries:     batteries,
		Panels:        panels,
		PVPowerW:      pvPower,
		Regulator:     regulator,
		Cable:         cable,
	}, nil
}
