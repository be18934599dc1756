package engine

import "math"

const (
	// Average grid emission factor (kg CO₂ per kWh); varies by energy mix
	co2PerKWh = 0.5
	// Annual CO₂ absorption of one mature tree (kg)
	co2PerTree = 21
)

// SystemCost totals the installation bill from component counts and
// unit costs. Inputs are assumed validated upstream.
func SystemCost(batteries int, batteryUnitCost float64, panels int, panelUnitCost, converterCost, regulatorCost, installationCost float64) CostBreakdown {
	batteryTotal := float64(batteries) * batteryUnitCost
	panelTotal := float64(panels) * panelUnitCost
	return CostBreakdown{
		BatteryTotal: batteryTotal,
		PanelTotal:   panelTotal,
		Converter:    converterCost,
		Regulator:    regulatorCost,
		Installation: installationCost,
		Total:        batteryTotal + panelTotal + converterCost + regulatorCost + installationCost,
	}
}

// ROI converts daily self-produced energy into avoided grid spend and
// the break-even horizon. ROIYears is +Inf when nothing is saved.
func ROI(totalCost, dailyEnergyKWh, pricePerKWh float64) Savings {
	daily := dailyEnergyKWh * pricePerKWh
	annual := daily * 365
	roiYears := math.Inf(1)
	if annual > 0 {
		roiYears = totalCost / annual
	}
	return Savings{
		Daily:    daily,
		Monthly:  daily * 30,
		Annual:   annual,
		ROIYears: roiYears,
	}
}

// CO2Avoided estimates the emissions displaced by producing the given
// annual energy from solar instead of the grid
func CO2Avoided(annualEnergyKWh float64) CO2Impact {
	kg := annualEnergyKWh * co2PerKWh
	return CO2Impact{
		KG:    kg,
		Tons:  kg / 1000,
		Trees: kg / co2PerTree,
	}
}

// Evaluate chains cost, savings and CO₂ figures for a sizing result
func Evaluate(res SizingResult, c CostParams) EconomicResult {
	costs := SystemCost(res.Batteries, c.BatteryUnitCost, res.Panels, c.PanelUnitCost,
		c.ConverterCost, c.RegulatorCost, c.InstallationCost)
	dailyKWh := res.DailyEnergyWh / 1000
	return EconomicResult{
		Costs:   costs,
		Savings: ROI(costs.Total, dailyKWh, c.ElectricityPrice),
		CO2:     CO2Avoided(dailyKWh * 365),
	}
}
