package engine

// NewAppliance builds an appliance and derives its end hour from the
// start hour and usage time. EndHour is descriptive only; the hourly
// distribution never reads it.
func NewAppliance(name string, powerWatts int, usageHours float64, startHour int) Appliance {
	return Appliance{
		Name:       name,
		PowerWatts: powerWatts,
		UsageHours: usageHours,
		StartHour:  startHour,
		EndHour:    (startHour + int(usageHours)) % 24,
	}
}

// DailyEnergy returns the appliance's daily consumption in Watt-hours
func (a Appliance) DailyEnergy() float64 {
	return float64(a.PowerWatts) * a.UsageHours
}

// HourlyConsumption distributes the appliance's load over a 24-hour day.
// Starting at StartHour, each full hour of usage draws the rated power
// and a trailing fractional hour draws the proportional share, wrapping
// past hour 23 back to hour 0. Usage beyond 24 hours keeps wrapping and
// accumulates onto hours already filled; usage of zero or less yields an
// all-zero profile. The sum of the returned slice equals DailyEnergy.
func (a Appliance) HourlyConsumption() []float64 {
	hourly := make([]float64, 24)
	if a.UsageHours <= 0 {
		return hourly
	}

	remaining := a.UsageHours
	hour := a.StartHour
	for remaining > 0 {
		if remaining >= 1 {
			hourly[((hour%24)+24)%24] += float64(a.PowerWatts)
			remaining--
		} else {
			hourly[((hour%24)+24)%24] += float64(a.PowerWatts) * remaining
			remaining = 0
		}
		hour++
	}
	return hourly
}
