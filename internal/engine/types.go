package engine

// Appliance represents one electrical load and its daily usage window
type Appliance struct {
	Name       string  `json:"name"`
	PowerWatts int     `json:"power"`      // rated power in Watts
	UsageHours float64 `json:"time"`       // daily usage in hours
	StartHour  int     `json:"start_hour"` // hour of day the load switches on (0-23)
	EndHour    int     `json:"end_hour"`   // derived, display only
}

// RegulatorType defines the charge controller technology
type RegulatorType string

const (
	RegulatorMPPT RegulatorType = "MPPT" // maximum power point tracking, ~98% efficient
	RegulatorPWM  RegulatorType = "PWM"  // pulse width modulation, ~85% efficient
)

// SizingParams contains the user-chosen system parameters for sizing
type SizingParams struct {
	BatteryVoltage    int           `json:"battery_voltage"`     // 12, 24 or 48 V
	BatteryCapacityAh int           `json:"battery_capacity_ah"` // capacity of one battery
	AutonomyDays      int           `json:"autonomy_days"`       // days without solar recharge
	DischargeDepth    float64       `json:"discharge_depth"`     // usable fraction of capacity (0-1]
	PanelWatts        int           `json:"panel_watts"`         // rated power of one panel
	SunHours          float64       `json:"sun_hours"`           // equivalent peak sun hours per day
	Regulator         RegulatorType `json:"regulator_type"`
	CableLengthM      float64       `json:"cable_length_m"`   // one-way cable run
	MaxDropPercent    float64       `json:"max_drop_percent"` // allowed voltage drop
}

// CostParams contains unit costs and the grid electricity price
type CostParams struct {
	BatteryUnitCost  float64 `json:"battery_unit_cost"`
	PanelUnitCost    float64 `json:"panel_unit_cost"`
	ConverterCost    float64 `json:"converter_cost"`
	RegulatorCost    float64 `json:"regulator_cost"`
	InstallationCost float64 `json:"installation_cost"`
	ElectricityPrice float64 `json:"electricity_price_per_kwh"`
}

// RegulatorSpec describes the charge controller required by the array
type RegulatorSpec struct {
	NominalCurrent     float64       `json:"nominal_current"`     // A
	RecommendedCurrent float64       `json:"recommended_current"` // A, with 25% safety margin
	NominalPower       float64       `json:"nominal_power"`       // W
	Efficiency         float64       `json:"efficiency"`          // 0-1
	Type               RegulatorType `json:"type"`
}

// CableSpec describes the selected conductor and its protection
type CableSpec struct {
	SectionMM2        float64 `json:"cable_section_mm2"`
	ActualDropVolts   float64 `json:"actual_drop_v"`
	ActualDropPercent float64 `json:"actual_drop_percent"`
	FuseRatingA       int     `json:"fuse_rating_a"`
	CurrentA          float64 `json:"current_a"`
	Capped            bool    `json:"capped"` // no standard section was large enough
}

// CostBreakdown is the bill of the installation
type CostBreakdown struct {
	BatteryTotal float64 `json:"battery_total"`
	PanelTotal   float64 `json:"pv_total"`
	Converter    float64 `json:"converter"`
	Regulator    float64 `json:"regulator"`
	Installation float64 `json:"installation"`
	Total        float64 `json:"total"`
}

// Savings holds avoided grid spend and the break-even horizon.
// ROIYears is +Inf when annual savings are zero.
type Savings struct {
	Daily    float64 `json:"daily"`
	Monthly  float64 `json:"monthly"`
	Annual   float64 `json:"annual"`
	ROIYears float64 `json:"roi_years"`
}

// CO2Impact holds avoided emissions and the tree-planting equivalent
type CO2Impact struct {
	KG    float64 `json:"co2_kg"`
	Tons  float64 `json:"co2_tons"`
	Trees float64 `json:"trees"`
}

// SizingResult aggregates the component counts and electrical specs
// computed from the demand profile and the sizing parameters
type SizingResult struct {
	DailyEnergyWh float64       `json:"daily_energy_wh"`
	TotalPowerW   float64       `json:"total_power_w"`
	Batteries     int           `json:"batteries"`
	Panels        int           `json:"panels"`
	PVPowerW      float64       `json:"pv_power_w"` // installed array power
	Regulator     RegulatorSpec `json:"regulator"`
	Cable         CableSpec     `json:"cable"`
}

// EconomicResult aggregates cost, savings and environmental figures
type EconomicResult struct {
	Costs   CostBreakdown `json:"costs"`
	Savings Savings       `json:"savings"`
	CO2     CO2Impact     `json:"co2"`
}

// Report is the full output of a sizing run
type Report struct {
	Appliances    []Appliance    `json:"appliances"`
	HourlyProfile []float64      `json:"hourly_profile"`
	Sizing        SizingResult   `json:"sizing"`
	Economics     EconomicResult `json:"economics"`
}
