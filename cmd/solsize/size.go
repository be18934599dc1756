package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/amadiallo/solsize/internal/engine"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func bindSizingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("voltage", 12, "battery bank voltage (12, 24 or 48)")
	cmd.Flags().Int("capacity", 200, "battery capacity in Ah")
	cmd.Flags().Int("autonomy", 2, "days of autonomy")
	cmd.Flags().Float64("dod", 0.5, "depth of discharge (0-1)")
	cmd.Flags().Int("panel", 300, "panel rated power in Watts")
	cmd.Flags().Float64("sun", 5.0, "peak sun hours per day")
	cmd.Flags().String("regulator", "MPPT", "regulator type (MPPT or PWM)")
	cmd.Flags().Float64("cable-length", 10, "one-way cable run in meters")
	cmd.Flags().Float64("max-drop", 3.0, "max voltage drop percent")

	// Several commands carry these flags; bind only the one that runs
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("battery.voltage", cmd.Flags().Lookup("voltage"))
		viper.BindPFlag("battery.capacity_ah", cmd.Flags().Lookup("capacity"))
		viper.BindPFlag("battery.autonomy_days", cmd.Flags().Lookup("autonomy"))
		viper.BindPFlag("battery.discharge_depth", cmd.Flags().Lookup("dod"))
		viper.BindPFlag("panel.watts", cmd.Flags().Lookup("panel"))
		viper.BindPFlag("panel.sun_hours", cmd.Flags().Lookup("sun"))
		viper.BindPFlag("regulator.type", cmd.Flags().Lookup("regulator"))
		viper.BindPFlag("cable.length_m", cmd.Flags().Lookup("cable-length"))
		viper.BindPFlag("cable.max_drop_percent", cmd.Flags().Lookup("max-drop"))
	}
}

func loadRegistry() (*engine.Registry, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.LoadConfiguration(configName)
}

func sizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size the battery bank, panel array, regulator and cabling",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			if reg.IsEmpty() {
				return fmt.Errorf("configuration %q has no appliances; add some first", configName)
			}

			res, err := engine.SizeSystem(reg, sizingParams())
			if err != nil {
				return err
			}

			fmt.Printf("Daily demand:       %.0f Wh (%d appliances, %.0f W installed)\n",
				res.DailyEnergyWh, reg.Len(), res.TotalPowerW)
			fmt.Printf("Battery bank:       %d × %d Ah @ %d V (%d days autonomy, DoD %.0f%%)\n",
				res.Batteries, viper.GetInt("battery.capacity_ah"), viper.GetInt("battery.voltage"),
				viper.GetInt("battery.autonomy_days"), viper.GetFloat64("battery.discharge_depth")*100)
			fmt.Printf("Panel array:        %d × %d W = %.0f W\n",
				res.Panels, viper.GetInt("panel.watts"), res.PVPowerW)
			fmt.Printf("Charge controller:  %s, %.1f A nominal, %.1f A recommended (eff. %.0f%%)\n",
				res.Regulator.Type, res.Regulator.NominalCurrent, res.Regulator.RecommendedCurrent,
				res.Regulator.Efficiency*100)
			fmt.Printf("Cable:              %.1f mm², drop %.2f V (%.2f%%), fuse %d A\n",
				res.Cable.SectionMM2, res.Cable.ActualDropVolts, res.Cable.ActualDropPercent,
				res.Cable.FuseRatingA)
			if res.Cable.Capped {
				fmt.Println("WARNING: no standard cable section meets the voltage-drop target; 240 mm² selected as best effort")
			}
			return nil
		},
	}

	bindSizingFlags(cmd)
	return cmd
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Draw the 24-hour aggregate demand profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			if reg.IsEmpty() {
				return fmt.Errorf("configuration %q has no appliances; add some first", configName)
			}

			profile := reg.HourlyProfile()
			peak := 0.0
			peakHour := 0
			for h, w := range profile {
				if w > peak {
					peak = w
					peakHour = h
				}
			}

			fmt.Println(asciigraph.Plot(profile,
				asciigraph.Height(12),
				asciigraph.Caption("Hourly demand (W), hours 0-23")))
			fmt.Printf("\nPeak: %.0f W at %dh   Average: %.0f W   Daily energy: %.0f Wh\n",
				peak, peakHour, reg.TotalEnergy()/24, reg.TotalEnergy())
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Full sizing and economic report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			if reg.IsEmpty() {
				return fmt.Errorf("configuration %q has no appliances; add some first", configName)
			}

			sizing, err := engine.SizeSystem(reg, sizingParams())
			if err != nil {
				return err
			}
			economics := engine.Evaluate(sizing, costParams())

			report := engine.Report{
				Appliances:    reg.List(),
				HourlyProfile: reg.HourlyProfile(),
				Sizing:        sizing,
				Economics:     economics,
			}

			if viper.GetBool("report.summary") {
				printSummary(report)
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	bindSizingFlags(cmd)
	cmd.Flags().Bool("summary", false, "print a human-readable summary instead of JSON")
	viper.BindPFlag("report.summary", cmd.Flags().Lookup("summary"))

	return cmd
}

func printSummary(r engine.Report) {
	fmt.Printf("System: %d batteries, %d panels (%.0f W array)\n",
		r.Sizing.Batteries, r.Sizing.Panels, r.Sizing.PVPowerW)
	fmt.Printf("Total cost: %.2f (batteries %.2f, panels %.2f, converter %.2f, regulator %.2f, installation %.2f)\n",
		r.Economics.Costs.Total, r.Economics.Costs.BatteryTotal, r.Economics.Costs.PanelTotal,
		r.Economics.Costs.Converter, r.Economics.Costs.Regulator, r.Economics.Costs.Installation)
	if math.IsInf(r.Economics.Savings.ROIYears, 1) {
		fmt.Println("Savings: none at the configured electricity price")
	} else {
		fmt.Printf("Savings: %.2f/year, break-even in %.1f years\n",
			r.Economics.Savings.Annual, r.Economics.Savings.ROIYears)
	}
	fmt.Printf("CO2 avoided: %.0f kg/year (≈ %.0f trees)\n",
		r.Economics.CO2.KG, r.Economics.CO2.Trees)
}
