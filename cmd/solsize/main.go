package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amadiallo/solsize/internal/engine"
	"github.com/amadiallo/solsize/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	dbPath     string
	configName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solsize",
		Short: "Solsize - Size an off-grid solar installation from your appliances",
		Long: `Solsize turns a list of electrical appliances into a complete
off-grid photovoltaic system design: battery bank, panel array,
charge controller, cabling, costs and CO2 savings.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file (default is $HOME/.solsize/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default is $HOME/.solsize/solsize.db)")
	rootCmd.PersistentFlags().StringVarP(&configName, "config", "c", "default", "appliance configuration to work on")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(equipmentCmd())
	rootCmd.AddCommand(libraryCmd())
	rootCmd.AddCommand(sizeCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".solsize")
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// System parameter defaults, overridable per installation
	viper.SetDefault("battery.voltage", 12)
	viper.SetDefault("battery.capacity_ah", 200)
	viper.SetDefault("battery.autonomy_days", 2)
	viper.SetDefault("battery.discharge_depth", 0.5)
	viper.SetDefault("panel.watts", 300)
	viper.SetDefault("panel.sun_hours", 5.0)
	viper.SetDefault("regulator.type", "MPPT")
	viper.SetDefault("cable.length_m", 10.0)
	viper.SetDefault("cable.max_drop_percent", 3.0)
	viper.SetDefault("costs.battery_unit", 200.0)
	viper.SetDefault("costs.panel_unit", 150.0)
	viper.SetDefault("costs.converter", 500.0)
	viper.SetDefault("costs.regulator", 300.0)
	viper.SetDefault("costs.installation", 400.0)
	viper.SetDefault("costs.electricity_price", 0.15)
	viper.SetDefault("library.path", "equipment_library.json")

	viper.SetEnvPrefix("SOLSIZE")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	if dbPath == "" {
		home, _ := os.UserHomeDir()
		dbPath = filepath.Join(home, ".solsize", "solsize.db")
	}
}

func openStore() (*store.Store, error) {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

func sizingParams() engine.SizingParams {
	return engine.SizingParams{
		BatteryVoltage:    viper.GetInt("battery.voltage"),
		BatteryCapacityAh: viper.GetInt("battery.capacity_ah"),
		AutonomyDays:      viper.GetInt("battery.autonomy_days"),
		DischargeDepth:    viper.GetFloat64("battery.discharge_depth"),
		PanelWatts:        viper.GetInt("panel.watts"),
		SunHours:          viper.GetFloat64("panel.sun_hours"),
		Regulator:         engine.RegulatorType(viper.GetString("regulator.type")),
		CableLengthM:      viper.GetFloat64("cable.length_m"),
		MaxDropPercent:    viper.GetFloat64("cable.max_drop_percent"),
	}
}

func costParams() engine.CostParams {
	return engine.CostParams{
		BatteryUnitCost:  viper.GetFloat64("costs.battery_unit"),
		PanelUnitCost:    viper.GetFloat64("costs.panel_unit"),
		ConverterCost:    viper.GetFloat64("costs.converter"),
		RegulatorCost:    viper.GetFloat64("costs.regulator"),
		InstallationCost: viper.GetFloat64("costs.installation"),
		ElectricityPrice: viper.GetFloat64("costs.electricity_price"),
	}
}
