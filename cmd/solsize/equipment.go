package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/amadiallo/solsize/internal/library"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func equipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"eq"},
		Short:   "Manage the appliances of a configuration",
	}

	cmd.AddCommand(equipmentAddCmd())
	cmd.AddCommand(equipmentListCmd())
	cmd.AddCommand(equipmentEditCmd())
	cmd.AddCommand(equipmentRemoveCmd())
	cmd.AddCommand(equipmentClearCmd())

	return cmd
}

func equipmentAddCmd() *cobra.Command {
	var power int
	var hours float64
	var startHour int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an appliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}
			if err := reg.Add(args[0], power, hours, startHour); err != nil {
				return err
			}
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			a, _ := reg.Find(args[0])
			fmt.Printf("Added %s (%d W, %g h/day, %dh-%dh)\n", a.Name, a.PowerWatts, a.UsageHours, a.StartHour, a.EndHour)
			return nil
		},
	}

	cmd.Flags().IntVarP(&power, "power", "p", 0, "rated power in Watts")
	cmd.Flags().Float64VarP(&hours, "hours", "t", 0, "daily usage in hours")
	cmd.Flags().IntVarP(&startHour, "start", "s", 0, "start hour (0-23)")
	cmd.MarkFlagRequired("power")
	cmd.MarkFlagRequired("hours")

	return cmd
}

func equipmentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List appliances with totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}
			if reg.IsEmpty() {
				fmt.Printf("Configuration %q has no appliances yet. Add one with 'solsize equipment add'.\n", configName)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOWER (W)\tUSAGE (h)\tSCHEDULE\tENERGY (Wh)")
			for _, a := range reg.List() {
				fmt.Fprintf(w, "%s\t%d\t%g\t%dh-%dh\t%.0f\n",
					a.Name, a.PowerWatts, a.UsageHours, a.StartHour, a.EndHour, a.DailyEnergy())
			}
			w.Flush()

			fmt.Printf("\nTotal power: %.0f W\nDaily energy: %.0f Wh\n", reg.TotalPower(), reg.TotalEnergy())
			return nil
		},
	}
}

func equipmentEditCmd() *cobra.Command {
	var newName string
	var power int
	var hours float64
	var startHour int

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Replace an appliance's fields, keeping its position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}

			target := args[0]
			current, ok := reg.Find(target)
			if !ok {
				return fmt.Errorf("appliance %q not found in configuration %q", target, configName)
			}

			// Unset flags keep the current value
			if newName == "" {
				newName = current.Name
			}
			if !cmd.Flags().Changed("power") {
				power = current.PowerWatts
			}
			if !cmd.Flags().Changed("hours") {
				hours = current.UsageHours
			}
			if !cmd.Flags().Changed("start") {
				startHour = current.StartHour
			}

			if err := reg.Edit(target, newName, power, hours, startHour); err != nil {
				return err
			}
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			fmt.Printf("Updated %s\n", newName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&newName, "name", "n", "", "new name")
	cmd.Flags().IntVarP(&power, "power", "p", 0, "rated power in Watts")
	cmd.Flags().Float64VarP(&hours, "hours", "t", 0, "daily usage in hours")
	cmd.Flags().IntVarP(&startHour, "start", "s", 0, "start hour (0-23)")

	return cmd
}

func equipmentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an appliance",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}
			if err := reg.Remove(args[0]); err != nil {
				return err
			}
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}

func equipmentClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every appliance from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}
			reg.Clear()
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			fmt.Println("Configuration cleared")
			return nil
		},
	}
}

func loadCatalog() library.Catalog {
	catalog, err := library.Load(viper.GetString("library.path"))
	if err != nil || len(catalog.Categories) == 0 {
		return library.Default()
	}
	return catalog
}

func libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Browse the equipment catalog and quick-add items",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := loadCatalog()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, id := range catalog.CategoryIDs() {
				cat := catalog.Categories[id]
				fmt.Fprintf(w, "%s (%s)\t\t\t\n", cat.NameEN, id)
				for _, item := range cat.Items {
					fmt.Fprintf(w, "  %s\t%d W\t%g h\tfrom %dh\n", item.Name, item.Power, item.Time, item.StartHour)
				}
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <category> <item>",
		Short: "Add a catalog item to the configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := loadCatalog()
			item, ok := catalog.Find(args[0], args[1])
			if !ok {
				return fmt.Errorf("no item %q in category %q", args[1], args[0])
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}
			if err := reg.Add(item.Name, item.Power, item.Time, item.StartHour); err != nil {
				return err
			}
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			fmt.Printf("Added %s (%d W, %g h/day)\n", item.Name, item.Power, item.Time)
			return nil
		},
	})

	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the default configuration with typical appliances",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(configName)
			if err != nil {
				return err
			}
			if !reg.IsEmpty() {
				return fmt.Errorf("configuration %q already has %d appliances, refusing to overwrite",
					configName, reg.Len())
			}

			catalog := library.Default()
			for _, id := range catalog.CategoryIDs() {
				for _, item := range catalog.Categories[id].Items {
					if err := reg.Add(item.Name, item.Power, item.Time, item.StartHour); err != nil {
						return err
					}
				}
			}
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			fmt.Printf("Seeded %q with %d appliances (%.0f Wh/day). Run 'solsize size' to size the system.\n",
				configName, reg.Len(), reg.TotalEnergy())
			return nil
		},
	}
}
