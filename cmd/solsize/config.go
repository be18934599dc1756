package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/amadiallo/solsize/internal/store"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configs",
		Short: "Manage saved appliance configurations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			configs, err := st.ListConfigurations()
			if err != nil {
				return err
			}
			if len(configs) == 0 {
				fmt.Println("No saved configurations")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tAPPLIANCES\tUPDATED")
			for _, c := range configs {
				fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, c.Count, c.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <name>",
		Short: "Snapshot the working configuration under a new name",
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
			if err := st.SaveConfiguration(args[0], reg); err != nil {
				return err
			}

			fmt.Printf("Saved %d appliances as %q\n", reg.Len(), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load <name>",
		Short: "Copy a saved configuration over the working one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			reg, err := st.LoadConfiguration(args[0])
			if err != nil {
				return err
			}
			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}

			fmt.Printf("Loaded %q into %q (%d appliances)\n", args[0], configName, reg.Len())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteConfiguration(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Export the working configuration as a portable JSON file",
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

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := store.ExportJSON(f, configName, reg); err != nil {
				return err
			}
			fmt.Printf("Exported %d appliances to %s\n", reg.Len(), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON configuration file into the working configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			name, reg, err := store.ImportJSON(f)
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SaveConfiguration(configName, reg); err != nil {
				return err
			}
			fmt.Printf("Imported %q (%d appliances) into %q\n", name, reg.Len(), configName)
			return nil
		},
	})

	return cmd
}
