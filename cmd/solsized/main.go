package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/amadiallo/solsize/internal/library"
	"github.com/amadiallo/solsize/internal/store"
	"github.com/amadiallo/solsize/internal/uiapi"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var port int
	var dbPath string
	var libraryPath string

	// Optional .env for local overrides; absence is fine
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "solsized",
		Short: "Solsize HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				if env := os.Getenv("SOLSIZE_DB"); env != "" {
					dbPath = env
				} else {
					home, _ := os.UserHomeDir()
					dbPath = filepath.Join(home, ".solsize", "solsize.db")
				}
			}
			os.MkdirAll(filepath.Dir(dbPath), 0755)

			st, err := store.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			catalog, err := library.Load(libraryPath)
			if err != nil {
				return fmt.Errorf("loading equipment library: %w", err)
			}
			if len(catalog.Categories) == 0 {
				catalog = library.Default()
			}

			srv := uiapi.NewServer(st, catalog)

			addr := fmt.Sprintf(":%d", port)
			log.Printf("Solsize server starting on port %d", port)
			log.Printf("Database: %s", dbPath)

			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "database path")
	rootCmd.Flags().StringVar(&libraryPath, "library", "equipment_library.json", "equipment library file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
