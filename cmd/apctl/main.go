// Command apctl runs database migrations and external imports without the
// HTTP server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/dangerclosesec/apmap"
	"github.com/dangerclosesec/apmap/internal/cache"
	"github.com/dangerclosesec/apmap/internal/config"
	"github.com/dangerclosesec/apmap/internal/migrate"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/dangerclosesec/apmap/internal/wigle"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbConnString string
	verbose      bool

	importLat    float64
	importLon    float64
	importRadius float64
	importSSID   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string (defaults to the DB_* environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	importCmd.Flags().Float64Var(&importLat, "lat", 0, "Latitude of the search center")
	importCmd.Flags().Float64Var(&importLon, "lon", 0, "Longitude of the search center")
	importCmd.Flags().Float64Var(&importRadius, "radius", service.DefaultImportRadiusKm, "Search radius in kilometers")
	importCmd.Flags().StringVar(&importSSID, "ssid", "", "SSID filter, * matches anything")
	_ = importCmd.MarkFlagRequired("lat")
	_ = importCmd.MarkFlagRequired("lon")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(importCmd)
}

var rootCmd = &cobra.Command{
	Use:   "apctl",
	Short: "apctl manages an apmap deployment",
	Long:  `apctl applies database migrations and imports access points from WiGLE.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db := openSQL()
		defer db.Close()

		applied, err := migrate.NewMigrator(db, apmap.MigrationsFS, "migrations").Apply(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}

		if len(applied) == 0 {
			fmt.Println("No pending migrations.")
			return
		}
		for _, m := range applied {
			fmt.Printf("Applied %04d %s\n", m.Version, m.Name)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db := openSQL()
		defer db.Close()

		migrator := migrate.NewMigrator(db, apmap.MigrationsFS, "migrations")
		applied, err := migrator.Status(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}

		current := 0
		for _, a := range applied {
			fmt.Printf("applied  %04d %-40s %s\n", a.Version, a.Name, a.AppliedAt.Format(time.RFC3339))
			current = a.Version
		}

		migrations, err := migrator.Load()
		if err != nil {
			log.Fatalf("Failed to load migrations: %v", err)
		}
		for _, m := range migrate.Pending(migrations, current) {
			fmt.Printf("pending  %04d %s\n", m.Version, m.Name)
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import WiGLE networks around a point",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		gdb, err := gorm.Open(postgres.Open(connString(cfg)), &gorm.Config{
			Logger: logger.Default.LogMode(logLevel()),
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		source := wigle.NewClient(&wigle.Config{
			BaseURL:  cfg.Wigle.BaseURL,
			APIName:  cfg.Wigle.APIName,
			APIToken: cfg.Wigle.APIToken,
			Timeout:  cfg.Wigle.Timeout,
		})
		svc := service.NewWigleService(
			repository.NewUserRepository(gdb),
			repository.NewAccessPointRepository(gdb),
			source,
			cache.New(nil, ""),
		)

		out, err := svc.Search(cmd.Context(), service.WigleSearchInput{
			Latitude:  &importLat,
			Longitude: &importLon,
			Radius:    &importRadius,
			SSID:      importSSID,
		}, nil)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}

		fmt.Printf("Imported %d of %d networks (%d total results)\n", out.Count, len(out.Networks), out.TotalResults)
		if verbose {
			for _, n := range out.Networks {
				fmt.Printf("  %-32s %-17s %-10s %.6f,%.6f\n", n.SSID, n.BSSID, n.SecurityType, n.Latitude, n.Longitude)
			}
		}
	},
}

func connString(cfg *config.Config) string {
	if dbConnString != "" {
		return dbConnString
	}
	return cfg.DSN()
}

func logLevel() logger.LogLevel {
	if verbose {
		return logger.Info
	}
	return logger.Warn
}

func openSQL() *sql.DB {
	db, err := sql.Open("postgres", connString(config.Load()))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
