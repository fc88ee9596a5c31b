package commands

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"foodfindr/config"
	"foodfindr/models"
	"foodfindr/storage"
	"foodfindr/utils"
)

var loadFlags struct {
	csvPath  string
	database string
	table    string
	createDB bool
}

var loadCmd = &cobra.Command{
	Use:   "load --csv <path/to/restaurant_ratings.csv>",
	Short: "Loads a rated restaurant CSV into a PostgreSQL table, replacing the table if it exists.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("database") {
			cfg.PostgresDB = loadFlags.database
		}
		return runLoad(cmd.Context(), cfg, logger)
	},
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&loadFlags.csvPath, "csv", "", "CSV file with columns name,address,latitude,longitude,link,price,health_color,special_diet")
	f.StringVar(&loadFlags.database, "database", "", "target database (overrides POSTGRES_DB)")
	f.StringVar(&loadFlags.table, "table", "food_tb", "table to replace")
	f.BoolVar(&loadFlags.createDB, "create-db", false, "create the database if it does not exist")
	_ = loadCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	rows, err := storage.ReadRatedFile(loadFlags.csvPath)
	if err != nil {
		return err
	}
	logger.Info("[load] Read %d rows from %s", len(rows), loadFlags.csvPath)

	if loadFlags.createDB {
		if err := ensureDatabase(ctx, cfg, logger); err != nil {
			return err
		}
	}

	pw, err := storage.NewPostgresWriter(ctx, cfg.DSN())
	if err != nil {
		logger.Error("[load] Failed to connect to PostgreSQL at %s:%s", cfg.PostgresHost, cfg.PostgresPort)
		return err
	}
	defer pw.Close()

	return loadRows(ctx, pw, loadFlags.table, rows, logger)
}

func loadRows(ctx context.Context, loader storage.RatedLoader, table string, rows []*models.RatedRestaurant, logger *utils.Logger) error {
	if err := loader.Replace(ctx, table, rows); err != nil {
		return err
	}

	n, err := loader.Count(ctx, table)
	if err != nil {
		return err
	}
	if n != len(rows) {
		return fmt.Errorf("load: table %s holds %d rows, expected %d", table, n, len(rows))
	}
	logger.Info("[load] Table %s now holds %d rows", table, n)
	return nil
}

func ensureDatabase(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	admin, err := sql.Open("postgres", cfg.AdminDSN())
	if err != nil {
		return fmt.Errorf("postgres: open maintenance db: %w", err)
	}
	defer admin.Close()

	created, err := storage.EnsureDatabase(ctx, admin, cfg.PostgresDB)
	if err != nil {
		return err
	}
	if created {
		logger.Info("[load] Created database %s", cfg.PostgresDB)
	}
	return nil
}
