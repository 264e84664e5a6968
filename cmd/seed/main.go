// Command seed brings a local development database up to the latest schema
// and loads the sample rows. Never run it against production.
package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"obsidian-club/internal/config"
	"obsidian-club/internal/database/migrations"
	"obsidian-club/internal/logger"
)

func main() {
	migrationsDir := flag.String("dir", "./migrations", "directory containing migration files")
	down := flag.Bool("down", false, "roll back all migrations instead of seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	appLogger := logger.NewLogger()
	defer appLogger.Close()

	cfg := config.Load()
	if cfg.Database.DSN == "" {
		appLogger.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("DATABASE", "Failed to open PostgreSQL: "+err.Error())
	}
	if err := sqldb.Ping(); err != nil {
		appLogger.Fatal("DATABASE", "Failed to connect to PostgreSQL: "+err.Error())
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
		MigrationsDir: *migrationsDir,
		SeedData:      true,
	}, appLogger)
	defer runner.Close()

	if *down {
		if err := runner.MigrateDown(); err != nil {
			appLogger.Fatal("DATABASE", "Rollback failed: "+err.Error())
		}
		appLogger.Info("DATABASE", "All migrations rolled back")
		return
	}

	if err := runner.RunMigrations(); err != nil {
		appLogger.Fatal("DATABASE", "Seeding failed: "+err.Error())
	}
	appLogger.Info("DATABASE", "Schema migrated and sample data loaded")
}
