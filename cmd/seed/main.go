// Command seed wipes and reloads the demo roster and vehicle pool.
package main

import (
	"context"
	"database/sql"

	"github.com/OutOfFlux/newinoutboard/internal/config"
	"github.com/OutOfFlux/newinoutboard/internal/logger"
	"github.com/OutOfFlux/newinoutboard/internal/repository"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, "console", "inoutboard-seed")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := repository.Bootstrap(ctx, db); err != nil {
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}

	// Clear existing data; employees first because of the vehicle FK.
	if _, err := db.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		log.Fatal("failed to clear employees", zap.Error(err))
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM vehicles`); err != nil {
		log.Fatal("failed to clear vehicles", zap.Error(err))
	}

	employees := repository.NewPostgresEmployeesRepository(db)
	vehicles := repository.NewPostgresVehiclesRepository(db)
	if err := repository.Seed(ctx, employees, vehicles); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	// Re-run so the department set picks up the fresh roster labels.
	if err := repository.Bootstrap(ctx, db); err != nil {
		log.Fatal("department seed failed", zap.Error(err))
	}

	log.Info("seeded roster",
		zap.Int("employees", len(repository.SeedRoster)),
		zap.Int("vehicles", len(repository.SeedVehicles)))
}
