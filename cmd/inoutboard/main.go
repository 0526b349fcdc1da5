package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OutOfFlux/newinoutboard/internal/config"
	"github.com/OutOfFlux/newinoutboard/internal/httpapi"
	"github.com/OutOfFlux/newinoutboard/internal/hub"
	"github.com/OutOfFlux/newinoutboard/internal/logger"
	"github.com/OutOfFlux/newinoutboard/internal/repository"
	"github.com/OutOfFlux/newinoutboard/internal/service"
	"github.com/OutOfFlux/newinoutboard/internal/store"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "inoutboard")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.Auth.DefaultPassword {
		log.Warn("ADMIN_PASSWORD env var not set, using default password \"admin\"")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store accessors: Postgres when available, in-memory fallback so the
	// board still runs for local dev without a database.
	var (
		db          *sql.DB
		employees   repository.EmployeesRepository
		vehicles    repository.VehiclesRepository
		departments repository.DepartmentsRepository
	)
	if cfg.DBEnabled {
		d, err := openDB(cfg)
		if err != nil {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		} else {
			db = d
		}
	}
	if db != nil {
		if err := repository.Bootstrap(ctx, db); err != nil {
			log.Fatal("schema bootstrap failed", zap.Error(err))
		}
		employees = repository.NewPostgresEmployeesRepository(db)
		vehicles = repository.NewPostgresVehiclesRepository(db)
		departments = repository.NewPostgresDepartmentsRepository(db)
		log.Info("DB enabled for inoutboard")
	} else {
		mem := repository.NewMemory()
		if err := repository.Seed(ctx, mem, mem); err != nil {
			log.Warn("failed to seed memory store", zap.Error(err))
		}
		employees = mem
		vehicles = mem
		departments = mem
		log.Info("running on in-memory store")
	}

	// Login throttle backing: Redis when configured, in-process otherwise.
	var kv store.KV
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
	} else {
		kv = store.NewMemoryKV()
	}

	// The hub needs the snapshot loader, which needs the services, which
	// need the hub for broadcasting. Build the hub against a late-bound
	// snapshot func to break the cycle.
	var broadcastHub *hub.Hub
	var snapshot hub.SnapshotFunc
	broadcastHub = hub.New(func(c context.Context) ([]byte, error) {
		return snapshot(c)
	}, hub.DefaultPingInterval, log)

	board := service.NewBoardService(employees, departments, broadcastHub, log)
	vehicleSvc := service.NewVehicleService(vehicles, employees, broadcastHub, log)
	snapshot = httpapi.Snapshot(board, vehicleSvc)

	go broadcastHub.Run(ctx)

	auth := httpapi.NewAuth(cfg.Auth.AdminPassword, cfg.Auth.CookieSecret, kv, log)
	router := httpapi.NewRouter(log)
	router.RegisterBoardRoutes(httpapi.NewEmployeeHandler(board, log), auth)
	router.RegisterVehicleRoutes(httpapi.NewVehicleHandler(vehicleSvc, log), auth)
	router.RegisterAdminRoutes(auth,
		httpapi.NewLogoHandler(cfg.PublicDir, log),
		httpapi.NewExportHandler(board, log))
	router.RegisterWSRoute(httpapi.NewWSHandler(broadcastHub, log))
	router.RegisterStatic(cfg.PublicDir, auth)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxConns)
	}
	if cfg.Database.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdle)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
