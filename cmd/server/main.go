package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/oklog/run"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/obs"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/repository/memory"
	"github.com/iliyamo/hotel-reservation/internal/router"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	if err := runServer(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type stores struct {
	rooms        booking.Ledger
	reservations booking.RecordStore
	customers    booking.Customers
	close        func()
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on exit")
		m := memory.NewStore()
		return stores{rooms: m.Rooms(), reservations: m.Reservations(), customers: m.Customers(), close: func() {}}, nil
	}
	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return stores{}, fmt.Errorf("open database: %w", err)
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return stores{}, err
		}
		logger.Info("schema migrated")
	}
	return stores{
		rooms:        repository.NewRoomRepo(db),
		reservations: repository.NewReservationRepo(db),
		customers:    repository.NewCustomerRepo(db),
		close:        func() { closeDB(db, logger) },
	}, nil
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("close database", "err", err)
	}
}

func runServer(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	var rdb *redis.Client
	if cfg.RateLimit.Enabled || cfg.Cache.Enabled {
		rdb, err = config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable; rate limiting and caching disabled", "err", err)
		} else {
			defer rdb.Close()
		}
	}

	metrics := obs.NewMetrics()
	deps := booking.Deps{
		Rooms:        st.rooms,
		Reservations: st.reservations,
		Customers:    st.customers,
		Clock:        booking.SystemClock{Loc: cfg.Location},
		Metrics:      metrics,
		Logger:       logger.With("component", "booking"),
	}
	if cfg.Events.Enabled {
		deps.Publisher = service.NewPublisher(cfg.Events.URL, cfg.Events.Queue, logger.With("component", "publisher"))
	}
	svc := booking.NewService(deps)

	auth, err := handler.NewAuthHandler(cfg.StaffUser, cfg.StaffPassword, cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash staff password: %w", err)
	}

	e := router.New(router.Deps{
		Auth:         auth,
		Rooms:        handler.NewRoomHandler(svc, logger.With("component", "http")),
		Customers:    handler.NewCustomerHandler(svc, logger.With("component", "http")),
		Reservations: handler.NewReservationHandler(svc, logger.With("component", "http")),
		Metrics:      metrics.Handler(),
		JWTSecret:    cfg.JWTSecret,
		RateLimit:    cfg.RateLimit,
		Cache:        cfg.Cache,
		Redis:        rdb,
		Logger:       logger,
	})

	var g run.Group
	addHTTP(&g, e, ":"+cfg.Port, cfg, logger)
	if cfg.Events.Enabled {
		consumer := &queue.Consumer{
			URL:    cfg.Events.URL,
			Queue:  cfg.Events.Queue,
			LogDir: cfg.Events.LogDir,
			Log:    logger.With("component", "consumer"),
		}
		cctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			if err := consumer.Run(cctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}, func(error) {
			cancel()
		})
	}
	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		logger.Info("shutting down", "signal", sig.Signal.String())
		return nil
	}
	return err
}

func addHTTP(g *run.Group, e *echo.Echo, addr string, cfg config.Config, logger *slog.Logger) {
	g.Add(func() error {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "storage", cfg.Storage, "events", cfg.Events.Enabled)
		if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			logger.Error("http shutdown", "err", err)
		}
	})
}
