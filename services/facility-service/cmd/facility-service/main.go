package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/md-rashed-zaman/facilitycal/libs/auth"
	"github.com/md-rashed-zaman/facilitycal/libs/config"
	"github.com/md-rashed-zaman/facilitycal/libs/db"
	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/libs/kafkax"
	otelx "github.com/md-rashed-zaman/facilitycal/libs/otel"
	"github.com/md-rashed-zaman/facilitycal/libs/runtime"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/availability"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/events"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/handlers"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/holidays"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/slots"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("dotenv load failed", "err", err)
		os.Exit(1)
	}
	service := config.String("SERVICE_NAME", "facility-service")
	logger := runtime.NewLogger(service)
	if err := run(logger, service); err != nil {
		logger.Error("facility-service exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, service string) error {
	port, err := config.Port("PORT", "8090")
	if err != nil {
		return err
	}
	country := config.String("COUNTRY", "botswana")

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelCfg, err := otelx.ConfigFromEnv(service)
	if err != nil {
		return err
	}
	otelShutdown, err := otelx.Setup(ctx, otelCfg)
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	var readyChecks []runtime.ReadyCheck
	registry := holidays.NewRegistry()
	deps := handlers.Deps{
		Holidays:       registry,
		Logger:         logger,
		DefaultCountry: country,
	}

	var facilities facility.Store = facility.NewMemoryStore()
	if dbURL := config.String("DATABASE_URL", ""); dbURL != "" {
		maxConns, err := config.Int("DB_MAX_CONNS", 10)
		if err != nil {
			return err
		}
		connectTimeout, err := config.Duration("DB_CONNECT_TIMEOUT", 10*time.Second)
		if err != nil {
			return err
		}
		pool, err := db.Open(ctx, dbURL, db.Options{MaxConns: int32(maxConns), ConnectTimeout: connectTimeout})
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := storage.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		facilities = storage.NewFacilityRepository(pool)
		holidayRepo := storage.NewHolidayRepository(pool)
		deps.HolidayStore = holidayRepo
		n, err := registry.Load(ctx, holidayRepo)
		if err != nil {
			return err
		}
		logger.Info("holidays loaded", "source", "db", "count", n)
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)})
	} else {
		logger.Warn("DATABASE_URL not set; facilities and imported holidays are kept in memory")
	}
	deps.Facilities = facilities

	if path := config.String("FACILITIES_FILE", ""); path != "" {
		configs, err := facility.LoadYAMLFile(path)
		if err != nil {
			return err
		}
		for _, c := range configs {
			if err := facilities.Upsert(ctx, c); err != nil {
				return err
			}
		}
		logger.Info("facilities seeded", "file", path, "count", len(configs))
	}

	if path := config.String("HOLIDAYS_CSV", ""); path != "" {
		n, err := registry.Load(ctx, holidays.CSVSource{Path: path})
		if err != nil {
			return err
		}
		logger.Info("holidays loaded", "source", path, "count", n)
	}
	if builtin := config.String("HOLIDAY_CALENDAR", ""); builtin != "" {
		year := time.Now().Year()
		years, err := config.Int("HOLIDAY_CALENDAR_YEARS", 2)
		if err != nil {
			return err
		}
		n, err := registry.Load(ctx, holidays.CalendarSource{Country: builtin, FromYear: year, ToYear: year + years - 1, Observed: true})
		if err != nil {
			return err
		}
		logger.Info("holidays generated", "calendar", builtin, "count", n)
	}
	for _, warning := range registry.Check(country) {
		logger.Warn(warning, "country", country)
	}

	rateLimit, err := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return err
	}
	limiter := httpx.NewLocalRateLimiter(rateLimit, time.Minute)
	if redisAddr := config.String("REDIS_ADDR", ""); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: config.String("REDIS_PASSWORD", ""),
		})
		defer rdb.Close()
		retention, err := config.Duration("SLOT_RETENTION", 30*24*time.Hour)
		if err != nil {
			return err
		}
		deps.Slots = slots.NewCounter(rdb, slots.Config{Prefix: "facilitycal:slots", Retention: retention})
		limiter = httpx.NewRedisRateLimiter(rdb, logger, httpx.RedisRateLimitConfig{
			Limit:    rateLimit,
			Window:   time.Minute,
			Prefix:   "facilitycal:rl",
			FailOpen: true,
		}).Middleware()
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	if brokers := config.List("KAFKA_BROKERS"); len(brokers) > 0 {
		publisher := events.NewKafkaPublisher(brokers, service)
		defer publisher.Close()
		deps.Events = publisher
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}

	deps.Resolver = availability.NewResolver(registry)
	h := handlers.New(deps)

	bodyLimit, err := config.Int("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return err
	}
	r := chi.NewRouter()
	r.Use(
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithCORS(httpx.CORSPolicy{AllowedOrigins: config.List("CORS_ALLOWED_ORIGINS")}),
		httpx.WithBodyLimit(int64(bodyLimit)),
	)
	runtime.MountHealth(r, readyChecks...)
	r.Group(func(r chi.Router) {
		r.Use(limiter)
		h.Mount(r, adminGuard(logger, config.String("ADMIN_JWT_SECRET", "")))
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           otelhttp.NewHandler(r, "facility"),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return runtime.ServeHTTP(ctx, logger, srv, 10*time.Second)
}

// adminGuard requires an admin bearer token. Without a secret the admin routes
// are open, which is only acceptable for local runs, so it warns loudly.
func adminGuard(logger *slog.Logger, secret string) func(http.Handler) http.Handler {
	if secret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set; admin routes (facility upsert, bookings, holiday import) are unauthenticated")
	}
	return auth.RequireRole(secret, "admin")
}
