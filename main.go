package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"riot-stats-api/config"
	"riot-stats-api/handlers"
	"riot-stats-api/logging"
	"riot-stats-api/middleware"
	"riot-stats-api/services"
	"riot-stats-api/store"
	"riot-stats-api/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Caller: cfg.LogCaller, Output: os.Stderr})
	if !dotenv {
		logging.Info().Msg("⚠️  No .env file found, reading environment variables directly")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout())
	db, err := store.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout())
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout())
	err = store.EnsureIndexes(indexCtx, db)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create indexes")
	}

	matchIDs := store.NewMatchIDStore(db)
	matchData := store.NewMatchDataStore(db)
	players := store.NewPlayerStore(db)

	matchService := services.NewMatchService(matchIDs, matchData, players)
	playerService := services.NewPlayerService(players, matchData)

	// A nil object store turns the archive route into a 503.
	var objects services.ObjectStore
	if cfg.ArchiveEnabled() {
		r2, err := utils.NewR2Store(ctx, utils.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2Bucket,
			CDNBaseURL:      cfg.CDNBaseURL,
			Endpoint:        cfg.R2Endpoint,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize R2 client")
		}
		objects = r2
	} else {
		logging.Warn().Msg("R2 settings incomplete, match archiving disabled")
	}
	archiveService := services.NewArchiveService(matchData, objects)

	var sched gocron.Scheduler
	if interval := cfg.MonitorInterval(); interval > 0 {
		monitor := services.NewStoreMonitor(store.NewProbe(db), cfg.MongoTimeout())
		if sched, err = monitor.Start(interval); err != nil {
			logging.Fatal().Err(err).Msg("failed to start store monitor")
		}
	}

	app := newApp(cfg, matchService, playerService, archiveService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logging.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	logging.Info().
		Str("port", cfg.Port).
		Str("database", cfg.MongoDatabase).
		Strs("origins", cfg.Origins()).
		Bool("serviceToken", cfg.ServiceToken != "").
		Bool("archive", objects != nil).
		Msg("✅ Server running")

	<-ctx.Done()
	logging.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}
	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			logging.Error().Err(err).Msg("scheduler shutdown")
		}
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("mongo disconnect")
	}
}

// newApp builds the HTTP surface. Recover sits inside the request context
// middleware so a panicking request is still logged and counted.
func newApp(cfg *config.Config, matchService *services.MatchService, playerService *services.PlayerService, archiveService *services.ArchiveService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "riot-stats-api",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})

	app.Use(middleware.RequestContextMiddleware())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.Origins(), ","),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Service-Token",
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
		MaxAge:        86400,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	guard := middleware.ServiceTokenMiddleware(cfg.ServiceToken)
	api := app.Group("/api")
	handlers.SetupMatchIDRoutes(api, matchService, guard)
	handlers.SetupMatchDataRoutes(api, matchService, archiveService, guard)
	handlers.SetupMatchRoutes(api, matchService, guard)
	handlers.SetupPlayerRoutes(api, playerService, guard)
	return app
}
