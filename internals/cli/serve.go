package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"duomonggo_backend/internals/configs"
	database "duomonggo_backend/internals/databases"
	"duomonggo_backend/internals/databases/migrations"
	"duomonggo_backend/internals/features/progress/multiplayer/scheduler"
	helper "duomonggo_backend/internals/helpers"
	"duomonggo_backend/internals/helpers/assets"
	middlewares "duomonggo_backend/internals/middlewares"
	routes "duomonggo_backend/internals/route"
	routeDetails "duomonggo_backend/internals/route/details"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// NewApp fiber dengan codec sonic + error handler envelope.
func NewApp(cfg *configs.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               8 * 1024 * 1024,
	})
	middlewares.SetupMiddlewares(app, cfg)
	return app
}

func runServe(ctx context.Context) error {
	cfg, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db)

	// 🔌 pool + warm-up
	database.TunePool(db)
	database.WarmUpQueries(db)

	if cfg.DBAutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := migrations.Up(ctx, sqlDB); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Println("[INFO] migrasi otomatis selesai")
	}

	rdb := database.ConnectRedis(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	uploader, err := assets.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Printf("[WARN] asset uploader tidak aktif: %v", err)
		uploader = assets.Disabled{}
	}

	app := NewApp(cfg)
	services := routes.SetupRoutes(app, routeDetails.Deps{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Uploader: uploader,
	})

	// ⏱ scheduler setelah DB & Redis siap
	if rdb != nil {
		c, err := scheduler.StartRankingSync(cfg.LeaderboardSyncCron, services.Multiplayer)
		if err != nil {
			return fmt.Errorf("ranking sync cron: %w", err)
		}
		defer c.Stop()
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Println("[INFO] shutting down...")
	return app.ShutdownWithContext(shutdownCtx)
}
