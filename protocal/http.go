package protocal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"album-uploader/configs"
	httpAdapter "album-uploader/internal/adapters/input/http"
	"album-uploader/internal/adapters/output/memory"
	"album-uploader/internal/adapters/output/pocketbase"
	"album-uploader/internal/adapters/output/postgres"
	"album-uploader/internal/adapters/output/telegram"
	"album-uploader/internal/application"
	"album-uploader/internal/ports/output"
	"album-uploader/pkg/database_driver/gorm"
	"album-uploader/pkg/errreport"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	gormio "gorm.io/gorm"
)

// memoryHistorySize is the number of uploads kept when postgres is disabled
const memoryHistorySize = 1000

type options struct {
	Env        string `long:"env" env:"APP_ENV" description:"the environment to use"`
	ConfigPath string `long:"config-path" env:"APP_CONFIG_PATH" default:"./configs" description:"directory holding config.yaml"`
}

// ServeHTTP func
func ServeHTTP() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	if err := configs.InitViper(opts.ConfigPath, opts.Env); err != nil {
		return err
	}
	cfg := configs.GetViper()
	if err := configs.Validate(cfg); err != nil {
		return err
	}
	setupLogging(cfg.App)
	logrus.Info(cfg.App.Env)

	sentryEnv := cfg.Sentry.Environment
	if sentryEnv == "" {
		sentryEnv = cfg.App.Env
	}
	reporting, err := errreport.Init(cfg.Sentry.DSN, sentryEnv)
	if err != nil {
		logrus.Warnf("Error reporting disabled: %v", err)
	}
	if reporting {
		defer errreport.Flush()
	}

	// Wire up the hexagonal architecture layers
	// Output adapters (Telegram Bot API, PocketBase)
	telegramClient, err := telegram.NewTelegramClientAdapter(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("failed to create telegram client: %w", err)
	}
	pocketbaseClient, err := pocketbase.NewPocketBaseClientAdapter(cfg.Upload)
	if err != nil {
		return fmt.Errorf("failed to create pocketbase client: %w", err)
	}

	// Output adapters (process local state)
	sessionStore := memory.NewMemorySessionStore(time.Duration(cfg.Session.Timeout) * time.Minute)
	dedupGate, err := memory.NewDeduplicationGate(cfg.Dedup.Capacity)
	if err != nil {
		return err
	}

	// Output adapter (upload history repository)
	var db *gormio.DB
	var history output.UploadHistory
	if cfg.Postgres.Enabled {
		dbConGorm, err := gorm.ConnectToPostgreSQL(gorm.ConnectionParams{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			DbName:   cfg.Postgres.DbName,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			return err
		}
		db = dbConGorm.Postgres
		defer gorm.DisconnectPostgres(db)

		repo, err := postgres.NewUploadHistoryRepository(db)
		if err != nil {
			return err
		}
		history = repo
	} else {
		logrus.Info("Postgres disabled, upload history is kept in memory")
		history = memory.NewMemoryUploadHistory(memoryHistorySize)
	}

	// Application services (use cases)
	engine := application.NewConversationEngine(pocketbaseClient, telegramClient, pocketbaseClient, history, cfg.Upload.DefaultTitle)
	processor := application.NewUpdateProcessor(sessionStore, engine, telegramClient)
	dispatcher := application.NewUpdateDispatcher(processor.Process, cfg.Dispatcher.Workers, cfg.Dispatcher.QueueSize)
	webhookSrv := application.NewWebhookService(dedupGate, dispatcher)
	historySrv := application.NewUploadHistoryService(history)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	// Input adapters (HTTP handlers)
	hdl := httpAdapter.New(historySrv, db)
	webhookHdl := httpAdapter.NewTelegramWebhookHandler(webhookSrv)

	app := fiber.New(fiber.Config{DisableStartupMessage: !cfg.App.Debug})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/v1/api")
	{
		api.Get("/uploads", hdl.ListUploads)
	}

	webhook := app.Group("/webhook")
	{
		webhook.Post("/telegram", webhookHdl.HandleWebhook)
	}

	if cfg.Telegram.WebhookURL != "" {
		if err := telegramClient.RegisterWebhook(cfg.Telegram.WebhookURL); err != nil {
			return err
		}
	} else {
		logrus.Warn("telegram.webhook_url is empty, webhook registration skipped")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logrus.Info("Gracefull shut down ...")
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Error("Error when shutdown server")
		}
	}()

	logrus.Infof("Listening on port: %s as @%s", cfg.App.Port, telegramClient.BotUsername())
	// Deferred calls drain the dispatcher before the database is closed
	return app.Listen(":" + cfg.App.Port)
}

// setupLogging applies app.log_level and app.log_format to the standard logger
func setupLogging(cfg configs.App) {
	if strings.EqualFold(cfg.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if cfg.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}
