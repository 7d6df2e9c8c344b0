package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_service/internal/config"
	pkgdb "github.com/Skotchmaster/product_service/internal/db"
	"github.com/Skotchmaster/product_service/internal/es"
	"github.com/Skotchmaster/product_service/internal/httpserver"
	"github.com/Skotchmaster/product_service/internal/metrics"
	loggingmw "github.com/Skotchmaster/product_service/internal/middleware/logging"
	"github.com/Skotchmaster/product_service/internal/mykafka"
	"github.com/Skotchmaster/product_service/internal/repo"
	"github.com/Skotchmaster/product_service/internal/service"
)

// App is built once at start-up and owns every long-lived handle.
type App struct {
	Config  config.Config
	DB      *gorm.DB
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Service *service.ProductService

	producer *mykafka.Producer
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	a, err := NewWithDB(ctx, cfg, logger, db)
	if err != nil {
		_ = pkgdb.Close(db)
		return nil, err
	}
	return a, nil
}

// NewWithDB wires the service around an already opened database.
func NewWithDB(ctx context.Context, cfg config.Config, logger *slog.Logger, db *gorm.DB) (*App, error) {
	a := &App{
		Config:  cfg,
		DB:      db,
		Logger:  logger,
		Metrics: metrics.New(),
		Service: &service.ProductService{
			Repo:  &repo.GormRepo{DB: db},
			Topic: cfg.KafkaTopic,
		},
	}

	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		a.producer = prod
		a.Service.Events = prod
		logger.Info("kafka events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	if cfg.ESURL != "" {
		client, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			_ = a.closeProducer()
			return nil, err
		}
		a.Service.Index = &es.Index{Client: client, Name: cfg.ESIndex}
		logger.Info("search enabled", "index", cfg.ESIndex)
	}

	return a, nil
}

func (a *App) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	// metrics wraps Recover so recovered panics are counted as 500
	e.Use(a.Metrics.Middleware())
	e.Use(echomw.Recover())
	e.Use(loggingmw.RequestLogger(a.Logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:             a.DB,
		ProductHandler: &httpserver.ProductHTTP{Svc: a.Service},
		Metrics:        a.Metrics,
		JWTSecret:      a.Config.JWTSecret,
		SearchEnabled:  a.Service.Index != nil,
	})
	return e
}

func (a *App) closeProducer() error {
	if a.producer == nil {
		return nil
	}
	return a.producer.Close()
}

func (a *App) Close() error {
	return errors.Join(a.closeProducer(), pkgdb.Close(a.DB))
}
