package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"org-registry/internal/repositories"
	"org-registry/internal/routes"
	"org-registry/pkg/api"
	"org-registry/pkg/config"
	"org-registry/pkg/database/postgresql"
	apperrors "org-registry/pkg/errors"
	applogger "org-registry/pkg/logger"
	appmw "org-registry/pkg/middleware"
	"org-registry/pkg/validation"
	"org-registry/seeders"
)

const shutdownTimeout = 10 * time.Second

type Globals struct {
	Debug   bool
	Version string
}

// bootstrap читает конфиг и поднимает логгер. Общий шаг всех команд.
func bootstrap(globals *Globals) (*config.Config, *zap.Logger, error) {
	cfg := config.New()
	if globals.Debug {
		cfg.Log.Level = "debug"
	}
	logger, err := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось создать логгер: %w", err)
	}
	return cfg, logger, nil
}

// -----------------------------------------------------------
// SERVE
// -----------------------------------------------------------

type ServeCmd struct {
	Port string `help:"Порт HTTP-сервера (по умолчанию SERVER_PORT)."`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, logger, err := bootstrap(globals)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if s.Port != "" {
		cfg.Server.Port = s.Port
	}

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, cfg.Postgres.DSN, logger); err != nil {
			return err
		}
	}

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	e, err := newEcho(logger)
	if err != nil {
		return err
	}
	routes.InitRouter(e, dbConn, redisClient, cfg, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("version", globals.Version))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(logger *zap.Logger) (*echo.Echo, error) {
	v, err := validation.New()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = v

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Паника при обработке запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = api.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))
	return e, nil
}

// connectRedis возвращает nil, если адрес не задан: кеш выключен.
func connectRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Address == "" {
		logger.Info("REDIS_ADDRESS не задан, кеш организаций выключен")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", cfg.Address, err)
	}
	logger.Info("Подключено к Redis", zap.String("address", cfg.Address))
	return client, nil
}

// -----------------------------------------------------------
// MIGRATE
// -----------------------------------------------------------

type MigrateCmd struct{}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, logger, err := bootstrap(globals)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return postgresql.Migrate(ctx, cfg.Postgres.DSN, logger)
}

// -----------------------------------------------------------
// SEED
// -----------------------------------------------------------

type SeedCmd struct {
	Migrate bool `help:"Перед наполнением применить миграции." default:"true" negatable:""`
}

func (s *SeedCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, logger, err := bootstrap(globals)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if s.Migrate {
		if err := postgresql.Migrate(ctx, cfg.Postgres.DSN, logger); err != nil {
			return err
		}
	}

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	return seeders.SeedOrganizations(ctx, newOrganizationStore(dbConn, logger), logger)
}

// Seed пишет в БД напрямую, без кеша: ключи в Redis могут устареть на TTL.
func newOrganizationStore(dbConn *pgxpool.Pool, logger *zap.Logger) repositories.OrganizationRepositoryInterface {
	return repositories.NewOrganizationRepository(dbConn, repositories.NewTxManager(dbConn), repositories.NewBranchRepository(), logger)
}
