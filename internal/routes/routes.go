package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"org-registry/internal/controllers"
	"org-registry/internal/repositories"
	"org-registry/internal/services"
	"org-registry/pkg/config"
)

// InitRouter собирает зависимости и регистрирует маршруты.
// redisClient == nil - кеш организаций выключен.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	branchRepo := repositories.NewBranchRepository()
	organizationStore := repositories.NewOrganizationRepository(dbConn, txManager, branchRepo, logger)
	var organizationRepo repositories.OrganizationRepositoryInterface = organizationStore
	if redisClient != nil {
		cacheRepo := repositories.NewRedisCacheRepository(redisClient)
		organizationRepo = repositories.NewCachedOrganizationRepository(organizationStore, organizationStore, cacheRepo, cfg.Redis.CacheTTL, logger)
		logger.Info("Кеш организаций включен", zap.Duration("ttl", cfg.Redis.CacheTTL))
	}

	// --- 2. СЕРВИСЫ ---
	organizationService := services.NewOrganizationService(organizationRepo, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	organizationCtrl := controllers.NewOrganizationController(organizationService, cfg.Server.RequestTimeout, logger)

	RunOrganizationRouter(api, organizationCtrl)

	logger.Info("InitRouter: Маршруты успешно созданы")
}
