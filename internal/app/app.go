package app

import (
	"context"

	"newsadmin/internal/config"
	"newsadmin/internal/db"
	"newsadmin/internal/handlers"
	"newsadmin/internal/loader"
	"newsadmin/internal/logger"
	"newsadmin/internal/repository"
	"newsadmin/internal/routes"
	"newsadmin/internal/services"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// InitApp поднимает БД, применяет схему и собирает роутер.
// Пул возвращается наружу, чтобы main закрыл его при остановке.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, *pgxpool.Pool, error) {
	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Info("Подключение к БД установлено", zap.String("dsn", cfg.GetDSNSafe()))

	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	// Репозитории
	newsPostRepo := repository.NewNewsPostRepository(conn)

	// Сервисы
	newsPostSvc := services.NewNewsPostService(newsPostRepo)

	// Хендлеры
	loaderOpts := loader.Options{Wait: cfg.LoaderWait, MaxBatch: cfg.LoaderMaxBatch}
	newsPostH := handlers.NewNewsPostHandler(newsPostSvc)
	nodeH := handlers.NewNodeHandler(newsPostRepo, loaderOpts)
	healthH := handlers.NewHealthHandler(conn)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, routes.Options{
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		LoaderSource:   newsPostRepo,
		LoaderOptions:  loaderOpts,
	}, newsPostH, nodeH, healthH)

	return router, conn, nil
}
