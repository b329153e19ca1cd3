package app

import (
	"context"

	"blogfeed/internal/config"
	"blogfeed/internal/db"
	"blogfeed/internal/handlers"
	"blogfeed/internal/logger"
	"blogfeed/internal/repository"
	"blogfeed/internal/routes"
	"blogfeed/internal/services"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp поднимает пул БД, схему, репозитории, сервисы и маршруты.
// Возвращаемая функция закрывает соединения.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	closers := []func(){conn.Close}

	// Репозитории
	postRepo := repository.NewPostRepo(conn, cfg.StoreTimeout)
	var users repository.UserDirectory = repository.NewUserRepository(conn, cfg.StoreTimeout)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Warn("Redis недоступен, кэш авторов работает в режиме промахов", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			logger.Log.Info("Кэш авторов в Redis включён", zap.String("addr", cfg.RedisAddr))
		}
		users = repository.NewCachedUserDirectory(users, rdb, cfg.RedisAuthorTTL)
		closers = append(closers, func() { _ = rdb.Close() })
	}

	// Сервисы
	postSvc := services.NewPostService(postRepo, users)
	listingSvc := services.NewListingService(postRepo, users, cfg.ListingPerPage)

	// Хендлеры
	blogHandler := handlers.NewBlogHandler(listingSvc, postSvc, cfg.ListingMaxPerPage)
	healthHandler := handlers.NewHealthHandler(conn)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, blogHandler, healthHandler, cfg.JWTSecret)

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return router, cleanup, nil
}
