package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "blogfeed/docs"
	"blogfeed/internal/app"
	"blogfeed/internal/config"
	"blogfeed/internal/logger"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Blogfeed API
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @version 1.0
// @description Лента публикаций: список, поиск, черновики, публикация и счётчик прочтений.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.InitLogger(&config.Config{})
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Log.Fatal("Некорректный конфиг", zap.Error(err))
	}
	for _, w := range warnings {
		logger.Log.Warn(w)
	}
	logger.Log.Info("Подключение к БД", zap.String("dsn", cfg.GetDSNSafe()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, cleanup, err := app.InitApp(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}
	defer cleanup()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
	})

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsMiddleware.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Ошибка остановки сервера", zap.Error(err))
		}
	}()

	logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
	logger.Log.Info("Сервер остановлен")
}
