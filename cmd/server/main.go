package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/water-shop/internal/app"
	"github.com/linemk/water-shop/internal/app/handlers"
	"github.com/linemk/water-shop/internal/config"
	"github.com/linemk/water-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/water-shop/internal/lib/logger"
	"github.com/linemk/water-shop/internal/lib/logger/handlers/urllog"
	"github.com/linemk/water-shop/internal/service"
	"github.com/linemk/water-shop/internal/storage"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// цены сериализуются числами, как их ожидает фронтенд
	decimal.MarshalJSONWithoutQuotes = true

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)

	authService := service.NewAuthService(application.Logger, userRepo, time.Duration(application.Config.JWT.TokenTTL)*time.Minute)
	productService := service.NewProductService(application.Logger, productRepo)
	orderService := service.NewOrderService(application.Logger, application.DB, productRepo, orderRepo)

	// публичные эндпоинты: регистрация, вход и каталог
	router.Post("/api/register", handlers.RegisterHandler(application.Logger, authService))
	router.Post("/api/login", handlers.LoginHandler(application.Logger, authService))
	router.Get("/api/products", handlers.ListProductsHandler(application.Logger, productService))
	router.Get("/api/products/{id}", handlers.GetProductHandler(application.Logger, productService))

	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		// текущий пользователь
		r.Get("/api/me", handlers.MeHandler(application.Logger, authService))
		// управление каталогом
		r.Post("/api/products", handlers.CreateProductHandler(application.Logger, productService))
		r.Put("/api/products/{id}", handlers.UpdateProductHandler(application.Logger, productService))
		r.Delete("/api/products/{id}", handlers.DeleteProductHandler(application.Logger, productService))
		// заказы: список/оформление/просмотр/обновление/удаление
		r.Get("/api/orders", handlers.ListOrdersHandler(application.Logger, orderService))
		r.Post("/api/orders", handlers.CreateOrderHandler(application.Logger, orderService))
		r.Get("/api/orders/{id}", handlers.GetOrderHandler(application.Logger, orderService))
		r.Put("/api/orders/{id}", handlers.UpdateOrderHandler(application.Logger, orderService))
		r.Delete("/api/orders/{id}", handlers.DeleteOrderHandler(application.Logger, orderService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
