package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-service/internal/api"
	"shop-service/internal/auth"
	"shop-service/internal/config"
	"shop-service/internal/logger"
	"shop-service/internal/session"
	"shop-service/internal/store"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Str("data_dir", cfg.Storage.DataDir).Msg("Запуск сервера магазина")

	// Открываем каталог данных с таблицами
	st, err := store.NewStore(&cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Не удалось открыть каталог данных")
	}

	products := store.NewProductStore(st)
	users := store.NewUserStore(st)

	// Таблица сессий живет в памяти и очищается при перезапуске
	sessions := session.NewStore()
	guard := auth.NewGuard(sessions, users)

	// Настраиваем маршруты
	router := api.SetupRouter(guard, products, users, sessions)

	// Настраиваем HTTP сервер
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Сервер слушает")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Сервер не смог запуститься")
		}
	}()

	// Настраиваем корректное завершение работы
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Останавливаем сервер...")

	// Даем 10 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Сервер остановлен принудительно")
	}

	log.Info().Msg("Сервер остановлен")
}
