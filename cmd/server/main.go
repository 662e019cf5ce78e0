package main

import (
	"CurrentCalc/internal/config"
	"CurrentCalc/internal/handlers"
	"CurrentCalc/internal/middleware"
	"CurrentCalc/internal/repo"
	"CurrentCalc/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	deviceRepo := repo.NewDeviceRepository(gormDB)
	currentRepo := repo.NewCurrentRepository(gormDB)

	userService := service.NewUserService(userRepo)
	deviceService := service.NewDeviceService(deviceRepo)
	currentService := service.NewCurrentService(currentRepo, deviceRepo, sugar)
	tokens := service.NewTokenRegistry(24 * time.Hour)

	h := handlers.NewHandler(userService, deviceService, currentService, tokens, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
