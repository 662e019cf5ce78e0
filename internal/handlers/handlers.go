package handlers

import (
	"CurrentCalc/internal/config"
	"CurrentCalc/internal/middleware"
	"CurrentCalc/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	deviceService *service.DeviceService,
	currentService *service.CurrentService,
	tokens *service.TokenRegistry,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithMetrics)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret, tokens))

	// Handlers
	userHandler := NewUserHandler(userService, tokens, logger, config)
	deviceHandler := NewDeviceHandler(deviceService, currentService, logger)
	currentHandler := NewCurrentHandler(currentService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Devices
		r.Get("/devices", deviceHandler.List)
		r.Get("/devices/{id}", deviceHandler.Detail)
		r.Post("/devices/{id}/add-to-current-calculation", deviceHandler.AddToCurrentCalculation)

		// Current calculations
		r.Get("/current-calculations/current-calculations", currentHandler.List)
		r.Get("/current-calculations/current-cart", currentHandler.Cart)
		r.Get("/current-calculations/{id}", currentHandler.Detail)
		r.Put("/current-calculations/{id}/edit-current-calculations", currentHandler.Edit)
		r.Put("/current-calculations/{id}/form", currentHandler.Form)
		r.Put("/current-calculations/{id}/finish", currentHandler.Finish)
		r.Delete("/current-calculations/{id}/delete-current-calculations", currentHandler.Delete)

		// Current devices
		r.Put("/current-devices/{current_id}/{device_id}", currentHandler.UpdateDevice)
		r.Delete("/current-devices/{current_id}/{device_id}", currentHandler.RemoveDevice)

		// Users
		r.Post("/users/signin", userHandler.SignIn)
		r.Post("/users/signup", userHandler.SignUp)
		r.Post("/users/signout", userHandler.SignOut)
		r.Get("/users/{login}/me", userHandler.Me)
		r.Put("/users/{login}/me", userHandler.UpdateMe)
	})

	r.Handle("/metrics", promhttp.Handler())

	return &Handler{Router: r}
}
