package handlers

import (
	"CurrentCalc/internal/middleware"
	"CurrentCalc/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DeviceHandler — каталог устройств и добавление в черновик.
type DeviceHandler struct {
	Devices  *service.DeviceService
	Currents *service.CurrentService
	Logger   *zap.SugaredLogger
}

func NewDeviceHandler(devices *service.DeviceService, currents *service.CurrentService, logger *zap.SugaredLogger) *DeviceHandler {
	return &DeviceHandler{Devices: devices, Currents: currents, Logger: logger}
}

func parseID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	return uint(id), err == nil
}

// List возвращает устройства; device_query фильтрует по подстроке имени.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("device_query")
	if query == "" {
		// историческое имя параметра из ранних ревизий клиента
		query = r.URL.Query().Get("device_name")
	}
	devices, err := h.Devices.List(r.Context(), query)
	if err != nil {
		h.Logger.Errorw("List devices: service error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]DeviceJSON, 0, len(devices))
	for i := range devices {
		out = append(out, toDeviceJSON(&devices[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Detail возвращает устройство по ID.
func (h *DeviceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid device id")
		return
	}
	d, err := h.Devices.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "device not found")
			return
		}
		h.Logger.Errorw("Get device: service error", "device_id", id, "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toDeviceJSON(d))
}

// AddToCurrentCalculation добавляет устройство в черновик пользователя.
// 409 — устройство уже в черновике.
func (h *DeviceHandler) AddToCurrentCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, okID := parseID(r, "id")
	if !okID {
		errorJSON(w, http.StatusBadRequest, "invalid device id")
		return
	}
	c, err := h.Currents.AddDevice(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyAdded):
			errorJSON(w, http.StatusConflict, "device already in calculation")
		case errors.Is(err, service.ErrNotFound):
			errorJSON(w, http.StatusNotFound, "device not found")
		default:
			h.Logger.Errorw("AddToCurrentCalculation: service error", "device_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}
