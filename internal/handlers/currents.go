package handlers

import (
	"CurrentCalc/internal/middleware"
	"CurrentCalc/internal/repo"
	"CurrentCalc/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// CurrentHandler — заявки на расчёт и их устройства.
type CurrentHandler struct {
	Currents *service.CurrentService
	Logger   *zap.SugaredLogger
}

func NewCurrentHandler(currents *service.CurrentService, logger *zap.SugaredLogger) *CurrentHandler {
	return &CurrentHandler{Currents: currents, Logger: logger}
}

// writeServiceError транслирует доменные ошибки сервиса в HTTP-статусы.
func (h *CurrentHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoDraft), errors.Is(err, service.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrAlreadyAdded):
		errorJSON(w, http.StatusConflict, "device already in calculation")
	case errors.Is(err, service.ErrNotDraft):
		errorJSON(w, http.StatusBadRequest, "only draft calculations can be modified")
	case errors.Is(err, service.ErrEmptyCalculation):
		errorJSON(w, http.StatusBadRequest, "calculation has no devices")
	case errors.Is(err, service.ErrForbidden):
		errorJSON(w, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrBadAmount):
		errorJSON(w, http.StatusBadRequest, "amount must be at least 1")
	case errors.Is(err, service.ErrBadVoltage):
		errorJSON(w, http.StatusBadRequest, "voltage must be in (0, 48]")
	case errors.Is(err, service.ErrBadStatus):
		errorJSON(w, http.StatusBadRequest, "status must be completed or rejected")
	default:
		h.Logger.Errorw("current handler: service error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

// List возвращает заявки с фильтрами from-date/to-date/status.
func (h *CurrentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	f := repo.CurrentFilters{Status: r.URL.Query().Get("status")}
	if v := r.URL.Query().Get("from-date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.FromDate = &t
		}
	}
	if v := r.URL.Query().Get("to-date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.ToDate = &t
		}
	}
	list, err := h.Currents.List(r.Context(), userID, middleware.IsModeratorFromContext(r.Context()), f)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]CurrentJSON, 0, len(list))
	for i := range list {
		out = append(out, toCurrentJSON(&list[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

// Cart возвращает черновик пользователя; 404 — черновика нет.
func (h *CurrentHandler) Cart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	c, err := h.Currents.GetCart(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}

// Detail возвращает заявку с устройствами.
func (h *CurrentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, okID := parseID(r, "id")
	if !okID {
		errorJSON(w, http.StatusBadRequest, "invalid calculation id")
		return
	}
	c, err := h.Currents.GetDetail(r.Context(), userID, middleware.IsModeratorFromContext(r.Context()), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}

// Edit меняет напряжение бортовой сети черновика. Тело: {"voltage_bord": 12}.
func (h *CurrentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, okID := parseID(r, "id")
	if !okID {
		errorJSON(w, http.StatusBadRequest, "invalid calculation id")
		return
	}
	var body struct {
		VoltageBord float64 `json:"voltage_bord"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.Currents.EditVoltage(r.Context(), userID, id, body.VoltageBord)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}

// Form переводит черновик в formed.
func (h *CurrentHandler) Form(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, okID := parseID(r, "id")
	if !okID {
		errorJSON(w, http.StatusBadRequest, "invalid calculation id")
		return
	}
	c, err := h.Currents.Form(r.Context(), userID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}

// Finish — модераторское завершение заявки. Тело: {"status":"completed"|"rejected"}.
func (h *CurrentHandler) Finish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !middleware.IsModeratorFromContext(r.Context()) {
		errorJSON(w, http.StatusForbidden, "moderator role required")
		return
	}
	id, okID := parseID(r, "id")
	if !okID {
		errorJSON(w, http.StatusBadRequest, "invalid calculation id")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.Currents.Finish(r.Context(), userID, id, body.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}

// Delete — логическое удаление черновика.
func (h *CurrentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, okID := parseID(r, "id")
	if !okID {
		errorJSON(w, http.StatusBadRequest, "invalid calculation id")
		return
	}
	if err := h.Currents.Delete(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UpdateDevice меняет количество устройства в черновике. Тело: {"amount": n}.
func (h *CurrentHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	currentID, ok1 := parseID(r, "current_id")
	deviceID, ok2 := parseID(r, "device_id")
	if !ok1 || !ok2 {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cd, err := h.Currents.UpdateAmount(r.Context(), userID, currentID, deviceID, body.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	amperage := cd.Amperage
	writeJSON(w, http.StatusOK, CurrentDeviceJSON{
		CurrDevID: cd.ID,
		CurrentID: cd.CurrentID,
		DeviceID:  cd.DeviceID,
		Amount:    cd.Amount,
		Amperage:  &amperage,
	})
}

// RemoveDevice удаляет устройство из черновика.
func (h *CurrentHandler) RemoveDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	currentID, ok1 := parseID(r, "current_id")
	deviceID, ok2 := parseID(r, "device_id")
	if !ok1 || !ok2 {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.Currents.RemoveDevice(r.Context(), userID, currentID, deviceID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrentJSON(c, true))
}
