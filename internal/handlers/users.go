package handlers

import (
	"CurrentCalc/internal/config"
	"CurrentCalc/internal/middleware"
	"CurrentCalc/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler — регистрация, вход/выход и профиль.
type UserHandler struct {
	Users  *service.UserService
	Tokens *service.TokenRegistry
	Logger *zap.SugaredLogger
	Config *config.Config
}

func NewUserHandler(users *service.UserService, tokens *service.TokenRegistry, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{Users: users, Tokens: tokens, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	IsModerator bool   `json:"is_moderator"`
}

// SignUp регистрирует пользователя. 201 + Location + тело созданного пользователя.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.Users.Register(r.Context(), req.Login, req.Password, req.IsModerator)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginTaken):
			errorJSON(w, http.StatusConflict, "login already in use")
		case errors.Is(err, service.ErrInvalidCredentials):
			errorJSON(w, http.StatusBadRequest, "login and password are required")
		default:
			h.Logger.Errorw("SignUp: service error", "error", err)
			errorJSON(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	w.Header().Set("Location", "/api/v1/users/"+u.Login+"/me")
	writeJSON(w, http.StatusCreated, UserJSON{ID: u.ID, Login: u.Login, IsModerator: u.IsModerator})
}

// SignIn выдаёт bearer-токен в формате {"token":"..."}.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.Users.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorJSON(w, http.StatusUnauthorized, "invalid login or password")
			return
		}
		h.Logger.Errorw("SignIn: service error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	token, _, err := middleware.NewToken(u.ID, u.Login, u.IsModerator, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("SignIn: token error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// SignOut отзывает текущий токен. Возвращает {"status":"signed_out"}.
func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	header := r.Header.Get("Authorization")
	raw := strings.TrimPrefix(header, "Bearer ")
	if claims, err := middleware.ParseToken(raw, h.Config.AuthSecret); err == nil {
		h.Tokens.Revoke(claims.ID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Me возвращает профиль; доступен только самому пользователю.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	ctxLogin, ok := middleware.GetLoginFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if ctxLogin != login {
		errorJSON(w, http.StatusForbidden, "access denied")
		return
	}
	u, err := h.Users.GetByLogin(r.Context(), login)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, UserJSON{ID: u.ID, Login: u.Login, IsModerator: u.IsModerator})
}

// UpdateMe обновляет профиль (смена пароля).
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	ctxLogin, ok := middleware.GetLoginFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if ctxLogin != login {
		errorJSON(w, http.StatusForbidden, "access denied")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.Users.UpdatePassword(r.Context(), login, req.Password)
	if err != nil {
		h.Logger.Errorw("UpdateMe: service error", "login", login, "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, UserJSON{ID: u.ID, Login: u.Login, IsModerator: u.IsModerator})
}
