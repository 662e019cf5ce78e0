package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userLoginKey contextKey = "user_login"
	moderatorKey contextKey = "is_moderator"
)

// Claims — полезная нагрузка bearer-токена.
type Claims struct {
	jwt.RegisteredClaims
	Login       string `json:"login"`
	IsModerator bool   `json:"is_moderator"`
}

// RevocationChecker проверяет, не отозван ли токен (по jti) через signout.
type RevocationChecker interface {
	IsRevoked(jti string) bool
}

// NewToken выпускает подписанный JWT для пользователя. Возвращает токен и его jti.
func NewToken(userID, login string, isModerator bool, secret string) (string, string, error) {
	jti := uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
		Login:       login,
		IsModerator: isModerator,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseToken проверяет подпись и срок действия токена.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// WithAuth извлекает bearer-токен из Authorization, валидирует его и кладёт
// данные пользователя в контекст. Отсутствие/невалидность токена не прерывает
// запрос: гейтят доступ сами хендлеры через GetUserIDFromContext.
func WithAuth(secret string, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if revoked != nil && revoked.IsRevoked(claims.ID) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			ctx = context.WithValue(ctx, userLoginKey, claims.Login)
			ctx = context.WithValue(ctx, moderatorKey, claims.IsModerator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext возвращает UUID пользователя из контекста запроса.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// GetLoginFromContext возвращает логин пользователя из контекста запроса.
func GetLoginFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(userLoginKey).(string)
	return login, ok && login != ""
}

// IsModeratorFromContext сообщает, является ли пользователь модератором.
func IsModeratorFromContext(ctx context.Context) bool {
	m, _ := ctx.Value(moderatorKey).(bool)
	return m
}
