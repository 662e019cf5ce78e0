package service

import (
	"sync"
	"time"
)

// TokenRegistry — in-memory список отозванных токенов (по jti).
// Записи живут не дольше срока жизни самого токена.
type TokenRegistry struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	ttl     time.Duration
}

func NewTokenRegistry(ttl time.Duration) *TokenRegistry {
	return &TokenRegistry{revoked: make(map[string]time.Time), ttl: ttl}
}

// Revoke помечает токен отозванным (signout).
func (r *TokenRegistry) Revoke(jti string) {
	if jti == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gc()
	r.revoked[jti] = time.Now().Add(r.ttl)
}

// IsRevoked проверяет, отозван ли токен.
func (r *TokenRegistry) IsRevoked(jti string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[jti]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(r.revoked, jti)
		return false
	}
	return true
}

// gc выбрасывает просроченные записи; вызывается под мьютексом.
func (r *TokenRegistry) gc() {
	now := time.Now()
	for jti, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, jti)
		}
	}
}
