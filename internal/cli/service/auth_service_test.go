package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"CurrentCalc/internal/cli/api"
	climodel "CurrentCalc/internal/cli/model"
	"CurrentCalc/internal/cli/store"
)

type memLogins struct{ login string }

func (m *memLogins) SaveLogin(login string) error { m.login = login; return nil }
func (m *memLogins) LoadLogin() (string, error) {
	if m.login == "" {
		return "", errors.New("no login")
	}
	return m.login, nil
}
func (m *memLogins) ClearLogin() error { m.login = ""; return nil }

func TestAuthService_SignInStoresTokenAndLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"jwt-abc"}`)
	}))
	defer srv.Close()

	tokens := &memTokens{}
	logins := &memLogins{}
	svc := NewAuthService(api.New(srv.URL, tokens), tokens, logins, store.New())

	if err := svc.SignIn(context.Background(), "john", "p@ss"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if tokens.token != "jwt-abc" {
		t.Fatalf("token = %q", tokens.token)
	}
	login, err := svc.CurrentLogin()
	if err != nil {
		t.Fatalf("CurrentLogin: %v", err)
	}
	if login != "john" {
		t.Fatalf("login = %q", login)
	}
}

func TestAuthService_SignOutClearsLocalState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"signed_out"}`)
	}))
	defer srv.Close()

	tokens := &memTokens{token: "jwt-abc"}
	logins := &memLogins{login: "john"}
	st := store.New()
	st.SetCart(&climodel.CurrentCalculation{CurrentID: 7, Status: climodel.StatusDraft})

	svc := NewAuthService(api.New(srv.URL, tokens), tokens, logins, st)
	if err := svc.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if tokens.token != "" || logins.login != "" {
		t.Fatal("токен и логин должны стереться")
	}
	if st.Cart() != nil {
		t.Fatal("проекция корзины должна сброситься")
	}
	if _, err := svc.CurrentLogin(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestAuthService_SignOutSurvivesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tokens := &memTokens{token: "jwt-abc"}
	logins := &memLogins{login: "john"}
	svc := NewAuthService(api.New(srv.URL, tokens), tokens, logins, store.New())

	err := svc.SignOut(context.Background())
	if err == nil {
		t.Fatal("ошибка сервера должна всплыть")
	}
	// локальное состояние чистится даже при недоступном сервере
	if tokens.token != "" || logins.login != "" {
		t.Fatal("токен и логин должны стереться локально")
	}
}
