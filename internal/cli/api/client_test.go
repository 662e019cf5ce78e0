package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// memTokens — хранилище токена в памяти для тестов.
type memTokens struct{ token string }

func (m *memTokens) Save(token string) error { m.token = token; return nil }
func (m *memTokens) Load() (string, error) {
	if m.token == "" {
		return "", errors.New("no token")
	}
	return m.token, nil
}
func (m *memTokens) Clear() error { m.token = ""; return nil }

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "tkn-123"})
	if _, err := c.ListDevices(context.Background(), ""); err != nil {
		t.Fatalf("ListDevices: %v", err)
	}
	if gotAuth != "Bearer tkn-123" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestClient_NoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	if _, err := c.ListDevices(context.Background(), ""); err != nil {
		t.Fatalf("ListDevices: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_StatusErrorCarriesDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"description":"voltage must be in (0, 48]"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	_, err := c.EditCurrentCalculation(context.Background(), 1, 99)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusBadRequest || se.Description != "voltage must be in (0, 48]" {
		t.Fatalf("StatusError = %+v", se)
	}
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatal("IsStatus must match the code")
	}
	if IsStatus(fmt.Errorf("wrap: %w", err), http.StatusBadRequest) != true {
		t.Fatal("IsStatus must see through wrapping")
	}
}

func TestClient_CartNotFoundIsAbsentCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"description":"not found"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "t"})
	cart, err := c.GetCurrentCart(context.Background())
	if err != nil {
		t.Fatalf("404 корзины не ошибка, получено: %v", err)
	}
	if cart != nil {
		t.Fatalf("cart = %+v, want nil (черновика нет)", cart)
	}
}

func TestClient_AddConflictIsAlreadyAdded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"description":"device already in calculation"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "t"})
	cart, already, err := c.AddToCurrentCalculation(context.Background(), 5)
	if err != nil {
		t.Fatalf("409 добавления не ошибка, получено: %v", err)
	}
	if !already || cart != nil {
		t.Fatalf("(cart=%v, already=%v), want (nil, true)", cart, already)
	}
}

func TestClient_OtherErrorsPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "t"})
	if _, err := c.GetCurrentCart(context.Background()); !IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("err = %v, want 500 StatusError", err)
	}
	if _, _, err := c.AddToCurrentCalculation(context.Background(), 5); !IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("err = %v, want 500 StatusError", err)
	}
}

func TestClient_SignInReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/signin" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"token":"jwt-abc"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	token, err := c.SignIn(context.Background(), "john", "p@ss")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if token != "jwt-abc" {
		t.Fatalf("token = %q", token)
	}
}
