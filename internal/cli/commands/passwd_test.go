package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPasswd_UpdatesProfileOfSignedInUser(t *testing.T) {
	withTempConfig(t)

	var gotPassword string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/signin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"jwt-abc"}`)
	})
	mux.HandleFunc("PUT /api/v1/users/john/me", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotPassword = body.Password
		fmt.Fprint(w, `{"login":"john"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	ctx := context.Background()

	buf := captureOut(t)
	if code := Dispatch(ctx, cfg, []string{"signin", "john", "old"}); code != 0 {
		t.Fatalf("signin exit code = %d, output: %s", code, buf.String())
	}
	if code := Dispatch(ctx, cfg, []string{"passwd", "brand-new"}); code != 0 {
		t.Fatalf("passwd exit code = %d, output: %s", code, buf.String())
	}
	if gotPassword != "brand-new" {
		t.Fatalf("password sent = %q", gotPassword)
	}
	if !strings.Contains(buf.String(), "Пароль обновлён") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestPasswd_RequiresSignIn(t *testing.T) {
	withTempConfig(t)
	buf := captureOut(t)

	code := Dispatch(context.Background(), testConfig("http://localhost:0"), []string{"passwd", "x"})
	if code != 1 {
		t.Fatalf("exit code = %d, want 1, output: %s", code, buf.String())
	}
}
