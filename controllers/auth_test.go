package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterLoginMe(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")

	w := doJSON(router, http.MethodPost, "/auth/register",
		`{"email":"owner@shop.ua","name":"Ann","password":"sup3rsecret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(router, http.MethodPost, "/auth/login",
		`{"identifier":"owner@shop.ua","password":"sup3rsecret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("login: no token in %s", w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("me: status %d, body %s", w2.Code, w2.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")

	w := doJSON(router, http.MethodPost, "/auth/register",
		`{"email":"owner@shop.ua","name":"Ann","password":"sup3rsecret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, "/auth/login",
		`{"identifier":"owner@shop.ua","password":"wrong-password"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("login with bad password: status %d, want 401", w.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/auth/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me without token: status %d, want 401", w.Code)
	}
}
