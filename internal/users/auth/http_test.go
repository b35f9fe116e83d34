// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vendora/internal/users/auth"
)

// newTestRouter wires a Handler over in-memory fakes and returns the router
// plus the store for session manipulation.
func newTestRouter(t *testing.T) (http.Handler, *auth.Service, *memTokenStore) {
	t.Helper()
	service, _, tokenStore := newTestService()
	return auth.NewHandler(service).Routes(), service, tokenStore
}

// postJSON performs a JSON POST against the router.
func postJSON(router http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// sessionCookie extracts the "token" cookie from a response.
func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// decodeEnvelope unmarshals the standard {"data": ...} success envelope.
func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

// decodeError unmarshals the standard error envelope.
func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Code, envelope.Error
}

// # Registration & Login Endpoints

/*
TestHTTP_Signup_SetsSessionCookie verifies the 201 contract: profile in the
envelope, password hash withheld, and a hardened day-long session cookie.
*/
func TestHTTP_Signup_SetsSessionCookie(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := postJSON(router, "/signup", map[string]string{
		"name":     "Tai",
		"email":    "tai@vendora.com",
		"password": "correct-horse",
		"role":     "USER",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)

	data := decodeEnvelope(t, recorder)
	assert.Equal(t, "tai@vendora.com", data["email"])
	assert.NotContains(t, data, "password_hash")

	cookie := sessionCookie(t, recorder)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.InDelta(t, int(24*time.Hour/time.Second), cookie.MaxAge, 5)
}

/*
TestHTTP_Signup_Validation verifies missing fields fail with 400 before any
state is touched.
*/
func TestHTTP_Signup_Validation(t *testing.T) {
	router, _, tokenStore := newTestRouter(t)

	recorder := postJSON(router, "/signup", map[string]string{
		"name": "Tai",
		// email and password omitted
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	code, _ := decodeError(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", code)
	assert.Equal(t, 0, tokenStore.count())
}

/*
TestHTTP_Signup_DuplicateEmail verifies the duplicate signup answers 409, not
a success and not a 403.
*/
func TestHTTP_Signup_DuplicateEmail(t *testing.T) {
	router, _, _ := newTestRouter(t)

	first := postJSON(router, "/signup", map[string]string{
		"name": "Tai", "email": "tai@vendora.com", "password": "correct-horse", "role": "USER",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(router, "/signup", map[string]string{
		"name": "Imposter", "email": "tai@vendora.com", "password": "other-password", "role": "USER",
	})
	require.Equal(t, http.StatusConflict, second.Code)

	code, _ := decodeError(t, second)
	assert.Equal(t, "CONFLICT", code)
}

/*
TestHTTP_Login_ReturnsSummaryAndRotates verifies login answers a slim profile
summary and a fresh cookie that differs from the signup credential.
*/
func TestHTTP_Login_ReturnsSummaryAndRotates(t *testing.T) {
	router, _, _ := newTestRouter(t)

	signup := postJSON(router, "/signup", map[string]string{
		"name": "Tai", "email": "tai@vendora.com", "password": "correct-horse", "role": "USER",
	})
	require.Equal(t, http.StatusCreated, signup.Code)
	signupCookie := sessionCookie(t, signup)

	login := postJSON(router, "/login", map[string]string{
		"email": "tai@vendora.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, login.Code)

	data := decodeEnvelope(t, login)
	assert.Equal(t, "Tai", data["name"])
	assert.Equal(t, "tai@vendora.com", data["email"])

	loginCookie := sessionCookie(t, login)
	assert.NotEqual(t, signupCookie.Value, loginCookie.Value)
}

/*
TestHTTP_Login_WrongPassword verifies the 403 contract for a bad password.
*/
func TestHTTP_Login_WrongPassword(t *testing.T) {
	router, _, _ := newTestRouter(t)

	postJSON(router, "/signup", map[string]string{
		"name": "Tai", "email": "tai@vendora.com", "password": "correct-horse", "role": "USER",
	})

	login := postJSON(router, "/login", map[string]string{
		"email": "tai@vendora.com", "password": "wrong-horse",
	})
	require.Equal(t, http.StatusForbidden, login.Code)

	code, _ := decodeError(t, login)
	assert.Equal(t, "FORBIDDEN", code)
}

// # Authentication Gate

/*
TestHTTP_Gate_MissingCookie verifies a protected route without a session
cookie short-circuits at 401.
*/
func TestHTTP_Gate_MissingCookie(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := postJSON(router, "/logout", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	code, _ := decodeError(t, recorder)
	assert.Equal(t, "UNAUTHORIZED", code)
}

/*
TestHTTP_Gate_UnknownToken verifies a token the store has never issued is
rejected with 403 INVALID_TOKEN.
*/
func TestHTTP_Gate_UnknownToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := postJSON(router, "/logout", nil, &http.Cookie{Name: "token", Value: "forged"})
	require.Equal(t, http.StatusForbidden, recorder.Code)

	code, _ := decodeError(t, recorder)
	assert.Equal(t, "INVALID_TOKEN", code)
}

/*
TestHTTP_Gate_ExpiredToken verifies a known-but-stale token is rejected with
403 EXPIRED_TOKEN — a different code than an unknown token.
*/
func TestHTTP_Gate_ExpiredToken(t *testing.T) {
	router, _, tokenStore := newTestRouter(t)

	signup := postJSON(router, "/signup", map[string]string{
		"name": "Tai", "email": "tai@vendora.com", "password": "correct-horse", "role": "USER",
	})
	cookie := sessionCookie(t, signup)

	tokenStore.mu.Lock()
	tokenStore.byToken[cookie.Value].ExpireAt = time.Now().Add(-time.Minute)
	tokenStore.mu.Unlock()

	recorder := postJSON(router, "/logout", nil, cookie)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	code, _ := decodeError(t, recorder)
	assert.Equal(t, "EXPIRED_TOKEN", code)
}

// # Logout & Profile

/*
TestHTTP_Logout_ClearsCookie verifies the 204 contract and the cookie
tear-down instruction.
*/
func TestHTTP_Logout_ClearsCookie(t *testing.T) {
	router, _, tokenStore := newTestRouter(t)

	signup := postJSON(router, "/signup", map[string]string{
		"name": "Tai", "email": "tai@vendora.com", "password": "correct-horse", "role": "USER",
	})
	cookie := sessionCookie(t, signup)

	logout := postJSON(router, "/logout", nil, cookie)
	require.Equal(t, http.StatusNoContent, logout.Code)
	assert.Equal(t, 0, tokenStore.count())

	cleared := sessionCookie(t, logout)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// The retired cookie no longer passes the gate.
	again := postJSON(router, "/logout", nil, cookie)
	require.Equal(t, http.StatusForbidden, again.Code)
}

/*
TestHTTP_Me_ReturnsProfile verifies the authenticated profile read.
*/
func TestHTTP_Me_ReturnsProfile(t *testing.T) {
	router, _, _ := newTestRouter(t)

	signup := postJSON(router, "/signup", map[string]string{
		"name": "Tai", "email": "tai@vendora.com", "password": "correct-horse", "role": "USER",
	})
	cookie := sessionCookie(t, signup)

	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	data := decodeEnvelope(t, recorder)
	assert.Equal(t, "Tai", data["name"])
	assert.Equal(t, "tai@vendora.com", data["email"])
}
