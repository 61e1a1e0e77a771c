package main

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokensEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	} `json:"data"`
}

func doRequest(t *testing.T, handler http.Handler, method, target, authHeader string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, body)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeTokens(t *testing.T, recorder *httptest.ResponseRecorder) tokensEnvelope {
	t.Helper()
	var envelope tokensEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.Tokens.AccessToken)
	require.NotEmpty(t, envelope.Data.Tokens.RefreshToken)
	return envelope
}

// TestAccountRoutes walks the full signup -> login -> refresh flow through
// the router, so the account endpoints are exercised with every mounted
// middleware in front of them.
func TestAccountRoutes(t *testing.T) {
	app := NewTestApplication(t)
	handler := app.routes()
	basic := "Basic " + base64.StdEncoding.EncodeToString([]byte("frodo@shire.me:precious"))

	recorder := doRequest(t, handler, http.MethodPost, "/api/v1/accounts/signup", basic, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/accounts/login", basic, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	tokens := decodeTokens(t, recorder)

	t.Run("refresh token yields a fresh pair", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPost, "/api/v1/accounts/token/refresh",
			"Bearer "+tokens.Data.Tokens.RefreshToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		decodeTokens(t, recorder)
	})
	t.Run("access token is rejected on refresh", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPost, "/api/v1/accounts/token/refresh",
			"Bearer "+tokens.Data.Tokens.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("duplicate signup conflicts", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPost, "/api/v1/accounts/signup", basic, nil)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
	t.Run("login with wrong password", func(t *testing.T) {
		wrong := "Basic " + base64.StdEncoding.EncodeToString([]byte("frodo@shire.me:guess"))
		recorder := doRequest(t, handler, http.MethodPost, "/api/v1/accounts/login", wrong, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestGetMoviesFilterLength(t *testing.T) {
	app := NewTestApplication(t)
	handler := app.routes()

	recorder := doRequest(t, handler, http.MethodGet, "/api/v1/movies?name=ab", "", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "at least 3 characters")
}

func TestUpdateMovieValidation(t *testing.T) {
	app := NewTestApplication(t)
	handler := app.routes()
	tokens, err := app.services.Auth.IssueTokenPair(1, "user")
	require.NoError(t, err)
	bearer := "Bearer " + tokens.AccessToken

	t.Run("empty genres array rejected", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPatch, "/api/v1/movies/1", bearer,
			strings.NewReader(`{"genres": []}`))
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
	t.Run("empty characters array rejected", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPatch, "/api/v1/movies/1", bearer,
			strings.NewReader(`{"characters": []}`))
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
	t.Run("unauthenticated", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPatch, "/api/v1/movies/1", "",
			strings.NewReader(`{"name": "x"}`))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
