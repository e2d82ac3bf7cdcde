package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "smartpay/internal/db"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dbService, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbService.Close() })

	server := newServer(dbService)
	ts := httptest.NewServer(server.router)
	t.Cleanup(ts.Close)
	return ts
}

func registerUser(t *testing.T, ts *httptest.Server, email, password string) map[string]interface{} {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":     email,
		"full_name": "Jan Kowalski",
		"password":  password,
	})
	res, err := http.Post(ts.URL+"/api/v1/users/", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	return created
}

func login(t *testing.T, ts *httptest.Server, email, password string) (string, int) {
	t.Helper()
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	res, err := http.Post(ts.URL+"/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return "", res.StatusCode
	}

	var token map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&token))
	assert.Equal(t, "bearer", token["token_type"])
	return token["access_token"], res.StatusCode
}

func doAuthorized(t *testing.T, ts *httptest.Server, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestRegisterAndLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	created := registerUser(t, ts, "jan@example.com", "s3cret-password")
	assert.Equal(t, "jan@example.com", created["email"])
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "password_hash")
	assert.Equal(t, []interface{}{}, created["transactions"])
	assert.Equal(t, []interface{}{}, created["budgets"])

	token, status := login(t, ts, "jan@example.com", "s3cret-password")
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, token)

	_, status = login(t, ts, "jan@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, status)

	res := doAuthorized(t, ts, http.MethodGet, "/api/v1/users/me", token, nil)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var me map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&me))
	assert.Equal(t, "jan@example.com", me["email"])
	assert.Equal(t, "Jan Kowalski", me["full_name"])
}

func TestGetUserByID(t *testing.T) {
	ts := newTestServer(t)
	created := registerUser(t, ts, "jan@example.com", "s3cret-password")

	res, err := http.Get(ts.URL + "/api/v1/users/1")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var fetched map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&fetched))
	assert.Equal(t, created["email"], fetched["email"])

	missingRes, err := http.Get(ts.URL + "/api/v1/users/999")
	require.NoError(t, err)
	missingRes.Body.Close()
	assert.Equal(t, http.StatusNotFound, missingRes.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "jan@example.com", "s3cret-password")

	body, _ := json.Marshal(map[string]string{
		"email":    "jan@example.com",
		"password": "another-password",
	})
	res, err := http.Post(ts.URL+"/api/v1/users/", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRegister_OverlongPassword(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "jan@example.com",
		"password": strings.Repeat("p", 73),
	})
	res, err := http.Post(ts.URL+"/api/v1/users/", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/users/me", "/api/v1/transactions/", "/api/v1/budgets/"} {
		res := doAuthorized(t, ts, http.MethodGet, path, "", nil)
		res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, path)
		assert.Equal(t, "Bearer", res.Header.Get("WWW-Authenticate"), path)
	}
}

func TestTransactionFlow(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "jan@example.com", "s3cret-password")
	token, _ := login(t, ts, "jan@example.com", "s3cret-password")

	res := doAuthorized(t, ts, http.MethodPost, "/api/v1/transactions/", token, map[string]interface{}{
		"amount":      99.99,
		"category":    "Shopping",
		"description": "New headphones",
	})
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, 99.99, created["amount"])
	assert.NotZero(t, created["id"])

	listRes := doAuthorized(t, ts, http.MethodGet, "/api/v1/transactions/", token, nil)
	defer listRes.Body.Close()
	require.Equal(t, http.StatusOK, listRes.StatusCode)

	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Shopping", listed[0]["category"])
}

func TestBudgetStatusFlow(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "jan@example.com", "s3cret-password")
	token, _ := login(t, ts, "jan@example.com", "s3cret-password")

	period := time.Now().UTC().Format("2006-01")

	res := doAuthorized(t, ts, http.MethodPost, "/api/v1/budgets/", token, map[string]interface{}{
		"category": "Food",
		"limit":    500.0,
		"period":   period,
	})
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	for _, amount := range []float64{100.0, 20.004} {
		res := doAuthorized(t, ts, http.MethodPost, "/api/v1/transactions/", token, map[string]interface{}{
			"amount":   amount,
			"category": "Food",
		})
		res.Body.Close()
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}

	statusRes := doAuthorized(t, ts, http.MethodGet, "/api/v1/budgets/status/Food/"+period, token, nil)
	defer statusRes.Body.Close()
	require.Equal(t, http.StatusOK, statusRes.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(statusRes.Body).Decode(&status))
	assert.Equal(t, 120.0, status["spent"])
	assert.Equal(t, 380.0, status["remaining"])

	notFoundRes := doAuthorized(t, ts, http.MethodGet, "/api/v1/budgets/status/Travel/"+period, token, nil)
	notFoundRes.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFoundRes.StatusCode)

	badPeriodRes := doAuthorized(t, ts, http.MethodGet, "/api/v1/budgets/status/Food/2025-13", token, nil)
	badPeriodRes.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, badPeriodRes.StatusCode)
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	healthRes, err := http.Get(ts.URL + "/api/v1/health")
	require.NoError(t, err)
	defer healthRes.Body.Close()
	assert.Equal(t, http.StatusOK, healthRes.StatusCode)

	var health map[string]string
	require.NoError(t, json.NewDecoder(healthRes.Body).Decode(&health))
	assert.Equal(t, "up", health["status"])
}

func TestUnknownPath(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
