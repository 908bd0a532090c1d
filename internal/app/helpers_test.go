package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidar/task-management/internal/config"
)

// testConfig возвращает конфигурацию приложения для тестов
func testConfig(driver string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Storage: config.StorageConfig{Driver: driver},
		JWT: config.JWTConfig{
			Secret:          "test-jwt-secret-key-for-integration-tests",
			ExpirationHours: 24,
		},
		Log:    config.LogConfig{Level: "error", Format: "json"},
		Search: config.SearchConfig{DefaultPageSize: 10, MaxPageSize: 100},
	}
}

// client выполняет запросы к корневому обработчику приложения
type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) request(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), rec.Body.String())
}

// newApp создаёт и инициализирует приложение
func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	application, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, application.Initialize(context.Background()))
	return application
}
