package beams

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.SecretKey = "s3cret"
	cfg.BaseURL = baseURL
	return cfg
}

func TestPublish(t *testing.T) {
	t.Run("Sends payload with bearer token", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotBody map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &gotBody)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"publishId":"pubid-123"}`))
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		assert.NoError(t, err)

		resp, err := client.Publish(context.Background(), DefaultPayload())
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pubid-123", resp.PublishID())

		assert.Equal(t, "/publish_api/v1/instances/"+DefaultInstanceID+"/publishes/interests", gotPath)
		assert.Equal(t, "Bearer s3cret", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal[any](t, []any{"user_123"}, gotBody["interests"])

		fcm := gotBody["fcm"].(map[string]any)
		data := fcm["data"].(map[string]any)
		assert.Equal(t, "test", data["type"])
		assert.Equal[any](t, float64(999), data["request_id"])
	})

	t.Run("Non-2xx returns response and StatusError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized","description":"Incorrect API Key"}`))
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		assert.NoError(t, err)

		resp, err := client.Publish(context.Background(), DefaultPayload())
		var statusErr *StatusError
		assert.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.NotZero(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, resp.Pretty(), `"description": "Incorrect API Key"`)
	})

	t.Run("Invalid payload is rejected before sending", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client, err := NewClient(testConfig(server.URL))
		assert.NoError(t, err)

		_, err = client.Publish(context.Background(), Payload{FCM: &FCM{}})
		assert.EqualError(t, err, "payload must target at least one interest")
		assert.False(t, called)
	})

	t.Run("Transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client, err := NewClient(testConfig(url))
		assert.NoError(t, err)

		resp, err := client.Publish(context.Background(), DefaultPayload())
		assert.Error(t, err)
		assert.Zero(t, resp)
	})

	t.Run("Timeout applies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.Timeout = 20 * time.Millisecond
		client, err := NewClient(cfg)
		assert.NoError(t, err)

		_, err = client.Publish(context.Background(), DefaultPayload())
		assert.Error(t, err)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("Missing secret", func(t *testing.T) {
		client, err := NewClient(DefaultConfig())
		assert.IsError(t, err, ErrMissingSecret)
		assert.Zero(t, client)
	})

	t.Run("Custom HTTP client is used", func(t *testing.T) {
		hc := &http.Client{}
		client, err := NewClientWithHTTPClient(testConfig(""), hc)
		assert.NoError(t, err)
		assert.True(t, client.httpClient == hc)
	})
}

func TestResponsePretty(t *testing.T) {
	t.Run("JSON is indented", func(t *testing.T) {
		resp := &Response{Body: []byte(`{"publishId":"abc"}`)}
		assert.Equal(t, "{\n  \"publishId\": \"abc\"\n}", resp.Pretty())
	})

	t.Run("Text is returned as-is", func(t *testing.T) {
		resp := &Response{Body: []byte("Bad Gateway")}
		assert.Equal(t, "Bad Gateway", resp.Pretty())
		assert.Equal(t, "", resp.PublishID())
	})
}
