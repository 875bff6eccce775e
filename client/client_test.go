package client

import (
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"ripple/dto"
	"testing"
)

func TestClient_SendsIdentityAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "v", r.Header.Get("X-Viewer-Id"))
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/timeline":
			assert.Equal(t, "Asia/Tokyo", r.URL.Query().Get("tz"))
			_ = json.NewEncoder(w).Encode(dto.TimelineResp{Items: []dto.TimelineItem{{Id: "d1", Body: "hi"}}})
		case r.Method == "POST" && r.URL.Path == "/api/drops/d1/ripples":
			var req dto.CreateRippleReq
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(dto.RippleView{Id: "r1", DropId: "d1", Body: req.Body})
		case r.Method == "DELETE" && r.URL.Path == "/api/ripples/r1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(Config{ServerUrl: srv.URL, ApiKey: "k", ViewerId: "v", TimeZone: "Asia/Tokyo"})
	tl, err := c.Timeline(t.Context())
	require.NoError(t, err)
	require.Len(t, tl.Items, 1)
	assert.Equal(t, "d1", tl.Items[0].Id)

	ripple, err := c.CreateRipple(t.Context(), "d1", "thanks")
	require.NoError(t, err)
	assert.Equal(t, "r1", ripple.Id)
	assert.Equal(t, "thanks", ripple.Body)

	assert.NoError(t, c.DeleteRipple(t.Context(), "r1"))
}

func TestClient_ApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(dto.ErrorResp{Error: "You already dropped", Status: 409, Period: "PM"})
	}))
	defer srv.Close()

	c := New(Config{ServerUrl: srv.URL, ApiKey: "k", ViewerId: "v"})
	_, err := c.CreateDrop(t.Context(), "again")
	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "You already dropped", apiErr.Error())
	assert.Equal(t, "PM", apiErr.Period)
}

func TestClient_ApiErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{ServerUrl: srv.URL, ApiKey: "k", ViewerId: "v"})
	err := c.DeleteDrop(t.Context(), "d1")
	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "DELETE /api/drops/d1 returned 502", apiErr.Message)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_url: https://ripple.example/\napi_key: abc\nviewer_id: v1\ntime_zone: Europe/Berlin\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://ripple.example", cfg.ServerUrl)
	assert.Equal(t, "abc", cfg.ApiKey)
	assert.Equal(t, "v1", cfg.ViewerId)
	assert.Equal(t, "Europe/Berlin", cfg.TimeZone)
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg = Config{ServerUrl: "ftp://x", ApiKey: "k", ViewerId: "v"}
	assert.Error(t, cfg.Validate())
}
