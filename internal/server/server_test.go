package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/quickpoll/internal/config"
	"github.com/sakif/quickpoll/internal/middleware"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	srv, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, config.Config{Store: config.StoreMemory})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok","store":"memory"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestRoutes_EndToEnd(t *testing.T) {
	for _, store := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			ts := newTestServer(t, config.Config{
				Store:  store,
				DBPath: filepath.Join(t.TempDir(), "data", "polls.db"),
			})

			assert.Equal(t, http.StatusOK, post(t, ts.URL+"/api/users/login", `{"username":"alice"}`).StatusCode)
			assert.Equal(t, http.StatusCreated,
				post(t, ts.URL+"/api/polls", `{"title":"Lunch","options":["Pizza","Salad"],"createdByUserId":1}`).StatusCode)
			assert.Equal(t, http.StatusCreated,
				post(t, ts.URL+"/api/polls/1/votes", `{"userId":1,"optionIndex":1}`).StatusCode)
			assert.Equal(t, http.StatusConflict,
				post(t, ts.URL+"/api/polls/1/votes", `{"userId":1,"optionIndex":0}`).StatusCode)

			resp, err := http.Get(ts.URL + "/api/polls/1/results")
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, `{"pollId":1,"counts":[0,1],"total":1}`, string(body))
		})
	}
}

func TestOpenStore_Unknown(t *testing.T) {
	_, err := New(context.Background(), config.Config{Store: "redis"}, quietLogger())
	assert.Error(t, err)
}
