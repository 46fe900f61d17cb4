package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"commander/internal/app"
	"commander/internal/inventory"
	"commander/internal/jamf"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, client *jamf.StaticClient) *gin.Engine {
	t.Helper()
	store, err := inventory.NewStore(t.TempDir())
	require.NoError(t, err)
	svc, err := app.NewService(app.Config{}, client, store, nil)
	require.NoError(t, err)
	svc.WithSleep(func(ctx context.Context, _ time.Duration) error { return ctx.Err() })
	return NewEngine(NewConsoleHandler(svc, nil), NewRecordHandler(svc, nil), prometheus.NewRegistry())
}

func do(t *testing.T, engine *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(out))
}

func TestImportMatchSelectDeploy(t *testing.T) {
	client := &jamf.StaticClient{}
	engine := newTestEngine(t, client)

	w := do(t, engine, http.MethodPost, "/api/v1/matching/run", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/inventory/labels", "text/plain", "firefox\nzoom\n")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, engine, http.MethodPost, "/api/v1/inventory/mac", "application/json",
		`{"content":"Name,Platform\nFirefox,macOS\nZoom,macOS\n"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var imported app.ImportResult
	decode(t, w, &imported)
	assert.True(t, imported.Ready)
	assert.Equal(t, 2, imported.MacApps)

	w = do(t, engine, http.MethodPost, "/api/v1/matching/run", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/selection/toggle", "application/json", `{"id":"MATCH_firefox"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, engine, http.MethodPost, "/api/v1/selection/toggle", "application/json", `{"id":"MATCH_zoom","extend":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var view app.View
	decode(t, w, &view)
	assert.Equal(t, 2, view.SelectedCount)

	w = do(t, engine, http.MethodPost, "/api/v1/deployments", "application/json", `{"category":"Apps"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/deployments", "application/json", `{"category":"Apps","script_id":"3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status       string `json:"status"`
		SuccessCount int    `json:"success_count"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Completed: 2 created", resp.Status)
	assert.Len(t, client.Created, 2)
}

func TestToggleUnknownItem(t *testing.T) {
	engine := newTestEngine(t, &jamf.StaticClient{})
	w := do(t, engine, http.MethodPost, "/api/v1/selection/toggle", "application/json", `{"id":"MATCH_none"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportUnknownSource(t *testing.T) {
	engine := newTestEngine(t, &jamf.StaticClient{})
	w := do(t, engine, http.MethodPost, "/api/v1/inventory/linux", "text/plain", "x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewModeSwitch(t *testing.T) {
	engine := newTestEngine(t, &jamf.StaticClient{})
	w := do(t, engine, http.MethodPut, "/api/v1/view/mode", "application/json", `{"mode":"all"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var view app.View
	decode(t, w, &view)
	assert.Equal(t, "all", string(view.Mode))

	w = do(t, engine, http.MethodPut, "/api/v1/view/mode", "application/json", `{"mode":"grid"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveRecordsEndpoint(t *testing.T) {
	client := &jamf.StaticClient{
		Categories: []jamf.Category{{ID: 1, Name: "Apps"}},
		Profiles:   []jamf.Profile{{ID: 5, Name: "VPN"}},
	}
	engine := newTestEngine(t, client)

	w := do(t, engine, http.MethodPost, "/api/v1/records/profiles/move", "application/json", `{"ids":[5],"category_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Apps", client.Profiles[0].CategoryName)

	w = do(t, engine, http.MethodPost, "/api/v1/records/scripts/move", "application/json", `{"ids":[5],"category_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/records/policy/delete", "application/json", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCRUD(t *testing.T) {
	client := &jamf.StaticClient{}
	engine := newTestEngine(t, client)

	w := do(t, engine, http.MethodPost, "/api/v1/categories", "application/json", `{"name":"Utilities"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var cat jamf.Category
	decode(t, w, &cat)

	w = do(t, engine, http.MethodPut, "/api/v1/categories/"+strconv.Itoa(cat.ID), "application/json", `{"name":"Tools"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Tools", client.Categories[0].Name)

	w = do(t, engine, http.MethodDelete, "/api/v1/categories/"+strconv.Itoa(cat.ID), "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, engine, http.MethodDelete, "/api/v1/categories/"+strconv.Itoa(cat.ID), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardAndMetrics(t *testing.T) {
	engine := newTestEngine(t, &jamf.StaticClient{Computers: []jamf.ComputerSummary{{ID: 1, Name: "m"}}})
	w := do(t, engine, http.MethodGet, "/api/v1/dashboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Counts app.Dashboard `json:"counts"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Counts.Computers)

	w = do(t, engine, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

