package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/config"
	"github.com/leapstack-labs/itemdex/internal/service"
	"github.com/leapstack-labs/itemdex/internal/testutil"
	"github.com/leapstack-labs/itemdex/internal/view"
)

func newTestServer(t *testing.T) (*Server, *service.Service) {
	t.Helper()

	cfg := &config.Config{
		Addr:           ":0",
		PageSize:       2,
		MatchLimit:     config.DefaultMatchLimit,
		UploadFilename: config.DefaultUploadFilename,
		UploadMaxBytes: 1 << 20,
		LogLevel:       "debug",
		LogFormat:      "text",
	}
	logger := testutil.NewTestLogger(t)
	svc := service.New(catalog.NewStore(), service.Options{
		MatchLimit: cfg.MatchLimit,
		PageSize:   cfg.PageSize,
		Logger:     logger,
	})
	return New(svc, cfg, logger), svc
}

func itemFile(names ...string) string {
	var sb strings.Builder
	for i, n := range names {
		fmt.Fprintf(&sb, "add_item\\%d\\a\\b\\c\\d\\%s\n", i+1, n)
	}
	return sb.String()
}

func doRequest(t *testing.T, srv *Server, method, path string, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func uploadItems(t *testing.T, srv *Server, tenant string, names ...string) {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost,
		"/v1/tenants/"+tenant+"/catalog?filename=items.txt", itemFile(names...), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpload_OK(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost,
		"/v1/tenants/guild-1/catalog?filename=Items.TXT",
		itemFile("Oak Log", "Stone", "Dirt", "Sand", "Clay"), nil)

	require.Equal(t, http.StatusOK, rec.Code, "filename check is case-insensitive")

	var res service.ReplaceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 5, res.Accepted)
	assert.NotEmpty(t, res.IngestionID)
}

func TestUpload_RejectsWrongFilename(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost,
		"/v1/tenants/guild-1/catalog?filename=loot.txt",
		itemFile("Oak Log", "Stone", "Dirt", "Sand", "Clay"), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_RejectsOversizedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.cfg.UploadMaxBytes = 64

	body := itemFile("Oak Log", "Stone", "Dirt", "Sand", "Clay")
	require.Greater(t, len(body), 64)

	rec := doRequest(t, srv, http.MethodPost,
		"/v1/tenants/guild-1/catalog?filename=items.txt", body, nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUpload_UnprocessableContent(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost,
		"/v1/tenants/guild-1/catalog?filename=items.txt", "not an item file", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearch_OK(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Oak Planks", "Oak Door", "Stone", "Dirt")

	rec := doRequest(t, srv, http.MethodGet,
		"/v1/tenants/guild-1/search?q=oak&page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page view.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Controls, 5)
}

func TestSearch_BadCategory(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Stone", "Dirt", "Sand", "Clay")

	rec := doRequest(t, srv, http.MethodGet,
		"/v1/tenants/guild-1/search?q=oak&category=weapons", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_NoCatalog(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/v1/tenants/guild-404/search?q=oak", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestControl_Activation(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Oak Planks", "Oak Door", "Oak Fence", "Oak Gate")

	rec := doRequest(t, srv, http.MethodGet, "/v1/tenants/guild-1/search?q=oak", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page view.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))

	var controlID, indicator string
	for _, c := range page.Controls {
		switch c.Action {
		case view.ActionNext:
			controlID = c.ID
		case view.ActionIndicator:
			indicator = c.Label
		}
	}

	body, _ := json.Marshal(map[string]string{
		"tenant_id":  "guild-1",
		"control_id": controlID,
		"indicator":  indicator,
	})
	rec = doRequest(t, srv, http.MethodPost, "/v1/controls", string(body), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var next view.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	assert.Equal(t, 2, next.Page)
}

func TestControl_NoOpReturnsNoContent(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Oak Planks", "Oak Door", "Oak Fence", "Oak Gate")

	body, _ := json.Marshal(map[string]string{
		"tenant_id":  "guild-1",
		"control_id": view.EncodeControlID(view.ActionPrev, view.Context{Query: "oak", Category: catalog.CategoryAll}),
		"indicator":  "1/3",
	})
	rec := doRequest(t, srv, http.MethodPost, "/v1/controls", string(body), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestControl_MalformedState(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Stone", "Dirt", "Sand", "Clay")

	body, _ := json.Marshal(map[string]string{
		"tenant_id":  "guild-1",
		"control_id": "garbage",
		"indicator":  "1/2",
	})
	rec := doRequest(t, srv, http.MethodPost, "/v1/controls", string(body), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInfoAndLookup(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Wheat Seeds", "Stone", "Dirt", "Sand")

	rec := doRequest(t, srv, http.MethodGet, "/v1/tenants/guild-1/info", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 1, sum.Seeds)

	rec = doRequest(t, srv, http.MethodGet, "/v1/tenants/guild-1/items/2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var item service.ItemInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Wheat Seeds", item.Name)
	assert.Equal(t, "seed", item.Kind)

	rec = doRequest(t, srv, http.MethodGet, "/v1/tenants/guild-1/items/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/v1/tenants/guild-1/items/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete_Permissions(t *testing.T) {
	srv, _ := newTestServer(t)
	uploadItems(t, srv, "guild-1", "Oak Log", "Stone", "Dirt", "Sand", "Clay")

	rec := doRequest(t, srv, http.MethodDelete, "/v1/tenants/guild-1/catalog", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := http.Header{adminHeader: []string{"true"}}
	rec = doRequest(t, srv, http.MethodDelete, "/v1/tenants/guild-1/catalog", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/v1/tenants/guild-1/catalog", "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
