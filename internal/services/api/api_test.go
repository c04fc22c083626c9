package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bulkdate/internal/platform/metrics"
	"bulkdate/internal/platform/net/middleware"
	"bulkdate/internal/platform/store/storetest"
	ptime "bulkdate/internal/platform/time"
	entdomain "bulkdate/internal/services/entities/domain"
	entrepo "bulkdate/internal/services/entities/repo"
	hdomain "bulkdate/internal/services/history/domain"
	"bulkdate/internal/services/wiring"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

type server struct {
	h   http.Handler
	set wiring.Set
}

func newServer(t *testing.T, tokens middleware.Tokens) server {
	t.Helper()
	st := storetest.Open(t)
	h, set := Handler(Options{
		Store:   st,
		Logger:  zerolog.Nop(),
		Metrics: metrics.New(metrics.Config{Enabled: true}),
		Clock:   ptime.Fixed(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)),
		Auth:    tokens,
	})
	require.NoError(t, wiring.Migrate(context.Background(), st, set.SettingsSvc, zerolog.Nop()))

	_, err := entrepo.NewSQL().Bind(st.DB).InsertPost(context.Background(), entdomain.Post{
		Title: "One", Date: "2020-01-01 00:00:00", DateGMT: "2020-01-01 00:00:00",
		Modified: "2020-01-01 00:00:00", ModifiedGMT: "2020-01-01 00:00:00",
	})
	require.NoError(t, err)
	return server{h: h, set: set}
}

func (s server) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestAPI_RunThenListHistory(t *testing.T) {
	s := newServer(t, middleware.Tokens{"secret": 7})

	rec, env := s.do(t, http.MethodPost, "/api/v1/redistribute/posts",
		`{"range":"01/01/24 - 01/31/24","field":"date_both"}`, "secret")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep struct {
		Count   int    `json:"count"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, 1, rep.Count)
	assert.Equal(t, "1 Posts dates successfully updated.", rep.Message)

	rec, env = s.do(t, http.MethodGet, "/api/v1/history?sort_by=new_date&sort_order=asc", "", "secret")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page hdomain.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Rows, 2)
	assert.Equal(t, int64(7), page.Rows[0].ModifiedBy)
}

func TestAPI_AuthRejectsUnknownToken(t *testing.T) {
	s := newServer(t, middleware.Tokens{"secret": 7})

	rec, _ := s.do(t, http.MethodGet, "/api/v1/settings", "", "nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/settings", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// meta stays public
	rec, _ = s.do(t, http.MethodGet, "/api/v1/meta/site", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_AnonymousWithoutTokens(t *testing.T) {
	s := newServer(t, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/settings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"history_retention_days":30`)
}

func TestAPI_DisabledTabForbidden(t *testing.T) {
	s := newServer(t, nil)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/settings/tabs", `{"tab":"posts","enabled":false}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPost, "/api/v1/redistribute/posts", `{}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestAPI_BadInput(t *testing.T) {
	s := newServer(t, nil)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/redistribute/posts", `{"field":"post_title"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPut, "/api/v1/settings", `{"history_retention_days":45}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPost, "/api/v1/history/999/restore", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestAPI_PresetsMetaAndMetrics(t *testing.T) {
	s := newServer(t, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/redistribute/presets", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"default_range":"06/28/24 - 07/01/24"`)

	rec, env = s.do(t, http.MethodGet, "/api/v1/meta/site", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"local":"2024-07-01 12:00:00"`)

	rec, _ = s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bulkdate_")
}

func TestAPI_SwaggerDocListsMountedRoutes(t *testing.T) {
	h, _ := Handler(Options{
		Store:         storetest.Open(t),
		Logger:        zerolog.Nop(),
		Metrics:       metrics.New(metrics.Config{}),
		EnableSwagger: true,
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]struct {
			Security []map[string]any `json:"security"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), rec.Body.String())
	require.Contains(t, doc.Paths, "/redistribute/{tab}")
	assert.Len(t, doc.Paths["/redistribute/{tab}"]["post"].Security, 1)
	require.Contains(t, doc.Paths, "/meta/version")
	assert.Empty(t, doc.Paths["/meta/version"]["get"].Security)
}
