package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/earnings-analyst/internal/analysis"
	appai "github.com/bryanwahyu/earnings-analyst/internal/application/ai"
	"github.com/bryanwahyu/earnings-analyst/internal/application/routing"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings/earningstest"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/metrics"
	"github.com/bryanwahyu/earnings-analyst/internal/middleware"
	"github.com/bryanwahyu/earnings-analyst/internal/resolver"
)

func newServer(t *testing.T, ds *earnings.Dataset, keys map[string]string) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	lib := analysis.NewLibrary()

	svc := &routing.Service{
		Dataset:    ds,
		Classifier: appai.Disabled{},
		Resolver:   resolver.New(lib),
		Library:    lib,
		Observer:   m,
		Logger:     logger,
	}
	srv := httptest.NewServer(NewRouter(Deps{
		Queries:  svc,
		Library:  lib,
		Dataset:  ds,
		Logger:   logger,
		Metrics:  m,
		Gatherer: reg,
		Checks:   map[string]middleware.HealthChecker{"dataset": middleware.DatasetHealthChecker{Rows: ds.Len}},
		APIKeys:  keys,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestQuery_FallsBackWithoutClassifier(t *testing.T) {
	ds := earningstest.Sample(t)
	srv := newServer(t, ds, nil)

	resp := post(t, srv.URL+"/v1/queries", `{"query":"  Доход по регионам "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		ID         string `json:"id"`
		Answer     string `json:"answer"`
		Path       string `json:"path"`
		Command    string `json:"command"`
		Classifier string `json:"classifier"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	want, err := analysis.EarningsByRegion(ds)
	require.NoError(t, err)
	assert.Equal(t, string(want), got.Answer)
	assert.Equal(t, "fallback", got.Path)
	assert.Equal(t, "earnings_by_region", got.Command)
	assert.Equal(t, "failure", got.Classifier)
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)
	assert.Equal(t, got.ID, resp.Header.Get(middleware.RequestIDHeader))
}

func TestQuery_NoRuleMatches(t *testing.T) {
	srv := newServer(t, earningstest.Sample(t), nil)

	resp := post(t, srv.URL+"/v1/queries", `{"query":"какая сегодня погода"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got routing.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, resolver.NotRecognized, got.Text)
	assert.Empty(t, got.Command)
}

func TestQuery_BadRequests(t *testing.T) {
	srv := newServer(t, earningstest.Sample(t), nil)

	for name, body := range map[string]string{
		"not json":    `query=регион`,
		"empty query": `{"query":"   "}`,
		"missing":     `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/queries", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAnalysis(t *testing.T) {
	ds := earningstest.Sample(t)
	srv := newServer(t, ds, nil)

	resp := post(t, srv.URL+"/v1/analyses/project_type_earnings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Command string `json:"command"`
		Answer  string `json:"answer"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	want, err := analysis.ProjectTypeEarnings(ds)
	require.NoError(t, err)
	assert.Equal(t, "project_type_earnings", got.Command)
	assert.Equal(t, string(want), got.Answer)

	resp = post(t, srv.URL+"/v1/analyses/drop_everything", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalysis_SchemaError(t *testing.T) {
	ds := earningstest.Build(t, earningstest.Without(earningstest.SampleRows(), earnings.ColPlatform))
	srv := newServer(t, ds, nil)

	resp := post(t, srv.URL+"/v1/analyses/highest_avg_hourly_by_platform", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Platform")
}

func TestCommands(t *testing.T) {
	srv := newServer(t, earningstest.Sample(t), nil)

	resp, err := http.Get(srv.URL + "/v1/commands")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []struct {
		Command     string `json:"command"`
		Description string `json:"description"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 8)
	assert.Equal(t, "compare_crypto_earnings", got[0].Command)
	assert.Equal(t, "project_type_earnings", got[7].Command)
	for _, c := range got {
		assert.NotEmpty(t, c.Description)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t, earningstest.Sample(t), map[string]string{"ops": "k"})

	for _, path := range []string{"/health", "/ready", "/healthz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp := post(t, srv.URL+"/v1/queries", `{"query":"регион"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/queries", strings.NewReader(`{"query":"регион"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer k")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `earnings_routed_queries_total{command="earnings_by_region",outcome="failure",path="fallback"} 1`)
	assert.Contains(t, string(body), `earnings_http_requests_total{code="200",method="POST",route="/v1/queries"} 1`)
}
