package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prathamdarmwal/ragscope/internal/cache"
	"github.com/prathamdarmwal/ragscope/internal/config"
	"github.com/prathamdarmwal/ragscope/internal/dataset"
	"github.com/prathamdarmwal/ragscope/internal/harness"
	"github.com/prathamdarmwal/ragscope/internal/store"
	"github.com/prathamdarmwal/ragscope/internal/strategy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStrategy struct {
	name  string
	calls int
	err   error
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Run(context.Context, string) (*strategy.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &strategy.Result{Generation: s.name + "-answer"}, nil
}

func testResources(stubs ...*stubStrategy) *cache.Resources {
	return cache.NewWithBuilders(
		func(context.Context) (*dataset.Dataset, error) {
			return dataset.New([]dataset.Row{
				{Question: "What is gradient descent?"},
				{Question: "What is overfitting?"},
			}), nil
		},
		func(context.Context) (*strategy.Registry, error) {
			reg := strategy.NewRegistry()
			for _, s := range stubs {
				reg.Register(s)
			}
			return reg, nil
		},
	)
}

func testServer(t *testing.T, stubs ...*stubStrategy) *Server {
	t.Helper()
	t.Setenv("RAGSCOPE_DISABLE_AUTH", "true")

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{} // zero pause keeps tests fast
	srv, err := NewServer(cfg, testResources(stubs...), st)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)

	w := doRequest(srv, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: status %d", w.Code)
	}
}

func TestHandleListStrategies(t *testing.T) {
	srv := testServer(t,
		&stubStrategy{name: "BasicRAG"},
		&stubStrategy{name: "CRAG"},
		&stubStrategy{name: "AdaptiveRAG"},
		&stubStrategy{name: "SelfRAG"},
	)

	w := doRequest(srv, http.MethodGet, "/api/strategies", "")
	if w.Code != http.StatusOK {
		t.Fatalf("strategies: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Strategies []string `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"BasicRAG", "CRAG", "AdaptiveRAG", "SelfRAG"}
	if len(resp.Strategies) != len(want) {
		t.Fatalf("strategies: got %v", resp.Strategies)
	}
	for i := range want {
		if resp.Strategies[i] != want[i] {
			t.Fatalf("strategies[%d]: got %q want %q", i, resp.Strategies[i], want[i])
		}
	}
}

func TestHandleSampleAndDataset(t *testing.T) {
	srv := testServer(t)

	w := doRequest(srv, http.MethodGet, "/api/dataset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dataset: status %d", w.Code)
	}
	var info struct {
		TotalSamples int `json:"total_samples"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.TotalSamples != 2 {
		t.Fatalf("total_samples: got %d", info.TotalSamples)
	}

	w = doRequest(srv, http.MethodGet, "/api/sample", "")
	if w.Code != http.StatusOK {
		t.Fatalf("sample: status %d", w.Code)
	}
	var sample struct {
		Question string `json:"question"`
		Index    int    `json:"index"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sample); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sample.Index < 0 || sample.Index > 1 || sample.Question == "" {
		t.Fatalf("sample: got %+v", sample)
	}
}

func TestHandleCompare_Success(t *testing.T) {
	a := &stubStrategy{name: "BasicRAG"}
	b := &stubStrategy{name: "CRAG"}
	srv := testServer(t, a, b)

	w := doRequest(srv, http.MethodPost, "/api/compare", `{"query": "What is gradient descent?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("compare: status %d body %s", w.Code, w.Body.String())
	}

	var record harness.ExportRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record.Query != "What is gradient descent?" {
		t.Fatalf("query: got %q", record.Query)
	}
	if gen, _ := record.Results.Generation("BasicRAG"); gen != "BasicRAG-answer" {
		t.Fatalf("results[BasicRAG]: got %q", gen)
	}
	if _, err := time.Parse(harness.TimestampLayout, record.Timestamp); err != nil {
		t.Fatalf("timestamp %q: %v", record.Timestamp, err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("strategy calls: a=%d b=%d", a.calls, b.calls)
	}

	// The comparison lands in history.
	w = doRequest(srv, http.MethodGet, "/api/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d", w.Code)
	}
	var hist struct {
		Comparisons []struct {
			Query string `json:"query"`
		} `json:"comparisons"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(hist.Comparisons) != 1 || hist.Comparisons[0].Query != "What is gradient descent?" {
		t.Fatalf("history: got %+v", hist.Comparisons)
	}
}

func TestHandleCompare_InvalidQuery(t *testing.T) {
	a := &stubStrategy{name: "BasicRAG"}
	srv := testServer(t, a)

	for _, body := range []string{`{"query": ""}`, `{"query": "   "}`} {
		w := doRequest(srv, http.MethodPost, "/api/compare", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("compare(%s): status %d", body, w.Code)
		}
	}
	if a.calls != 0 {
		t.Fatalf("strategy invoked on invalid queries: %d", a.calls)
	}
}

func TestHandleCompare_FailureKeepsLastRecord(t *testing.T) {
	good := &stubStrategy{name: "BasicRAG"}
	srv := testServer(t, good)

	// First comparison succeeds and becomes the exportable record.
	w := doRequest(srv, http.MethodPost, "/api/compare", `{"query": "first"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("compare: status %d", w.Code)
	}

	// Subsequent dispatches fail.
	good.err = errors.New("model unavailable")
	w = doRequest(srv, http.MethodPost, "/api/compare", `{"query": "second"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("failed compare: status %d", w.Code)
	}

	// Export still serves the earlier successful dispatch, not the failure.
	w = doRequest(srv, http.MethodGet, "/api/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "rag_comparison_") {
		t.Fatalf("Content-Disposition: got %q", cd)
	}
	var record harness.ExportRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if record.Query != "first" {
		t.Fatalf("export query: got %q want %q", record.Query, "first")
	}
}

func TestHandleExport_NoRecord(t *testing.T) {
	srv := testServer(t, &stubStrategy{name: "BasicRAG"})

	w := doRequest(srv, http.MethodGet, "/api/export", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("export: status %d", w.Code)
	}
}

func TestHandleHistory_BadLimit(t *testing.T) {
	srv := testServer(t)

	w := doRequest(srv, http.MethodGet, "/api/history?limit=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("history: status %d", w.Code)
	}
}

func TestAuth(t *testing.T) {
	t.Setenv("RAGSCOPE_DISABLE_AUTH", "")
	t.Setenv("RAGSCOPE_API_KEY", "")

	// No auth configuration refuses to start.
	if _, err := NewServer(&config.Config{}, testResources(), nil); err == nil {
		t.Fatalf("NewServer: expected missing-auth error")
	}

	t.Setenv("RAGSCOPE_API_KEY", "sekrit")
	srv, err := NewServer(&config.Config{}, testResources(), nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	w := doRequest(srv, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: status %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-API-Key", "sekrit")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated: status %d", rec.Code)
	}
}
