package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/nosbielc/blog-globals/internal/globaldata"
)

type controllableClock struct {
	mu  sync.RWMutex
	now time.Time
}

func newControllableClock(initial time.Time) *controllableClock {
	return &controllableClock{now: initial}
}

func (c *controllableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func setupTestRouter(t *testing.T, variant globaldata.Variant, values map[string]string) (http.Handler, *controllableClock) {
	t.Helper()

	clock := newControllableClock(time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC))
	logger := zaptest.NewLogger(t)

	handler := NewHandler(variant, globaldata.MapLookup(values), WithClock(clock.Now), WithLogger(logger))
	router := NewRouter(handler, logger, WithLogging(false))

	return router, clock
}

func getGlobalData(t *testing.T, router http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/global-data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := contextWithRequestID(context.Background(), "abc")
	if got := requestIDFromContext(ctx); got != "abc" {
		t.Fatalf("expected abc, got %s", got)
	}
	if got := requestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request ID, got %s", got)
	}
	resp := httptest.NewRecorder()
	writeInternalError(resp, assertError("boom"))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 status, got %d", resp.Code)
	}
}

type assertError string

func (a assertError) Error() string { return string(a) }

func TestHealthEndpoint(t *testing.T) {
	router, clock := setupTestRouter(t, globaldata.Classic, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Status != "ok" {
		t.Fatalf("expected status ok, got %s", body.Status)
	}
	if !body.Timestamp.Equal(clock.Now()) {
		t.Fatalf("expected timestamp %s, got %s", clock.Now(), body.Timestamp)
	}
}

func TestGlobalDataReturnsDefaults(t *testing.T) {
	router, _ := setupTestRouter(t, globaldata.Classic, nil)

	rec := getGlobalData(t, router)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected Cache-Control no-store, got %q", got)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := map[string]string{
		"name":       "Cleibson Gomes",
		"blogTitle":  "Code And Coffee",
		"footerText": "Made with ❤️ in Quebec, CA.",
	}
	if len(body) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, body)
	}
	for k, v := range want {
		if body[k] != v {
			t.Fatalf("expected %s=%q, got %q", k, v, body[k])
		}
	}
}

func TestGlobalDataDecodesValues(t *testing.T) {
	router, _ := setupTestRouter(t, globaldata.Contact, map[string]string{
		globaldata.KeyName:         "Jane%20Doe",
		globaldata.KeyEmailContact: "a%40b.com",
	})

	rec := getGlobalData(t, router)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body globaldata.GlobalData
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Name != "Jane Doe" {
		t.Fatalf("expected decoded name, got %q", body.Name)
	}
	if body.EmailContact != "a@b.com" {
		t.Fatalf("expected decoded email, got %q", body.EmailContact)
	}
	if body.BlogTitle != globaldata.DefaultBlogTitlePT {
		t.Fatalf("expected contact title default, got %q", body.BlogTitle)
	}
}

func TestGlobalDataReadsLookupPerRequest(t *testing.T) {
	var mu sync.Mutex
	name := "First"
	lookup := func(key string) (string, bool) {
		mu.Lock()
		defer mu.Unlock()
		if key == globaldata.KeyName {
			return name, true
		}
		return "", false
	}

	handler := NewHandler(globaldata.Classic, lookup)
	router := NewRouter(handler, zaptest.NewLogger(t), WithLogging(false), WithRateLimit(0, 0))

	first := getGlobalData(t, router)
	mu.Lock()
	name = "Second"
	mu.Unlock()
	second := getGlobalData(t, router)

	var a, b globaldata.GlobalData
	if err := json.NewDecoder(first.Body).Decode(&a); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if err := json.NewDecoder(second.Body).Decode(&b); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if a.Name != "First" || b.Name != "Second" {
		t.Fatalf("expected fresh record per request, got %q then %q", a.Name, b.Name)
	}
}

func TestGlobalDataMalformedValue(t *testing.T) {
	tests := []struct {
		name    string
		variant globaldata.Variant
		values  map[string]string
	}{
		{name: "LonePercentTitle", variant: globaldata.Classic, values: map[string]string{globaldata.KeyBlogTitle: "%"}},
		{name: "InvalidUTF8Name", variant: globaldata.Classic, values: map[string]string{globaldata.KeyName: "Caf%C3"}},
		{name: "InvalidByteEmail", variant: globaldata.Contact, values: map[string]string{globaldata.KeyEmailContact: "%FF"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, tc.variant, tc.values)

			rec := getGlobalData(t, router)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", rec.Code)
			}

			var body struct {
				Error     string `json:"error"`
				Details   string `json:"details"`
				Name      string `json:"name"`
				BlogTitle string `json:"blogTitle"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Error != "Invalid site configuration" || body.Details == "" {
				t.Fatalf("unexpected error body %+v", body)
			}
			if body.Name != "" || body.BlogTitle != "" {
				t.Fatalf("expected no partial record, got %+v", body)
			}
		})
	}
}

type failingProvider struct{}

func (failingProvider) Load(globaldata.LookupFunc) (globaldata.GlobalData, error) {
	return globaldata.GlobalData{}, errors.New("provider unavailable")
}

func TestGlobalDataProviderFailure(t *testing.T) {
	handler := NewHandler(failingProvider{}, globaldata.MapLookup(nil))
	router := NewRouter(handler, zaptest.NewLogger(t), WithLogging(false))

	rec := getGlobalData(t, router)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestGlobalDataRejectsOtherMethods(t *testing.T) {
	router, _ := setupTestRouter(t, globaldata.Classic, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/global-data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestCorsPreflight(t *testing.T) {
	router, _ := setupTestRouter(t, globaldata.Classic, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/global-data", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected Access-Control-Allow-Origin header to be set")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := setupTestRouter(t, globaldata.Classic, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "test-request-id")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "test-request-id" {
		t.Fatalf("expected X-Request-ID header to be echoed, got %s", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	router, _ := setupTestRouter(t, globaldata.Classic, nil)

	rec := getGlobalData(t, router)
	if got := rec.Header().Get("X-Request-ID"); len(got) != 32 {
		t.Fatalf("expected generated 32-char request ID, got %q", got)
	}
}
