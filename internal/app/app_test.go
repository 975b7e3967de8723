package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
)

// ---- Helpers ----

type recordingAuth struct {
	mu    sync.Mutex
	calls []string
}

func (h *recordingAuth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.calls = append(h.calls, r.Method+" "+r.URL.Path)
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte(`{"from":"auth"}`))
}

func testConfig(origins ...string) *config.Config {
	return &config.Config{
		App: config.App{
			Title:       config.DefaultTitle,
			Description: config.DefaultDescription,
			Version:     config.DefaultVersion,
		},
		CORS: config.CORS{AllowedOrigins: origins},
	}
}

func newTestApp(t *testing.T, cfg *config.Config, auth http.Handler, opts ...Option) *App {
	t.Helper()
	if auth == nil {
		auth = &recordingAuth{}
	}
	a, err := New(cfg, auth, logger.Nop(), opts...)
	require.NoError(t, err)
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, req)
	return rr
}

// ---- Diagnostic endpoints ----

func TestDiagnostics_ExactBodies(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	tests := []struct {
		path string
		body string
	}{
		{"/", `{"message":"Welcome to DeepR API"}`},
		{"/health", `{"status":"healthy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := serve(a, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestTestEndpoint_TimestampWithinRequest(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	start := time.Now().Truncate(time.Microsecond)
	rr := serve(a, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	end := time.Now()

	require.Equal(t, http.StatusOK, rr.Code)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Test endpoint successful", resp.Message)
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Timestamp)

	ts, err := time.ParseInLocation(TimestampLayout, resp.Timestamp, time.Local)
	require.NoError(t, err)
	assert.False(t, ts.Before(start), "timestamp %s before request start %s", ts, start)
	assert.False(t, ts.After(end), "timestamp %s after response %s", ts, end)
}

func TestTestEndpoint_FixedClock(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 14, 3, 27, 512094000, time.Local)
	a := newTestApp(t, testConfig(), nil, WithClock(func() time.Time { return fixed }))

	rr := serve(a, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t,
		`{"message":"Test endpoint successful","success":true,"timestamp":"2026-10-19 14:03:27.512094"}`,
		rr.Body.String())
}

func TestTestEndpoint_IgnoresCredentials(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, header := range []string{"", "Bearer garbage", "Basic Zm9vOmJhcg=="} {
		t.Run("authorization="+header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := serve(a, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"success":true`)
		})
	}
}

func TestDiagnostics_LogLines(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: zerolog.New(&buf)}

	a, err := New(testConfig(), &recordingAuth{}, l)
	require.NoError(t, err)

	tests := []struct {
		path    string
		traceID string
		line    string
	}{
		{"/", "trace-root", "Root endpoint was called!"},
		{"/health", "trace-health", "Health check endpoint was called!"},
		{"/api/test", "trace-test", "Test endpoint was called!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(traceIDHeader, tt.traceID)

			serve(a, req)

			out := buf.String()
			assert.Contains(t, out, tt.line)
			assert.Contains(t, out, `"trace_id":"`+tt.traceID+`"`)
			assert.Contains(t, out, `"uri":"`+tt.path+`"`)
			assert.Contains(t, out, `"status":200`)
		})
	}
}

// ---- Routing ----

func TestRouting_NotFound(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, path := range []string{"/does-not-exist", "/api", "/api/tests", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(a, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.JSONEq(t, `{"detail":"Not Found"}`, rr.Body.String())
		})
	}
}

func TestRouting_MethodNotAllowed(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rr := serve(a, httptest.NewRequest(method, "/health", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
			assert.JSONEq(t, `{"detail":"Method Not Allowed"}`, rr.Body.String())
		})
	}
}

func TestRouting_HeadOnGetRoutes(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, path := range []string{"/", "/health", "/api/test"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(a, httptest.NewRequest(http.MethodHead, path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Empty(t, rr.Header().Get("Allow"))
		})
	}

	t.Run("unknown path", func(t *testing.T) {
		rr := serve(a, httptest.NewRequest(http.MethodHead, "/does-not-exist", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRouting_AuthDelegation(t *testing.T) {
	auth := &recordingAuth{}
	a := newTestApp(t, testConfig(), auth)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/token"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodDelete, "/api/auth/sessions/1"},
		{http.MethodGet, "/api/auth"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(a, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusTeapot, rr.Code)
			assert.JSONEq(t, `{"from":"auth"}`, rr.Body.String())
		})
	}

	require.Len(t, auth.calls, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.method+" "+tt.path, auth.calls[i], "path reaches the auth router unchanged")
	}
}

func TestRouting_RecoversFromPanic(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	a := newTestApp(t, testConfig(), boom)

	rr := serve(a, httptest.NewRequest(http.MethodGet, "/api/auth/token", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = serve(a, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTraceID(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	t.Run("echoes caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(traceIDHeader, "abc-123")

		rr := serve(a, req)
		assert.Equal(t, "abc-123", rr.Header().Get(traceIDHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		rr := serve(a, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Len(t, rr.Header().Get(traceIDHeader), 36)
	})

	for name, id := range map[string]string{
		"too long":     strings.Repeat("a", maxTraceIDLength+1),
		"spaces":       "abc def",
		"quotes":       `abc"def`,
		"control char": "abc\x01def",
		"slash":        "abc/def",
	} {
		t.Run("replaces "+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(traceIDHeader, id)

			rr := serve(a, req)
			got := rr.Header().Get(traceIDHeader)
			assert.NotEqual(t, id, got)
			assert.Len(t, got, 36)
		})
	}
}

func TestValidTraceID(t *testing.T) {
	assert.True(t, validTraceID("abc-123"))
	assert.True(t, validTraceID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.True(t, validTraceID("req_1.2"))
	assert.True(t, validTraceID(strings.Repeat("a", maxTraceIDLength)))

	assert.False(t, validTraceID(""))
	assert.False(t, validTraceID(strings.Repeat("a", maxTraceIDLength+1)))
	assert.False(t, validTraceID("abc\ndef"))
	assert.False(t, validTraceID("ünicode"))
}

func TestConcurrentRequests(t *testing.T) {
	a := newTestApp(t, testConfig("https://deepr.example"), nil)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := []string{"/", "/health", "/api/test"}[i%3]
			resp, err := http.Get(srv.URL + path)
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)
			if resp.StatusCode != http.StatusOK {
				errs <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

// ---- Construction ----

func TestNew_NilAuth(t *testing.T) {
	a, err := New(testConfig(), nil, logger.Nop())
	assert.ErrorIs(t, err, errNilAuthHandler)
	assert.Nil(t, a)
}

func TestRoutesAndMounts_AreCopies(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	routes := a.Routes()
	require.NotEmpty(t, routes)
	routes[0].Pattern = "/mutated"
	assert.Equal(t, "/", a.Routes()[0].Pattern)

	mounts := a.Mounts()
	require.Len(t, mounts, 1)
	assert.Equal(t, AuthPrefix, mounts[0].Prefix)
	assert.Equal(t, []string{"auth"}, mounts[0].Tags)
}
