package mid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/todos/bridge/scaffolding/errs"
	"github.com/jrazmi/todos/bridge/scaffolding/mid"
	"github.com/jrazmi/todos/infrastructure/web"
	"github.com/jrazmi/todos/sdk/logger"
)

func newLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewDefault(logger.WithOutput(buf), logger.WithLevel("DEBUG"))
}

func serve(t *testing.T, h *web.WebHandler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func counter(name string) int64 {
	v, ok := expvar.Get(name).(*expvar.Int)
	if !ok {
		return 0
	}
	return v.Value()
}

func TestErrorsPassesApplicationErrors(t *testing.T) {
	var buf bytes.Buffer
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(newLogger(&buf))))
	h.GET("/missing", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "Todo not found")
	})

	rec := serve(t, h, http.MethodGet, "/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
	if msg := messageOf(t, rec); msg != "Todo not found" {
		t.Errorf("Expected 'Todo not found', got '%s'", msg)
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Errorf("Expected a WARN record, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"code":"not_found"`) {
		t.Errorf("Expected the error code to be logged, got %s", buf.String())
	}
}

func TestErrorsHidesInternalDetails(t *testing.T) {
	tests := []struct {
		name string
		resp web.Encoder
	}{
		{name: "internal only log", resp: errs.New(errs.InternalOnlyLog, errors.New("disk on fire"))},
		{name: "plain error", resp: web.NewError("disk on fire")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(newLogger(&buf))))
			h.GET("/boom", func(ctx context.Context, r *http.Request) web.Encoder {
				return tt.resp
			})

			rec := serve(t, h, http.MethodGet, "/boom", nil)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("Expected status 500, got %d", rec.Code)
			}
			if msg := messageOf(t, rec); msg != "Internal Server Error" {
				t.Errorf("Expected 'Internal Server Error', got '%s'", msg)
			}
			if !strings.Contains(buf.String(), "disk on fire") {
				t.Errorf("Expected the cause to be logged, got %s", buf.String())
			}
			if !strings.Contains(buf.String(), `"level":"ERROR"`) {
				t.Errorf("Expected an ERROR record, got %s", buf.String())
			}
		})
	}
}

func TestErrorsLeavesSuccessAlone(t *testing.T) {
	var buf bytes.Buffer
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(newLogger(&buf))))
	h.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse([]int{})
	})

	rec := serve(t, h, http.MethodGet, "/ok", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing logged, got %s", buf.String())
	}
}

func TestPanics(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf)
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(
		mid.Errors(log),
		mid.Metrics(),
		mid.Panics(),
	))
	h.GET("/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("kaboom")
	})

	before := counter("panics")
	beforeErrs := counter("errors")

	rec := serve(t, h, http.MethodGet, "/panic", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rec.Code)
	}
	if msg := messageOf(t, rec); msg != "Internal Server Error" {
		t.Errorf("Expected 'Internal Server Error', got '%s'", msg)
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Errorf("Expected the panic value to be logged, got %s", buf.String())
	}
	if got := counter("panics"); got != before+1 {
		t.Errorf("Expected panics to be %d, got %d", before+1, got)
	}
	if got := counter("errors"); got != beforeErrs+1 {
		t.Errorf("Expected errors to be %d, got %d", beforeErrs+1, got)
	}
}

func TestMetricsCountsRequests(t *testing.T) {
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Metrics()))
	h.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return nil
	})

	before := counter("requests")
	for range 3 {
		serve(t, h, http.MethodGet, "/ok", nil)
	}
	if got := counter("requests"); got != before+3 {
		t.Errorf("Expected requests to be %d, got %d", before+3, got)
	}
}

func TestAllowMethods(t *testing.T) {
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(logger.NewDefault(logger.WithOutput(&bytes.Buffer{})))))
	h.ANY("/items", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(r.Method)
	}, mid.AllowMethods(http.MethodGet, http.MethodPost))

	rec := serve(t, h, http.MethodPost, "/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "" {
		t.Errorf("Expected no Allow header on success, got '%s'", allow)
	}

	rec = serve(t, h, http.MethodDelete, "/items", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Expected Allow 'GET, POST', got '%s'", allow)
	}
	if msg := messageOf(t, rec); msg != "Method DELETE Not Allowed" {
		t.Errorf("Expected 'Method DELETE Not Allowed', got '%s'", msg)
	}
}

func TestCORS(t *testing.T) {
	called := false
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.CORS("http://localhost:3000")))
	h.ANY("/tasks", func(ctx context.Context, r *http.Request) web.Encoder {
		called = true
		return web.NewJSONResponse([]int{})
	})

	t.Run("preflight", func(t *testing.T) {
		called = false
		rec := serve(t, h, http.MethodOptions, "/tasks", http.Header{
			"Origin":                        {"http://localhost:3000"},
			"Access-Control-Request-Method": {"PUT"},
		})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d", rec.Code)
		}
		if called {
			t.Error("Expected preflight not to reach the handler")
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Expected allowed origin, got '%s'", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE" {
			t.Errorf("Expected 'GET, POST, PUT, DELETE', got '%s'", got)
		}
	})

	t.Run("other origin", func(t *testing.T) {
		called = false
		rec := serve(t, h, http.MethodGet, "/tasks", http.Header{"Origin": {"http://evil.example"}})
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		if !called {
			t.Error("Expected the handler to run")
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no CORS headers, got '%s'", got)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Logger(newLogger(&buf))))
	h.DELETE("/tasks", func(ctx context.Context, r *http.Request) web.Encoder {
		return nil
	})

	serve(t, h, http.MethodDelete, "/tasks?id=1", nil)

	out := buf.String()
	for _, want := range []string{`"msg":"request started"`, `"msg":"request completed"`, `"path":"/tasks?id=1"`, `"statuscode":204`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %s, got %s", want, out)
		}
	}
}
