package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	api "github.com/rogerio-castellano/inventory-dashboard/internal/http"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

func init() {
	handlers.SetProductRepo(repo.NewInMemoryProductRepository())
	handlers.SetFlashStore(session.NewMemoryFlashStore())
}

func baseConfig() api.RouterConfig {
	return api.RouterConfig{
		SessionSecret: []byte("router-test"),
		Logger:        zap.NewNop(),
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouterIssuesSessionCookie(t *testing.T) {
	w := serve(api.NewRouter(baseConfig()), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, session.CookieName)
}

func TestBasicAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.OperatorUsername = "operator"
	cfg.OperatorPasswordHash = string(hash)
	r := api.NewRouter(cfg)

	tests := []struct {
		name     string
		user     string
		pass     string
		setAuth  bool
		expected int
	}{
		{"No credentials", "", "", false, http.StatusUnauthorized},
		{"Wrong password", "operator", "nope", true, http.StatusUnauthorized},
		{"Wrong user", "admin", "s3cret", true, http.StatusUnauthorized},
		{"Valid", "operator", "s3cret", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := serve(r, req)

			assert.Equal(t, tt.expected, w.Code)
			if tt.expected == http.StatusUnauthorized {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}

func TestMetricsAreNotBehindAuth(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	cfg := baseConfig()
	cfg.OperatorPasswordHash = string(hash)
	r := api.NewRouter(cfg)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_in_flight")
}

func TestHealthMountedWhenConfigured(t *testing.T) {
	cfg := baseConfig()
	cfg.Health = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	w := serve(api.NewRouter(cfg), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "ok", w.Body.String())

	w = serve(api.NewRouter(baseConfig()), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerDoc(t *testing.T) {
	w := serve(api.NewRouter(baseConfig()), httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/products/import")
}

func TestRateLimitAppliesToMutations(t *testing.T) {
	cfg := baseConfig()
	cfg.Limiter = rl.New(0.001, 1)
	r := api.NewRouter(cfg)

	post := func() int {
		form := url.Values{"name": {"Ghost"}}
		req := httptest.NewRequest(http.MethodPost, "/items/delete", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "192.0.2.1:1234"
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusSeeOther, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	get := httptest.NewRequest(http.MethodGet, "/", nil)
	get.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, http.StatusOK, serve(r, get).Code)
}
