package orchestrator

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the backend saw for one call.
type recordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Form    map[string]string
	Cookies []*http.Cookie
	Query   map[string]string
}

// backendStub plays the role of a management backend, recording every
// request and answering per-path.
type backendStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]http.HandlerFunc
	srv      *httptest.Server
}

func newBackendStub(t *testing.T) *backendStub {
	t.Helper()
	b := &backendStub{handlers: map[string]http.HandlerFunc{}}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		query := map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Header:  r.Header.Clone(),
			Form:    form,
			Cookies: r.Cookies(),
			Query:   query,
		})
		b.mu.Unlock()
		if h, ok := b.handlers[r.URL.Path]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backendStub) handle(path string, h http.HandlerFunc) {
	b.handlers[path] = h
}

func (b *backendStub) recorded() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]recordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func tokenLogin(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", token)
	}
}

func cookieLogin(name, value string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: name, Value: value})
	}
}

func standaloneConfig(url string, loginPaths ...string) Config {
	return Config{
		Name:       "test",
		URL:        url,
		Username:   "admin",
		Password:   "secret",
		LoginPaths: loginPaths,
	}
}

func TestLogin_PostsFormCredentials(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", tokenLogin("Bearer tok"))

	client := New(standaloneConfig(backend.srv.URL, "/api/v1/auth/login"))
	require.NoError(t, client.Login())

	reqs := backend.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/api/v1/auth/login", reqs[0].Path)
	assert.Equal(t, "admin", reqs[0].Form["username"])
	assert.Equal(t, "secret", reqs[0].Form["password"])
	assert.Contains(t, reqs[0].Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func TestLogin_TokenCredentialFromAuthorizationHeader(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", tokenLogin("Bearer tok-123"))

	client := New(standaloneConfig(backend.srv.URL, "/api/v1/auth/login"))
	require.NoError(t, client.Login())

	creds := client.Credentials()
	require.Len(t, creds, 1)
	assert.True(t, creds[0].IsToken())
	assert.Equal(t, "Bearer tok-123", creds[0].Token)
	assert.Empty(t, creds[0].Cookies)
}

func TestLogin_CookieCredentialWhenNoToken(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/nbapi/login", cookieLogin("JSESSIONID", "abc123"))

	client := New(standaloneConfig(backend.srv.URL, "/nbapi/login"))
	require.NoError(t, client.Login())

	creds := client.Credentials()
	require.Len(t, creds, 1)
	assert.False(t, creds[0].IsToken())
	require.Len(t, creds[0].Cookies, 1)
	assert.Equal(t, "JSESSIONID", creds[0].Cookies[0].Name)
	assert.Equal(t, "abc123", creds[0].Cookies[0].Value)
}

func TestLogin_OneCredentialPerPath(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/nbapi/login", tokenLogin("tok-nbapi"))
	backend.handle("/nbapiemswsweb/login", tokenLogin("tok-ems"))

	client := New(standaloneConfig(backend.srv.URL, "/nbapi/login", "/nbapiemswsweb/login"))
	require.NoError(t, client.Login())

	creds := client.Credentials()
	require.Len(t, creds, 2)
	assert.Equal(t, "/nbapi/login", creds[0].LoginPath)
	assert.Equal(t, "tok-nbapi", creds[0].Token)
	assert.Equal(t, "/nbapiemswsweb/login", creds[1].LoginPath)
	assert.Equal(t, "tok-ems", creds[1].Token)
}

func TestLogin_Idempotent(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", tokenLogin("tok"))

	client := New(standaloneConfig(backend.srv.URL, "/api/v1/auth/login"))
	require.NoError(t, client.Login())
	require.NoError(t, client.Login())

	assert.Len(t, backend.recorded(), 1, "second Login must not hit the backend")
	assert.Len(t, client.Credentials(), 1)
}

func TestLogin_GatewayFrontedIsNoop(t *testing.T) {
	backend := newBackendStub(t)

	client := New(Config{
		Name:           "ygw",
		URL:            backend.srv.URL,
		GatewayFronted: true,
		LoginPaths:     []string{"/api/v1/auth/login"},
	})
	require.NoError(t, client.Login())
	client.Logout()

	assert.Empty(t, backend.recorded(), "gateway-fronted clients must not log in or out")
	assert.False(t, client.Authenticated())
}

func TestLogin_NoPathsIsNoop(t *testing.T) {
	backend := newBackendStub(t)
	client := New(standaloneConfig(backend.srv.URL))
	require.NoError(t, client.Login())
	assert.Empty(t, backend.recorded())
	assert.False(t, client.Authenticated())
}

func TestLogin_NonOKStoredByDefault(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := New(standaloneConfig(backend.srv.URL, "/api/v1/auth/login"))
	require.NoError(t, client.Login())

	// Permissive default: the credential (empty cookie jar) is kept.
	assert.Len(t, client.Credentials(), 1)
}

func TestLogin_StrictRejectsNonOK(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	cfg := standaloneConfig(backend.srv.URL, "/api/v1/auth/login")
	cfg.StrictLogin = true
	client := New(cfg)

	err := client.Login()
	require.Error(t, err)
	assert.Empty(t, client.Credentials())
}

func TestLogin_TransportErrorPropagates(t *testing.T) {
	client := New(standaloneConfig("http://127.0.0.1:1", "/api/v1/auth/login"))
	err := client.Login()
	require.Error(t, err)
	assert.Empty(t, client.Credentials())
}

func TestDo_AttachesMatchingToken(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/nbapi/login", tokenLogin("tok-nbapi"))
	backend.handle("/nbapiemswsweb/login", tokenLogin("tok-ems"))

	client := New(standaloneConfig(backend.srv.URL, "/nbapi/login", "/nbapiemswsweb/login"))
	require.NoError(t, client.Login())

	_, err := client.Get("/nbapiemswsweb/rest/v1/Search/Y1564TestConfig")
	require.NoError(t, err)
	_, err = client.Get("/nbapi/session/echo/1")
	require.NoError(t, err)

	reqs := backend.recorded()
	require.Len(t, reqs, 4)
	assert.Equal(t, "tok-ems", reqs[2].Header.Get("Authorization"))
	assert.Equal(t, "tok-nbapi", reqs[3].Header.Get("Authorization"))
}

func TestDo_UnmatchedPathUsesFirstCredential(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/nbapi/login", tokenLogin("tok-nbapi"))
	backend.handle("/nbapiemswsweb/login", tokenLogin("tok-ems"))

	client := New(standaloneConfig(backend.srv.URL, "/nbapi/login", "/nbapiemswsweb/login"))
	require.NoError(t, client.Login())

	_, err := client.Get("/other/path")
	require.NoError(t, err)

	reqs := backend.recorded()
	assert.Equal(t, "tok-nbapi", reqs[len(reqs)-1].Header.Get("Authorization"))
}

func TestDo_AttachesCookies(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/nbapi/login", cookieLogin("JSESSIONID", "xyz"))

	client := New(standaloneConfig(backend.srv.URL, "/nbapi/login"))
	require.NoError(t, client.Login())

	_, err := client.Get("/nbapi/session/twamp/7")
	require.NoError(t, err)

	reqs := backend.recorded()
	last := reqs[len(reqs)-1]
	require.Len(t, last.Cookies, 1)
	assert.Equal(t, "JSESSIONID", last.Cookies[0].Name)
	assert.Equal(t, "xyz", last.Cookies[0].Value)
	assert.Empty(t, last.Header.Get("Authorization"))
}

func TestDo_GatewayForwardedHeaders(t *testing.T) {
	backend := newBackendStub(t)

	client := New(Config{
		Name:           "ygw",
		URL:            backend.srv.URL,
		GatewayFronted: true,
		TenantID:       "tenant-1",
		UserRoles:      "system,tenant-admin",
	})

	_, err := client.Get("/restconf/data/Accedian-session:sessions")
	require.NoError(t, err)

	reqs := backend.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "tenant-1", reqs[0].Header.Get("X-Forwarded-Tenant-Id"))
	assert.Equal(t, "system,tenant-admin", reqs[0].Header.Get("X-Forwarded-User-Roles"))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
}

func TestDo_CallerHeadersOverride(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", tokenLogin("tok"))

	client := New(standaloneConfig(backend.srv.URL, "/api/v1/auth/login"))
	require.NoError(t, client.Login())

	_, err := client.Get("/api/orchestrate/v3/agents",
		WithHeader("Content-type", "application/vnd.api+json"),
		WithHeader("Accept", "application/vnd.api+json"))
	require.NoError(t, err)

	reqs := backend.recorded()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "application/vnd.api+json", last.Header.Get("Accept"))
	assert.Equal(t, "application/vnd.api+json", last.Header.Get("Content-Type"))
	assert.Equal(t, "tok", last.Header.Get("Authorization"))
}

func TestDo_QueryParams(t *testing.T) {
	backend := newBackendStub(t)

	client := New(standaloneConfig(backend.srv.URL))
	_, err := client.Get("/api/v2/policies/alerting", WithQuery(map[string]string{"tag": "latency"}))
	require.NoError(t, err)

	reqs := backend.recorded()
	assert.Equal(t, "latency", reqs[0].Query["tag"])
}

func TestDo_JSONBody(t *testing.T) {
	backend := newBackendStub(t)
	var seen string
	backend.handle("/api/v2/tenant-metadata/t1", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = string(body)
	})

	client := New(standaloneConfig(backend.srv.URL))
	_, err := client.Patch("/api/v2/tenant-metadata/t1", WithBody(`{"data":{"id":"t1"}}`))
	require.NoError(t, err)

	reqs := backend.recorded()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "application/json", last.Header.Get("Content-Type"))
	assert.Contains(t, seen, `"id":"t1"`)
}

func TestDo_NonOKReturnedWithoutError(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := New(standaloneConfig(backend.srv.URL))
	resp, err := client.Get("/api/v1/missing")
	require.NoError(t, err, "HTTP errors are data, not Go errors")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestDo_TransportErrorPropagates(t *testing.T) {
	client := New(standaloneConfig("http://127.0.0.1:1"))
	_, err := client.Get("/api/v1/anything")
	require.Error(t, err)
}

func TestLogout_PostsToEachPathWithCredential(t *testing.T) {
	backend := newBackendStub(t)
	backend.handle("/api/v1/auth/login", tokenLogin("tok"))

	cfg := standaloneConfig(backend.srv.URL, "/api/v1/auth/login")
	cfg.LogoutPaths = []string{"/api/v1/auth/logout"}
	client := New(cfg)
	require.NoError(t, client.Login())
	client.Logout()

	reqs := backend.recorded()
	require.Len(t, reqs, 2)
	last := reqs[1]
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/api/v1/auth/logout", last.Path)
	assert.Equal(t, "tok", last.Header.Get("Authorization"))
	assert.Equal(t, "application/vnd.api+json", last.Header.Get("Content-Type"))
}

func TestLogout_NoopWithoutCredentials(t *testing.T) {
	backend := newBackendStub(t)
	cfg := standaloneConfig(backend.srv.URL)
	cfg.LogoutPaths = []string{"/api/v1/auth/logout"}

	client := New(cfg)
	client.Logout()

	assert.Empty(t, backend.recorded())
}
