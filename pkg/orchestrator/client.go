package orchestrator

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/sensornet/sensorctl/pkg/util"
)

// Client talks to one backend. It is not safe for concurrent use; the
// tools are strictly one request at a time.
type Client struct {
	cfg   Config
	rest  *resty.Client
	creds []Credential
}

// New creates a client for the backend. Certificate verification is
// disabled: lab backends run on self-signed certificates. The automatic
// cookie jar is disabled too; cookies travel only through Credentials,
// so each request carries exactly the credential that matches its path.
func New(cfg Config) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL()).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}).
		SetCookieJar(nil)
	return &Client{cfg: cfg, rest: rest}
}

// Config returns the backend configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Credentials returns the credentials collected by Login.
func (c *Client) Credentials() []Credential {
	return c.creds
}

// Authenticated reports whether at least one credential is held.
func (c *Client) Authenticated() bool {
	return len(c.creds) > 0
}

// Login authenticates against every configured login path, collecting
// one credential per path. Gateway-fronted backends, backends with no
// login paths, and already-authenticated clients are no-ops. Transport
// errors abort immediately; with StrictLogin set, rejected paths are
// reported after all paths have been tried.
func (c *Client) Login() error {
	if c.cfg.GatewayFronted || c.Authenticated() || len(c.cfg.LoginPaths) == 0 {
		return nil
	}
	if c.cfg.Username == "" || c.cfg.Password == "" {
		util.WithBackend(c.cfg.Name).Warn("username and/or password not set; login will likely be rejected")
	}

	var rejected []string
	for _, path := range c.cfg.LoginPaths {
		ok, err := c.login(path)
		if err != nil {
			return err
		}
		if !ok {
			rejected = append(rejected, path)
		}
	}
	if len(rejected) > 0 {
		return util.NewLoginError(c.cfg.Name, rejected...)
	}
	return nil
}

// login POSTs the form-encoded credentials to one path and stores the
// resulting credential. A token in the Authorization response header
// wins; otherwise the response cookies are kept, even when empty.
func (c *Client) login(path string) (bool, error) {
	resp, err := c.rest.R().
		SetFormData(map[string]string{
			"username": c.cfg.Username,
			"password": c.cfg.Password,
		}).
		Post(path)
	if err != nil {
		return false, fmt.Errorf("login %s: %w", path, err)
	}

	log := util.WithBackend(c.cfg.Name)
	if resp.IsError() {
		if c.cfg.StrictLogin {
			log.Warnf("login %s rejected with status %d", path, resp.StatusCode())
			return false, nil
		}
		log.Warnf("login %s returned status %d; storing credential anyway", path, resp.StatusCode())
	}

	if token := resp.Header().Get("Authorization"); token != "" {
		log.Debugf("login %s: token credential", path)
		c.creds = append(c.creds, Credential{LoginPath: path, Token: token})
	} else {
		log.Debugf("login %s: cookie credential (%d cookies)", path, len(resp.Cookies()))
		c.creds = append(c.creds, Credential{LoginPath: path, Cookies: resp.Cookies()})
	}
	return true, nil
}

// Logout POSTs to every configured logout path with the matching
// credential. Failures are logged, never returned: logout runs on the
// way out and must not mask the command's own result. Credentials are
// not cleared; the process is about to exit anyway.
func (c *Client) Logout() {
	if c.cfg.GatewayFronted || len(c.cfg.LogoutPaths) == 0 || !c.Authenticated() {
		return
	}
	log := util.WithBackend(c.cfg.Name)
	for _, path := range c.cfg.LogoutPaths {
		req := c.rest.R().SetHeader("Content-Type", "application/vnd.api+json")
		if cred := matchCredential(path, c.creds); cred != nil {
			if cred.IsToken() {
				req.SetHeader("Authorization", cred.Token)
			} else if len(cred.Cookies) > 0 {
				req.SetCookies(cred.Cookies)
			}
		}
		resp, err := req.Post(path)
		if err != nil {
			log.Warnf("logout %s: %v", path, err)
			continue
		}
		log.Debugf("logout %s: status %d", path, resp.StatusCode())
	}
}

type requestOptions struct {
	headers map[string]string
	query   map[string]string
	body    interface{}
}

// RequestOption customizes one request.
type RequestOption func(*requestOptions)

// WithHeader adds a single header, overriding any client-built value.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// WithHeaders adds headers, overriding any client-built values.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithQuery adds query parameters.
func WithQuery(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = map[string]string{}
		}
		for k, v := range params {
			o.query[k] = v
		}
	}
}

// WithBody sets a JSON request body. Strings and byte slices are sent
// as-is; anything else is marshalled by resty.
func WithBody(body interface{}) RequestOption {
	return func(o *requestOptions) {
		o.body = body
	}
}

// Do issues one request against the backend. Headers are built from the
// config and the matching credential, then caller extras override.
// The raw response is returned for any HTTP status; only transport
// failures produce an error.
func (c *Client) Do(method, uri string, opts ...RequestOption) (*resty.Response, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	req := c.rest.R().SetHeaders(c.buildHeaders(uri, o.headers))
	if cred := matchCredential(uri, c.creds); cred != nil && !cred.IsToken() && len(cred.Cookies) > 0 {
		req.SetCookies(cred.Cookies)
	}
	if o.query != nil {
		req.SetQueryParams(o.query)
	}
	if o.body != nil {
		if req.Header.Get("Content-Type") == "" {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody(o.body)
	}

	util.WithBackend(c.cfg.Name).Debugf("%s %s", method, uri)
	resp, err := req.Execute(method, uri)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, uri, err)
	}
	return resp, nil
}

// buildHeaders assembles the headers for one request: the JSON accept
// header, forwarded identity on gateway-fronted backends, the matching
// token credential, then caller extras last so they win.
func (c *Client) buildHeaders(uri string, extra map[string]string) map[string]string {
	headers := map[string]string{"Accept": "application/json"}
	if c.cfg.GatewayFronted {
		headers["X-Forwarded-Tenant-Id"] = c.cfg.TenantID
		headers["X-Forwarded-User-Roles"] = c.cfg.UserRoles
	}
	if cred := matchCredential(uri, c.creds); cred != nil && cred.IsToken() {
		headers["Authorization"] = cred.Token
	}
	for k, v := range extra {
		headers[k] = v
	}
	return headers
}

// Get issues a GET request.
func (c *Client) Get(uri string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(http.MethodGet, uri, opts...)
}

// Post issues a POST request.
func (c *Client) Post(uri string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(http.MethodPost, uri, opts...)
}

// Put issues a PUT request.
func (c *Client) Put(uri string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(http.MethodPut, uri, opts...)
}

// Patch issues a PATCH request.
func (c *Client) Patch(uri string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(http.MethodPatch, uri, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(uri string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(http.MethodDelete, uri, opts...)
}
