package orchestrator

import (
	"net/http"
	"strings"
)

// Credential is the proof of one successful login. Token-style backends
// return an Authorization response header; cookie-style backends set
// session cookies. Exactly one of the two is populated.
type Credential struct {
	// LoginPath is the path the credential was obtained from. Request
	// paths are matched against it to pick a credential.
	LoginPath string

	// Token is the Authorization response header value, sent back
	// verbatim on subsequent requests.
	Token string

	// Cookies is the login response's cookie jar, used when the
	// backend did not return a token.
	Cookies []*http.Cookie
}

// IsToken reports whether the credential carries a bearer token rather
// than cookies.
func (c Credential) IsToken() bool {
	return c.Token != ""
}

// firstSegment returns the first path segment: "/nbapi/login" → "nbapi".
func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

// matchCredential picks the credential whose login path shares the
// request path's first segment, falling back to the first credential.
// This is a heuristic: it assumes each API family is rooted under the
// same segment as its login endpoint, which holds for every backend
// the tools talk to. Returns nil when no credentials exist.
func matchCredential(requestPath string, creds []Credential) *Credential {
	if len(creds) == 0 {
		return nil
	}
	if len(creds) > 1 {
		seg := firstSegment(requestPath)
		for i := range creds {
			if firstSegment(creds[i].LoginPath) == seg {
				return &creds[i]
			}
		}
	}
	return &creds[0]
}
