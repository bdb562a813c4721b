package jira

import (
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// Scheme identifies which authentication representation Credentials carry.
type Scheme int

// Supported authentication schemes.
const (
	SchemeBasic  Scheme = iota + 1 // HTTP Basic: username + password (or email + API token)
	SchemeBearer                   // Authorization: Bearer <token>
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeBasic:
		return "basic"
	case SchemeBearer:
		return "bearer"
	default:
		return "unknown"
	}
}

// Credentials is the closed set of authentication representations the client
// can attach to a request. The zero value attaches nothing.
//
// Credentials are immutable once built; the client copies them into every
// request it sends.
type Credentials struct {
	scheme   Scheme
	username string
	password string
	token    string
}

// BasicAuth returns credentials sent as HTTP Basic authentication. For Jira
// Cloud, pass the account email and an API token.
func BasicAuth(username, password string) Credentials {
	return Credentials{scheme: SchemeBasic, username: username, password: password}
}

// BearerToken returns credentials sent as "Authorization: Bearer <token>".
// Personal access tokens and OAuth access tokens both use this form.
func BearerToken(token string) Credentials {
	return Credentials{scheme: SchemeBearer, token: token}
}

// FromOAuth2Token returns bearer credentials for an access token obtained
// elsewhere. The client never refreshes it.
func FromOAuth2Token(tok *oauth2.Token) Credentials {
	if tok == nil {
		return Credentials{}
	}
	return BearerToken(tok.AccessToken)
}

// Scheme reports which variant the credentials hold.
func (c Credentials) Scheme() Scheme {
	return c.scheme
}

// Username returns the basic auth username, empty for bearer credentials.
func (c Credentials) Username() string {
	return c.username
}

// Apply attaches the authentication representation to an outgoing request.
func (c Credentials) Apply(req *resty.Request) {
	switch c.scheme {
	case SchemeBasic:
		req.SetBasicAuth(c.username, c.password)
	case SchemeBearer:
		req.SetAuthScheme("Bearer")
		req.SetAuthToken(c.token)
	}
}

// String implements fmt.Stringer without exposing secrets.
func (c Credentials) String() string {
	switch c.scheme {
	case SchemeBasic:
		return "basic(" + c.username + ":***)"
	case SchemeBearer:
		return "bearer(***)"
	default:
		return "none"
	}
}
