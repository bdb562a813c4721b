package jira

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/oauth2"
)

// AuthType represents the type of authentication to use.
type AuthType string

// Authentication types accepted in configuration. Each maps onto one of the
// two credential schemes.
const (
	AuthBasic    AuthType = "basic"     // Server: username + password
	AuthAPIToken AuthType = "api_token" // Cloud: email + API token, sent as basic
	AuthBearer   AuthType = "bearer"    // Any bearer token
	AuthPAT      AuthType = "pat"       // Server/DC: Personal Access Token
	AuthOAuth2   AuthType = "oauth2"    // Pre-obtained OAuth 2.0 access token
)

// APIVersion represents the Jira REST API version.
type APIVersion string

// API versions supported by the Jira REST API.
const (
	APIVersionV2 APIVersion = "2"
	APIVersionV3 APIVersion = "3"
)

// Config holds the configuration for the Jira client.
type Config struct {
	// URL is the base URL of the Jira instance.
	// For Cloud: https://your-domain.atlassian.net
	// For Server: https://jira.your-company.com
	URL string `mapstructure:"url"`

	// APIVersion selects /rest/api/2 or /rest/api/3. Empty means 2.
	APIVersion APIVersion `mapstructure:"api_version"`

	// Auth contains authentication configuration.
	Auth AuthConfig `mapstructure:"auth"`

	// HTTP contains HTTP client configuration.
	HTTP HTTPConfig `mapstructure:"http"`

	// Headers are sent with every request.
	Headers map[string]string `mapstructure:"headers"`

	// Query parameters are added to every request.
	Query map[string]string `mapstructure:"query"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// Type is the authentication method to use.
	Type AuthType `mapstructure:"type"`

	// Email is required for api_token auth (Cloud).
	Email string `mapstructure:"email"`

	// Token is the API token (Cloud), PAT (Server/DC) or bearer token.
	Token string `mapstructure:"token"`

	// Username is required for basic auth.
	Username string `mapstructure:"username"`

	// Password is required for basic auth.
	Password string `mapstructure:"password"`

	// AccessToken is a pre-obtained OAuth 2.0 access token.
	AccessToken string `mapstructure:"access_token"`
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout bounds each request. Zero leaves timeouts to the caller's context.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIVersion: APIVersionV2,
		Headers:    map[string]string{},
		Query:      map[string]string{},
	}
}

// ConfigFromMap decodes a nested key/value map (as produced by YAML or the
// CLI resolver) over DefaultConfig. Durations may be given as strings such
// as "30s".
func ConfigFromMap(values map[string]any) (*Config, error) {
	cfg := DefaultConfig()
	decoder, decoderErr := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if decoderErr != nil {
		return nil, fmt.Errorf("create config decoder: %w", decoderErr)
	}
	if decodeErr := decoder.Decode(values); decodeErr != nil {
		return nil, fmt.Errorf("decode jira config: %w", decodeErr)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrConfigURLRequired
	}

	if c.Auth.Type == "" {
		return ErrConfigAuthTypeRequired
	}

	switch c.Auth.Type {
	case AuthAPIToken:
		if c.Auth.Email == "" || c.Auth.Token == "" {
			return ErrConfigAPITokenAuth
		}
	case AuthBasic:
		if c.Auth.Username == "" || c.Auth.Password == "" {
			return ErrConfigBasicAuth
		}
	case AuthBearer, AuthPAT:
		if c.Auth.Token == "" {
			return ErrConfigBearerAuth
		}
	case AuthOAuth2:
		if c.Auth.AccessToken == "" {
			return ErrConfigOAuth2Auth
		}
	default:
		return ErrConfigAuthTypeInvalid
	}

	switch c.GetAPIVersion() {
	case APIVersionV2, APIVersionV3:
	default:
		return ErrConfigAPIVersionInvalid
	}

	return nil
}

// GetAPIVersion returns the effective API version. A leading "v" is accepted.
func (c *Config) GetAPIVersion() APIVersion {
	if c.APIVersion == "" {
		return APIVersionV2
	}
	return APIVersion(strings.TrimPrefix(string(c.APIVersion), "v"))
}

// Credentials builds the credentials selected by Auth.Type.
func (c *Config) Credentials() (Credentials, error) {
	switch c.Auth.Type {
	case AuthBasic:
		return BasicAuth(c.Auth.Username, c.Auth.Password), nil
	case AuthAPIToken:
		return BasicAuth(c.Auth.Email, c.Auth.Token), nil
	case AuthBearer, AuthPAT:
		return BearerToken(c.Auth.Token), nil
	case AuthOAuth2:
		return FromOAuth2Token(&oauth2.Token{AccessToken: c.Auth.AccessToken}), nil
	default:
		return Credentials{}, ErrConfigAuthTypeInvalid
	}
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Headers = maps.Clone(c.Headers)
	clone.Query = maps.Clone(c.Query)
	return &clone
}
