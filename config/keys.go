package config

import "strings"

// Configuration keys understood by jirac. Nested YAML maps flatten to these
// dotted names.
const (
	KeyURL             = "url"
	KeyAPIVersion      = "api_version"
	KeyAuthType        = "auth.type"
	KeyAuthEmail       = "auth.email"
	KeyAuthToken       = "auth.token"
	KeyAuthUsername    = "auth.username"
	KeyAuthPassword    = "auth.password"
	KeyAuthAccessToken = "auth.access_token"
	KeyHTTPTimeout     = "http.timeout"
	KeyOutput          = "output"

	// Prefixes for free-form maps.
	PrefixHeaders = "headers."
	PrefixQuery   = "query."
)

// Application names used for config file and env lookup.
const (
	AppName         = "jirac"
	EnvPrefix       = "JIRAC_"
	LocalConfigName = ".jirac.yaml"
)

// Keys lists every accepted key. Prefix entries end in ".".
var Keys = []string{
	KeyURL,
	KeyAPIVersion,
	KeyAuthType,
	KeyAuthEmail,
	KeyAuthToken,
	KeyAuthUsername,
	KeyAuthPassword,
	KeyAuthAccessToken,
	KeyHTTPTimeout,
	KeyOutput,
	PrefixHeaders,
	PrefixQuery,
}

// LocalKeys lists the keys that may live in the repository-local file.
// Secrets stay in the global file or the environment.
var LocalKeys = []string{
	KeyURL,
	KeyAPIVersion,
	KeyAuthType,
	KeyHTTPTimeout,
	KeyOutput,
	PrefixHeaders,
	PrefixQuery,
}

// Defaults are applied below every other source.
func Defaults() map[string]string {
	return map[string]string{
		KeyAPIVersion:  "2",
		KeyHTTPTimeout: "30s",
		KeyOutput:      "json",
	}
}

var secretKeys = map[string]bool{
	KeyAuthToken:       true,
	KeyAuthPassword:    true,
	KeyAuthAccessToken: true,
}

// IsSecret reports whether a key holds a credential.
func IsSecret(key string) bool {
	return secretKeys[key]
}

// Redact masks a secret value for display.
func Redact(key, value string) string {
	if !IsSecret(key) || value == "" {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}

// DefaultResolverConfig returns the resolver settings for jirac:
// ~/.config/jirac/config.yaml, .jirac.yaml at the git root and JIRAC_* env.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: AppName,
		LocalConfigName: LocalConfigName,
		Defaults:        Defaults(),
		ValidKeys:       Keys,
		ValidLocalKeys:  LocalKeys,
	}
}

// DefaultSaveConfig returns the writer settings matching DefaultResolverConfig.
func DefaultSaveConfig() SaveConfig {
	return SaveConfig{
		GlobalConfigDir: AppName,
		LocalConfigName: LocalConfigName,
		ValidGlobalKeys: Keys,
		ValidLocalKeys:  LocalKeys,
	}
}
