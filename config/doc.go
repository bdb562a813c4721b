// Package config resolves jirac settings from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags (ResolveWithFlags)
//  2. Environment variables (JIRAC_URL, JIRAC_AUTH_TOKEN, ...)
//  3. Local config (.jirac.yaml in the git root)
//  4. Global config (~/.config/jirac/config.yaml)
//  5. Built-in defaults
//
// YAML files may nest keys; they are flattened to dotted names:
//
//	url: https://jira.example.com
//	auth:
//	  type: api_token
//	  email: me@example.com
//	headers:
//	  X-Atlassian-Token: no-check
//
// resolves to "url", "auth.type", "auth.email" and
// "headers.X-Atlassian-Token". Resolved.Tree rebuilds the nested form for
// jira.ConfigFromMap:
//
//	resolved := config.NewResolver(config.DefaultResolverConfig()).Resolve()
//	cfg, err := jira.ConfigFromMap(resolved.Tree())
//
// Each resolved value records its Source. Secrets (auth.token,
// auth.password, auth.access_token) are rejected by SaveLocal so they never
// land in a file committed with the repository.
package config
