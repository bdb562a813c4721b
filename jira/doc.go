// Package jira provides a typed client for the Jira REST API.
//
// Every call goes through one pipeline: the endpoint is resolved against
// {host}/rest/api/{version}, credentials and headers are attached, the
// response status is classified and a successful body is decoded into the
// requested type. The generic entry points Get, Put, Post and Delete are
// available for endpoints this package does not wrap.
//
// # Authentication
//
// Credentials are either HTTP Basic or a bearer token:
//   - BasicAuth(username, password): Server/DC, or Cloud with email + API token
//   - BearerToken(token): personal access tokens
//   - FromOAuth2Token(tok): a pre-obtained OAuth 2.0 access token
//
// # Usage
//
//	client := jira.NewClient("https://jira.example.com", jira.BasicAuth("admin", "secret"))
//
//	role, err := client.GetApplicationRole(ctx, "jira-software")
//	if err != nil {
//		return err
//	}
//	fmt.Println(role.Data.Name)
//
// Or from configuration:
//
//	cfg := &jira.Config{
//		URL: "https://your-domain.atlassian.net",
//		Auth: jira.AuthConfig{
//			Type:  jira.AuthAPIToken,
//			Email: "you@example.com",
//			Token: "your-api-token",
//		},
//	}
//	client, err := jira.NewClientFromConfig(cfg)
//
// # Custom fields
//
// Issue fields the schema does not declare are kept verbatim in
// IssueFields.Extra. Lookup evaluates gjson paths over the whole document:
//
//	points := issue.Fields.Lookup("customfield_10002").Float()
//
// # Error Handling
//
// Failures are *Error values whose Kind says what went wrong. They also
// match the sentinels of the jirac/http package with errors.Is:
//
//	if errors.Is(err, http.ErrNotFound) {
//		// Issue doesn't exist
//	}
//	var jiraErr *jira.Error
//	if errors.As(err, &jiraErr) && jiraErr.Kind == jira.KindFault {
//		fmt.Println(jiraErr.Body.Errors)
//	}
//
// Nothing is retried. Callers bound each call with their context.
package jira
