// Package errors turns jira pipeline errors into messages for jirac users.
//
// Wrap inspects the error kind of a *jira.Error and returns a CLIError with a
// message, a suggestion and the pipeline error kept as its cause:
//
//	resp, err := client.GetProject(ctx, "EX")
//	if err != nil {
//	    return errors.Wrap(err, errors.WithServerURL(client.Host()))
//	}
//
// Sentinels (ErrNotAuthenticated, ErrNotFound, ...) and the http package
// sentinels both match with errors.Is on the result. ExitCode maps an error to
// the process status jirac exits with.
package errors
