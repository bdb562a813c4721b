package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jirac/jira"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		query   map[string]string
		headers map[string]string
		etag    bool
	)

	cmd := &cobra.Command{
		Use:   "get <endpoint>",
		Short: "GET any endpoint under /rest/api/<version> and print the JSON",
		Example: `  jirac get /serverInfo
  jirac get /user --query username=fred --query expand=groups`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			resp, err := jira.Get[json.RawMessage](cmd.Context(), client, args[0],
				jira.Query(query), jira.Headers(headers))
			if err != nil {
				return a.fail(client, err)
			}
			if etag && resp.ETag() != "" {
				cmd.PrintErrln("ETag:", resp.ETag())
			}
			return a.print(resp.Data)
		},
	}

	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "query parameter key=value (repeatable)")
	cmd.Flags().StringToStringVarP(&headers, "header", "H", nil, "request header key=value (repeatable)")
	cmd.Flags().BoolVar(&etag, "etag", false, "print the response ETag to stderr")
	return cmd
}
