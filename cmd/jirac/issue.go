package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jirac/jira"
)

func newIssueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Read and change issues",
	}
	cmd.AddCommand(
		newIssueGetCmd(a),
		newIssueSearchCmd(a),
		newIssueTransitionCmd(a),
		newIssueCommentCmd(a),
	)
	return cmd
}

func newIssueGetCmd(a *app) *cobra.Command {
	var (
		fields []string
		expand []string
		field  string
	)

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print an issue",
		Example: `  jirac issue get EX-1 --fields summary,status
  jirac issue get EX-1 --field customfield_10010.value`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			opts := &jira.IssueOptions{Fields: fields}
			for _, e := range expand {
				opts.Expand = append(opts.Expand, jira.IssueExpand(e))
			}

			resp, err := client.GetIssue(cmd.Context(), args[0], opts, nil)
			if err != nil {
				return a.fail(client, err)
			}

			if field != "" {
				result := resp.Data.Fields.Lookup(field)
				if !result.Exists() {
					return fmt.Errorf("field %q not present on %s", field, resp.Data.Key)
				}
				_, err := fmt.Fprintln(a.stdout, result.String())
				return err
			}
			return a.print(resp.Data)
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "fields to return (default all)")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "sections to expand, e.g. names,changelog")
	cmd.Flags().StringVar(&field, "field", "", "print one field by path (gjson syntax)")
	return cmd
}

func newIssueSearchCmd(a *app) *cobra.Command {
	var opts jira.SearchOptions

	cmd := &cobra.Command{
		Use:   "search <jql>",
		Short: "Search issues with JQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			resp, err := client.SearchIssues(cmd.Context(), args[0], &opts)
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}

	cmd.Flags().IntVar(&opts.StartAt, "start-at", 0, "index of the first result")
	cmd.Flags().IntVar(&opts.MaxResults, "max-results", jira.DefaultMaxResults, "page size")
	cmd.Flags().StringSliceVar(&opts.Fields, "fields", nil, "fields to return")
	return cmd
}

func newIssueTransitionCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "transition <key> [name]",
		Short: "Move an issue through its workflow, or list available transitions",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			if list || len(args) == 1 {
				resp, err := client.GetTransitions(cmd.Context(), args[0])
				if err != nil {
					return a.fail(client, err)
				}
				return a.print(resp.Data.Transitions)
			}

			if _, err := client.TransitionIssueByName(cmd.Context(), args[0], args[1]); err != nil {
				return a.fail(client, err)
			}
			_, err = fmt.Fprintf(a.stdout, "%s moved via %q\n", args[0], args[1])
			return err
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list transitions instead of applying one")
	return cmd
}

func newIssueCommentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <key> [text]",
		Short: "List comments, or add one when text is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				resp, err := client.GetComments(cmd.Context(), args[0], nil)
				if err != nil {
					return a.fail(client, err)
				}
				return a.print(resp.Data)
			}

			resp, err := client.AddComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}
}
