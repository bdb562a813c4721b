package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jirac/jira"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect projects",
	}

	var expand []string
	get := &cobra.Command{
		Use:   "get <key-or-id>",
		Short: "Print a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			var ex []jira.ProjectExpand
			for _, e := range expand {
				ex = append(ex, jira.ProjectExpand(e))
			}
			resp, err := client.GetProject(cmd.Context(), args[0], ex...)
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}
	get.Flags().StringSliceVar(&expand, "expand", nil, "sections to expand, e.g. lead,description")

	var check string
	perms := &cobra.Command{
		Use:   "permissions <project-key>",
		Short: "Print your permissions in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.MyPermissions(cmd.Context(), jira.MyPermissionProjectKey, args[0])
			if err != nil {
				return a.fail(client, err)
			}
			if check != "" {
				_, err := fmt.Fprintln(a.stdout, resp.Data.Has(check))
				return err
			}
			return a.print(resp.Data)
		},
	}
	perms.Flags().StringVar(&check, "has", "", "print only whether this permission key is held")

	cmd.AddCommand(get, perms)
	return cmd
}

func newRoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect application roles",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List application roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.ListApplicationRoles(cmd.Context())
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print an application role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetApplicationRole(cmd.Context(), args[0])
			if err != nil {
				return a.fail(client, err)
			}
			if etag := resp.ETag(); etag != "" {
				cmd.PrintErrln("ETag:", etag)
			}
			return a.print(resp.Data)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up users and groups",
	}

	var expand []string
	get := &cobra.Command{
		Use:   "get <username>",
		Short: "Print a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			var ex []jira.UserExpand
			for _, e := range expand {
				ex = append(ex, jira.UserExpand(e))
			}
			resp, err := client.GetUserByUsername(cmd.Context(), args[0], ex...)
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}
	get.Flags().StringSliceVar(&expand, "expand", nil, "groups and/or applicationRoles")

	var inactive bool
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search users by username, name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			opts := jira.DefaultUserOptions()
			opts.IncludeInactive = inactive
			resp, err := client.SearchUsers(cmd.Context(), args[0], &opts, nil)
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}
	search.Flags().BoolVar(&inactive, "inactive", false, "include inactive users")

	var all bool
	group := &cobra.Command{
		Use:   "group <name>",
		Short: "List the members of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			var members []jira.User
			page := jira.DefaultPagination()
			for {
				resp, err := client.GetGroupMembers(cmd.Context(), args[0], nil, &page)
				if err != nil {
					return a.fail(client, err)
				}
				members = append(members, resp.Data.Users...)

				next, more := resp.Data.Pagination.Next()
				if !all || !more || len(resp.Data.Users) == 0 {
					break
				}
				page = next
			}
			return a.print(members)
		},
	}
	group.Flags().BoolVar(&all, "all", false, "follow every page")

	cmd.AddCommand(get, search, group)
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Inspect and release project versions",
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetVersion(cmd.Context(), args[0])
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}

	var projectID int64
	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a version in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.CreateVersion(cmd.Context(), &jira.Version{
				Name:        args[0],
				Description: description,
				ProjectID:   projectID,
			})
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}
	create.Flags().Int64Var(&projectID, "project-id", 0, "numeric project id")
	create.Flags().StringVar(&description, "description", "", "version description")
	_ = create.MarkFlagRequired("project-id")

	var releaseDate string
	release := &cobra.Command{
		Use:   "release <id>",
		Short: "Mark a version released",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			current, err := client.GetVersion(cmd.Context(), args[0])
			if err != nil {
				return a.fail(client, err)
			}
			v := current.Data
			v.Released = true
			if releaseDate != "" {
				v.ReleaseDate = releaseDate
			}
			resp, err := client.UpdateVersion(cmd.Context(), &v)
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}
	release.Flags().StringVar(&releaseDate, "date", "", "release date, YYYY-MM-DD")

	worklogs := &cobra.Command{
		Use:   "worklogs <id>...",
		Short: "Print worklogs by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("worklog id %q: %w", arg, err)
				}
				ids = append(ids, id)
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetWorklogs(cmd.Context(), ids)
			if err != nil {
				return a.fail(client, err)
			}
			return a.print(resp.Data)
		},
	}

	cmd.AddCommand(get, create, release, worklogs)
	return cmd
}
