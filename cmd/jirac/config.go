package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jirac/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change jirac settings",
	}

	var local bool
	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the global (or local) config file",
		Example: `  jirac config set url https://example.atlassian.net
  jirac config set auth.type api_token
  jirac config set headers.X-Atlassian-Token no-check --local`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if local {
				root := a.newResolver().GitRoot()
				if err := a.saveConfig.SaveLocal(root, key, value); err != nil {
					return err
				}
			} else if err := a.saveConfig.SaveGlobal(key, value); err != nil {
				return err
			}
			_, err := fmt.Fprintf(a.stdout, "%s = %s\n", key, config.Redact(key, value))
			return err
		},
	}
	set.Flags().BoolVar(&local, "local", false, "write .jirac.yaml in the git root instead")

	unset := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting from the global config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.saveConfig.DeleteGlobalKey(args[0])
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print resolved settings and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := a.resolve()
			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
			for _, key := range resolved.Keys() {
				value, source := resolved.GetWithSource(key)
				fmt.Fprintf(w, "%s\t%s\t%s\n", key, config.Redact(key, value), source)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(set, unset, show)
	return cmd
}
