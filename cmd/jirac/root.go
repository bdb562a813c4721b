package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/jirac/config"
	clierrors "github.com/randalmurphal/jirac/errors"
	"github.com/randalmurphal/jirac/jira"
)

// app carries the state shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// newResolver is replaced in tests to pin config file paths.
	newResolver func() *config.Resolver
	saveConfig  config.SaveConfig

	flags struct {
		url        string
		authType   string
		apiVersion string
		timeout    string
		verbose    bool
		metrics    bool
	}

	registry *prometheus.Registry
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		stdout:     stdout,
		stderr:     stderr,
		saveConfig: config.DefaultSaveConfig(),
	}
	a.newResolver = func() *config.Resolver {
		rc := config.DefaultResolverConfig()
		rc.ErrWriter = a.stderr
		return config.NewResolver(rc)
	}
	return a
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "jirac",
		Short:         "Query and update Jira through its REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.dumpMetrics()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.url, "url", "", "Jira base URL (overrides config url)")
	pf.StringVar(&a.flags.authType, "auth-type", "", "basic, api_token, bearer, pat or oauth2")
	pf.StringVar(&a.flags.apiVersion, "api-version", "", "REST API version, 2 or 3")
	pf.StringVar(&a.flags.timeout, "timeout", "", "per-request timeout, e.g. 30s")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log every request to stderr")
	pf.BoolVar(&a.flags.metrics, "metrics", false, "print request metrics to stderr on exit")

	root.AddCommand(
		newGetCmd(a),
		newIssueCmd(a),
		newProjectCmd(a),
		newRoleCmd(a),
		newUserCmd(a),
		newVersionCmd(a),
		newConfigCmd(a),
	)
	return root
}

// resolve merges config sources with the persistent flags.
func (a *app) resolve() *config.Resolved {
	return a.newResolver().ResolveWithFlags(map[string]string{
		config.KeyURL:         a.flags.url,
		config.KeyAuthType:    a.flags.authType,
		config.KeyAPIVersion:  a.flags.apiVersion,
		config.KeyHTTPTimeout: a.flags.timeout,
	})
}

// client builds a Jira client from the resolved configuration.
func (a *app) client() (*jira.Client, error) {
	resolved := a.resolve()
	if resolved.Get(config.KeyURL) == "" {
		return nil, clierrors.NewNotConfiguredError()
	}

	cfg, err := jira.ConfigFromMap(resolved.Tree())
	if err != nil {
		return nil, err
	}

	opts := []jira.ClientOption{jira.WithLogger(a.logger())}
	if a.flags.metrics {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, jira.WithMetrics(jira.NewMetrics(a.registry)))
	}

	client, err := jira.NewClientFromConfig(cfg, opts...)
	if err != nil {
		return nil, clierrors.Wrap(err)
	}
	return client, nil
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// fail wraps a pipeline error for display.
func (a *app) fail(client *jira.Client, err error) error {
	return clierrors.Wrap(err, clierrors.WithServerURL(client.Host()))
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

func (a *app) dumpMetrics() {
	if a.registry == nil {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(a.stderr, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				avg := time.Duration(0)
				if h.GetSampleCount() > 0 {
					avg = time.Duration(h.GetSampleSum() / float64(h.GetSampleCount()) * float64(time.Second))
				}
				fmt.Fprintf(a.stderr, "%s%s count=%d avg=%s\n", mf.GetName(), labels, h.GetSampleCount(), avg)
			}
		}
	}
}
