// Command jirac is a small command-line front end for the jira package.
package main

import (
	"fmt"
	"os"

	clierrors "github.com/randalmurphal/jirac/errors"
)

func main() {
	root := newRootCmd(newApp(os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(clierrors.ExitCode(err))
	}
}
