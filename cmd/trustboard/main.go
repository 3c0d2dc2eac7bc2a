// Command trustboard browses health influencer trust scores.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/trustboard/internal/cli"
	"github.com/rshade/trustboard/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}

// exitCode prints err and maps it to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
