// Command iohookdemo exercises the iohook library's capture, dispatch,
// and synthesis paths from the command line.
package main

import (
	"os"

	"github.com/zhaoq-v/iohook/cmd/iohookdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
