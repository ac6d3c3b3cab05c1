package main

import (
	"os"
	"path/filepath"

	"github.com/amadigan/android-reboot/cli/rebootcli"
)

func main() {
	cli := rebootcli.New()

	if len(os.Args) > 0 {
		cli.Name = filepath.Base(os.Args[0])
	}

	if err := rebootcli.NewRootCommand(cli).Execute(); err != nil {
		os.Exit(cli.Report(err))
	}
}
