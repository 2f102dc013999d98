package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ravendbg/x86dbg/cmd/x86dbg/cmds"
)

func main() {
	logrus.SetFormatter(cmds.NewLogFormatter())
	logrus.SetOutput(cmds.LogOutput())

	if err := cmds.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
