// Package cmds builds the x86dbg command-line front end: a thin driver
// over the core debug-event loop (launch, attach, gendocs), following the
// teacher's cmd/dlv + cmds layout (cobra command tree, one file per
// subcommand).
package cmds

import (
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	profileFlag string
	promptFlag  bool
)

// New builds the root x86dbg command.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:   "x86dbg",
		Short: "A user-mode debugger for 32-bit x86 processes on Windows",
	}

	root.PersistentFlags().StringVar(&profileFlag, "profile", "", "enable CPU profiling, writing output to the given directory")
	root.PersistentFlags().BoolVar(&promptFlag, "prompt", false, "wait for Enter on the controlling terminal before detaching")

	root.AddCommand(launchCommand())
	root.AddCommand(attachCommand())
	root.AddCommand(gendocsCommand())

	return root
}

// startProfiling wraps the session in CPU profiling when --profile names
// a directory, returning a stop function the caller must defer.
func startProfiling() func() {
	if profileFlag == "" {
		return func() {}
	}
	stopper := profile.Start(profile.CPUProfile, profile.ProfilePath(profileFlag), profile.NoShutdownHook)
	return stopper.Stop
}
