package cmds

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ravendbg/x86dbg"
	"github.com/ravendbg/x86dbg/winkernel"
)

func attachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <pid>",
		Short: "Attach to a running 32-bit x86 process",
		Args:  cobra.ExactArgs(1),
		RunE:  runAttach,
	}
}

func runAttach(cmd *cobra.Command, args []string) error {
	stop := startProfiling()
	defer stop()

	pid, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return err
	}

	log := logrus.NewEntry(logrus.StandardLogger())
	kernel := winkernel.New()
	dbg := x86dbg.NewDebugger(kernel, log)
	dbg.Hooks.AttachProcess = func(info x86dbg.CreateProcessInfo, process *x86dbg.Process) {
		logrus.Infof("x86dbg: attached to process %d", process.ID)
	}
	dbg.Hooks.InternalLoopError = func(err error) {
		logrus.WithError(err).Error("x86dbg: internal loop error")
	}

	if err := dbg.Attach(uint32(pid)); err != nil {
		return err
	}

	if promptFlag {
		go func() {
			waitForDetachPrompt()
			dbg.Detach()
		}()
	}

	return dbg.Start()
}
