package cmds

import (
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

// waitForDetachPrompt blocks for Enter on the controlling terminal before
// returning, used when --prompt is set, as a thin operator control (not a
// scripting front end — spec.md's CLI remains out of the core's scope).
func waitForDetachPrompt() {
	state := liner.NewLiner()
	defer state.Close()
	if _, err := state.Prompt("press enter to detach> "); err != nil {
		logrus.WithError(err).Debug("x86dbg: detach prompt read failed")
	}
}
