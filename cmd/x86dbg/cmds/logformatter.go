package cmds

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// NewLogFormatter returns a logrus formatter with colour enabled only
// when stderr is a real console, matching the teacher's CLI logging
// setup (cmd/dlv's logrus-based output).
func NewLogFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		FullTimestamp: true,
	}
}

// LogOutput returns stderr wrapped for ANSI colour support on legacy
// Windows consoles that don't natively interpret escape codes.
func LogOutput() io.Writer {
	return colorable.NewColorableStderr()
}
