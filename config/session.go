// Package config loads an x86dbg launch session description, the
// ambient configuration layer SPEC_FULL.md §4.7 adds around the core
// (spec.md's core has no CLI/config surface of its own).
package config

import (
	"os"

	"github.com/cosiner/argv"
	"gopkg.in/yaml.v2"
)

// Breakpoint is one initial breakpoint to arm once the entry breakpoint
// fires.
type Breakpoint struct {
	Address     uint32 `yaml:"address"`
	SingleShoot bool   `yaml:"single_shoot"`
}

// Session describes a target to launch under the debugger.
type Session struct {
	FilePath         string       `yaml:"file_path"`
	CmdLine          string       `yaml:"cmd_line"`
	CurrentDirectory string       `yaml:"current_directory"`
	StartSuspended   bool         `yaml:"start_suspended"`
	Breakpoints      []Breakpoint `yaml:"breakpoints"`
}

// Load reads and parses a session file (x86dbg.yaml by convention).
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Argv splits the session's free-form command-line string into argv,
// honouring quoting. Neither Load nor the CLI calls it: the launch
// command hands CmdLine (or --args) to the kernel as a single string.
func (s *Session) Argv() ([]string, error) {
	if s.CmdLine == "" {
		return nil, nil
	}
	groups, err := argv.Argv(s.CmdLine, nil, nil)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups[0], nil
}
