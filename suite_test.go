package x86dbg

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// TestX86dbgSuite bootstraps the ginkgo integration suite
// (debugger_loop_test.go), the dual test-framework setup SPEC_FULL.md
// §4.7 describes alongside the table-driven testify suites in this
// package's other _test.go files.
func TestX86dbgSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "x86dbg event-dispatch loop suite")
}
