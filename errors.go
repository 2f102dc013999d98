package x86dbg

import "errors"

// DomainError is a typed form for a precondition violated by the caller
// (spec.md §7, "Domain error"). The package's own precondition failures —
// invalid address, breakpoint-kind collision, a safe write over a
// software breakpoint — are reported with the sentinel errors below, not
// with DomainError. Callers outside the loop see them directly; one
// raised inside the loop (for example while planting the entry
// breakpoint) is routed to Hooks.InternalLoopError like any other error.
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return "x86dbg: " + e.Op + ": " + e.Msg
}

func domainErrorf(op, msg string) error {
	return &DomainError{Op: op, Msg: msg}
}

var (
	// ErrInvalidAddress is returned when a breakpoint operation targets
	// memory that cannot be probed (spec.md §4.3, valid_memory).
	ErrInvalidAddress = errors.New("address is not valid memory in the target")

	// ErrBreakpointKindCollision is returned when a caller attempts to
	// set a software or hardware breakpoint at an address already
	// occupied by the other kind (spec.md §3 invariant 1).
	ErrBreakpointKindCollision = errors.New("address already holds a breakpoint of the other kind")

	// ErrNoFreeHardwareSlot reports that all four debug-address registers
	// are already occupied (spec.md §8 scenario 6). No function in this
	// package returns it: FindFreeHardwareBreakpointSlot signals exhaustion
	// by returning false, and SetHardwareBreakpoint takes its slot from the
	// caller.
	ErrNoFreeHardwareSlot = errors.New("no free hardware breakpoint slot")

	// ErrUnsafeWriteOverlapsBreakpoint is returned by a safe write whose
	// range intersects a software breakpoint (spec.md §4.3, safe write).
	ErrUnsafeWriteOverlapsBreakpoint = errors.New("write range overlaps a software breakpoint")
)
