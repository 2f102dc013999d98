package x86dbg

import "github.com/sirupsen/logrus"

// StepCallback is invoked when a single-step or internal step completes.
type StepCallback func(t *Thread)

// Thread is spec.md §3's Thread entity: per-thread identity plus the
// single-step / internal-step bookkeeping the exception state machine
// drives (spec.md §4.2).
type Thread struct {
	kernel Kernel
	log    *logrus.Entry

	ID              uint32
	Handle          Handle
	EntryAddress    uintptr
	ThreadLocalBase uintptr

	singleStepping bool
	stepCallbacks  []StepCallback

	internalStepping     bool
	internalStepCallback StepCallback
}

// NewThread constructs a Thread record from a freshly observed
// CreateThread/CreateProcess debug event (spec.md §3 lifecycle).
func NewThread(kernel Kernel, log *logrus.Entry, id uint32, handle Handle, entry, tlsBase uintptr) *Thread {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Thread{kernel: kernel, log: log, ID: id, Handle: handle, EntryAddress: entry, ThreadLocalBase: tlsBase}
}

// Suspend delegates to the kernel (spec.md §4.2).
func (t *Thread) Suspend() error {
	return newSystemError("SuspendThread", t.kernel.SuspendThread(t.Handle))
}

// Resume delegates to the kernel (spec.md §4.2).
func (t *Thread) Resume() error {
	return newSystemError("ResumeThread", t.kernel.ResumeThread(t.Handle))
}

// StepInto arms a user single step with no callback.
func (t *Thread) StepInto() error {
	return t.StepIntoWithCallback(nil)
}

// StepIntoWithCallback arms the trap flag, marks single-stepping, and
// appends cb (if non-nil) to the FIFO single-step callback list
// (spec.md §4.2).
func (t *Thread) StepIntoWithCallback(cb StepCallback) error {
	regs, err := NewRegisters(t.kernel, t.log, t.Handle, ContextControl)
	if err != nil {
		return err
	}
	defer regs.Close()
	regs.Flags().SetTF(true)
	t.singleStepping = true
	if cb != nil {
		t.stepCallbacks = append(t.stepCallbacks, cb)
	}
	return nil
}

// InternalStep arms the trap flag for a debugger-initiated step whose
// callback re-arms a breakpoint (spec.md §4.2, §4.5). Only one internal
// step may be pending at a time; arming a new one replaces the previous
// callback.
func (t *Thread) InternalStep(cb StepCallback) error {
	regs, err := NewRegisters(t.kernel, t.log, t.Handle, ContextControl)
	if err != nil {
		return err
	}
	defer regs.Close()
	regs.Flags().SetTF(true)
	t.internalStepping = true
	t.internalStepCallback = cb
	return nil
}

// SetHardwareBreakpoint programs one DRn/DR7 pair on this thread
// (spec.md §4.2). Hardware breakpoints are programmed per thread; Process
// fans this call out across its whole thread table.
func (t *Thread) SetHardwareBreakpoint(addr uintptr, slot HardwareBreakpointSlot, access HardwareBreakpointAccess, size HardwareBreakpointSize) error {
	regs, err := NewRegisters(t.kernel, t.log, t.Handle, ContextDebugRegisters)
	if err != nil {
		return err
	}
	defer regs.Close()
	regs.Register(drRegisterIndex(slot)).Set(uint32(addr))
	ctl := regs.DebugControl()
	ctl.SetRW(slot, access)
	ctl.SetLEN(slot, size)
	ctl.SetL(slot, true)
	return nil
}

// DeleteHardwareBreakpoint clears DRn's address and DR7's Ln bit on this
// thread (spec.md §4.2).
func (t *Thread) DeleteHardwareBreakpoint(slot HardwareBreakpointSlot) error {
	regs, err := NewRegisters(t.kernel, t.log, t.Handle, ContextDebugRegisters)
	if err != nil {
		return err
	}
	defer regs.Close()
	regs.Register(drRegisterIndex(slot)).Set(0)
	regs.DebugControl().Clear(slot)
	return nil
}

func drRegisterIndex(slot HardwareBreakpointSlot) RegisterIndex {
	switch slot {
	case DR0:
		return DebugDR0
	case DR1:
		return DebugDR1
	case DR2:
		return DebugDR2
	case DR3:
		return DebugDR3
	default:
		panic("x86dbg: unknown hardware breakpoint slot")
	}
}

// ExecuteInternalStepCallback invokes the stored internal-step callback,
// if any, then clears it (spec.md §4.2).
func (t *Thread) ExecuteInternalStepCallback() {
	t.internalStepping = false
	cb := t.internalStepCallback
	t.internalStepCallback = nil
	if cb != nil {
		cb(t)
	}
}

// ExecuteSingleStepCallbacks invokes all queued user single-step
// callbacks in FIFO order, then clears the list (spec.md §4.2).
func (t *Thread) ExecuteSingleStepCallbacks() {
	t.singleStepping = false
	cbs := t.stepCallbacks
	t.stepCallbacks = nil
	for _, cb := range cbs {
		cb(t)
	}
}

// HasInternalStepPending reports whether an internal step was armed and
// has not yet fired.
func (t *Thread) HasInternalStepPending() bool { return t.internalStepping }

// HasSingleStepPending reports whether a user single step was armed and
// has not yet fired.
func (t *Thread) HasSingleStepPending() bool { return t.singleStepping }
