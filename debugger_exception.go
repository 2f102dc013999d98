package x86dbg

// onException dispatches an Exception debug event to the software-
// breakpoint, single-step, or access-violation handler by exception
// code (spec.md §4.5). If continueStatus is still "not handled" after
// dispatch, cbUnhandledException fires.
func (d *Debugger) onException(event DebugEvent) error {
	info := event.Exception
	d.Hooks.firePreException(info.Record, info.FirstChance)

	var err error
	switch info.Record.Code {
	case ExceptionBreakpoint:
		err = d.onSoftwareBreakpointException(info.Record)
	case ExceptionSingleStep:
		err = d.onSingleStepException(info.Record)
	case ExceptionAccessViolation:
		d.onAccessViolationException(info.Record)
	}

	if d.continueStatus == ContinueStatusNotHandled {
		d.Hooks.fireUnhandledException(info.Record, info.FirstChance)
	}
	return err
}

// onSoftwareBreakpointException implements spec.md §4.5's software-
// breakpoint handler.
func (d *Debugger) onSoftwareBreakpointException(record ExceptionRecord) error {
	process := d.currentProcess
	thread := d.currentThread
	if process == nil || thread == nil {
		return nil
	}

	bp, found := process.FindSoftwareBreakpoint(record.Address)
	if !found {
		if !process.HitSystemBreakpoint() {
			process.MarkSystemBreakpointHit()
			d.continueStatus = ContinueStatusHandled
			d.Hooks.fireSystemBreakpoint(process)
		}
		// A breakpoint exception at an address we have no record of,
		// once the system breakpoint has already been consumed, is a
		// foreign INT3 (e.g. planted by the target itself); left
		// unhandled so cbUnhandledException can surface it.
		return nil
	}

	regs, err := NewRegisters(d.Kernel, d.Log, thread.Handle, ContextControl)
	if err != nil {
		return err
	}
	regs.Register(EIP).Set(uint32(bp.Address))
	if err := regs.Close(); err != nil {
		return err
	}

	bpCopy := *bp
	// Restore the original byte so the instruction re-executes correctly;
	// the table entry (and its pending callback, if any) stays in place
	// until the single-shoot/rearm decision below.
	if err := process.WriteMemoryUnsafe(bpCopy.Address, []byte{bpCopy.OriginalByte}); err != nil {
		return err
	}

	d.continueStatus = ContinueStatusHandled
	d.Hooks.fireBreakpoint(Software, bpCopy.Address)
	if bpCopy.Address == thread.EntryAddress {
		d.Hooks.fireEntryBreakpoint(process)
	}

	if bpCopy.SingleShoot {
		if _, err := process.DeleteSoftwareBreakpoint(bpCopy.Address); err != nil {
			return err
		}
	} else {
		addr := bpCopy.Address
		if err := thread.InternalStep(func(t *Thread) {
			if _, exists := process.FindSoftwareBreakpoint(addr); !exists {
				return
			}
			process.WriteMemoryUnsafe(addr, []byte{INT3})
		}); err != nil {
			return err
		}
	}

	process.ExecuteBreakpointCallback(BreakpointCallbackKey{Kind: Software, Address: bpCopy.Address})
	return nil
}

// onSingleStepException implements spec.md §4.5's single-step handler.
// A thread may have both an internal step and a user single step pending
// at once; both branches run, internal first.
func (d *Debugger) onSingleStepException(record ExceptionRecord) error {
	thread := d.currentThread
	if thread == nil {
		return nil
	}

	ranInternalOrUser := false

	if thread.HasInternalStepPending() {
		d.continueStatus = ContinueStatusHandled
		thread.ExecuteInternalStepCallback()
		ranInternalOrUser = true
	}

	if thread.HasSingleStepPending() {
		d.continueStatus = ContinueStatusHandled
		d.Hooks.fireStep(thread)
		thread.ExecuteSingleStepCallbacks()
		ranInternalOrUser = true
	}

	if !ranInternalOrUser {
		return d.onHardwareBreakpointException(record)
	}
	return nil
}

// onHardwareBreakpointException implements spec.md §4.5's hardware-
// breakpoint handler.
func (d *Debugger) onHardwareBreakpointException(record ExceptionRecord) error {
	process := d.currentProcess
	thread := d.currentThread
	if process == nil || thread == nil {
		return nil
	}

	regs, err := NewRegisters(d.Kernel, d.Log, thread.Handle, ContextDebugRegisters)
	if err != nil {
		return err
	}
	defer regs.Close()

	slot, matched := matchHardwareSlot(regs, record.Address)
	if !matched {
		return nil // spurious
	}

	bp, found := process.FindHardwareBreakpointBySlot(slot)
	if !found || bp.Slot != slot {
		panic("x86dbg: hardware breakpoint exception matched a slot with no table entry")
	}

	d.continueStatus = ContinueStatusHandled
	d.Hooks.fireBreakpoint(Hardware, bp.Address)

	if err := thread.DeleteHardwareBreakpoint(slot); err != nil {
		return err
	}

	if bp.SingleShoot {
		if _, err := process.DeleteHardwareBreakpoint(bp.Address); err != nil {
			return err
		}
	} else {
		addr, access, size := bp.Address, bp.Access, bp.Size
		if err := thread.InternalStep(func(t *Thread) {
			if _, exists := process.FindHardwareBreakpoint(addr); !exists {
				return
			}
			t.SetHardwareBreakpoint(addr, slot, access, size)
		}); err != nil {
			return err
		}
	}

	process.ExecuteBreakpointCallback(BreakpointCallbackKey{Kind: Hardware, Address: bp.Address})
	return nil
}

// matchHardwareSlot determines which debug-address register an
// exception address belongs to, first by direct DRn comparison, falling
// back to the DR6 hit bits (spec.md §4.5).
func matchHardwareSlot(regs *Registers, address uintptr) (HardwareBreakpointSlot, bool) {
	drValues := map[HardwareBreakpointSlot]uint32{
		DR0: regs.Get(DebugDR0),
		DR1: regs.Get(DebugDR1),
		DR2: regs.Get(DebugDR2),
		DR3: regs.Get(DebugDR3),
	}
	for _, slot := range []HardwareBreakpointSlot{DR0, DR1, DR2, DR3} {
		if uintptr(drValues[slot]) == address {
			return slot, true
		}
	}
	status := regs.DebugStatus()
	for _, slot := range []HardwareBreakpointSlot{DR0, DR1, DR2, DR3} {
		if status.B(slot) {
			return slot, true
		}
	}
	return 0, false
}

// onAccessViolationException is the memory-watch extension point
// (spec.md §1, §9): declared but unimplemented. Real access-violation
// handling (BreakpointType Memory) is future work.
func (d *Debugger) onAccessViolationException(record ExceptionRecord) {
	_ = record
}
