package x86dbg

// FindFreeHardwareBreakpointSlot returns the lowest-indexed free debug-
// address register, or false if all four are occupied (spec.md §4.3,
// §8 scenario 6).
func (p *Process) FindFreeHardwareBreakpointSlot() (HardwareBreakpointSlot, bool) {
	for _, slot := range []HardwareBreakpointSlot{DR0, DR1, DR2, DR3} {
		if _, occupied := p.hardwareSlotAddress[slot]; !occupied {
			return slot, true
		}
	}
	return 0, false
}

// SetHardwareBreakpoint programs slot on every thread currently in the
// process's thread table, then records the breakpoint and its slot
// occupancy (spec.md §4.3). Fails if addr is invalid memory or already
// holds a software breakpoint (spec.md §3 invariant 1).
//
// Hardware breakpoints are programmed per thread at set time; a thread
// created afterwards does not automatically receive this breakpoint from
// this call alone — Debugger.onCreateThread replays the full table onto new
// threads (spec.md §9 Open Question, resolved in SPEC_FULL.md §4).
func (p *Process) SetHardwareBreakpoint(addr uintptr, slot HardwareBreakpointSlot, access HardwareBreakpointAccess, size HardwareBreakpointSize, singleShoot bool, cb BreakpointCallback) error {
	if !p.ValidMemory(addr) {
		return ErrInvalidAddress
	}
	if _, occupied := p.softwareBreakpoints[addr]; occupied {
		return ErrBreakpointKindCollision
	}
	if _, exists := p.hardwareBreakpoints[addr]; exists {
		return nil
	}

	for _, t := range p.threads {
		if err := t.SetHardwareBreakpoint(addr, slot, access, size); err != nil {
			return err
		}
	}

	p.hardwareBreakpoints[addr] = &HardwareBreakpoint{
		Address:     addr,
		Slot:        slot,
		Access:      access,
		Size:        size,
		SingleShoot: singleShoot,
	}
	p.hardwareSlotAddress[slot] = addr
	if cb != nil {
		p.pendingCallbacks[BreakpointCallbackKey{Kind: Hardware, Address: addr}] = cb
	}
	return nil
}

// DeleteHardwareBreakpoint clears the slot on every thread, then erases
// the table/occupancy/callback entries. Returns whether an entry existed
// (spec.md §4.3).
func (p *Process) DeleteHardwareBreakpoint(addr uintptr) (bool, error) {
	bp, ok := p.hardwareBreakpoints[addr]
	if !ok {
		return false, nil
	}
	for _, t := range p.threads {
		if err := t.DeleteHardwareBreakpoint(bp.Slot); err != nil {
			return false, err
		}
	}
	delete(p.hardwareBreakpoints, addr)
	delete(p.hardwareSlotAddress, bp.Slot)
	delete(p.pendingCallbacks, BreakpointCallbackKey{Kind: Hardware, Address: addr})
	return true, nil
}

// FindHardwareBreakpoint is a snapshot lookup by address.
func (p *Process) FindHardwareBreakpoint(addr uintptr) (*HardwareBreakpoint, bool) {
	bp, ok := p.hardwareBreakpoints[addr]
	return bp, ok
}

// FindHardwareBreakpointBySlot resolves the occupant of a slot, if any —
// the lookup side of the weak occupancy→table reference (spec.md §9).
func (p *Process) FindHardwareBreakpointBySlot(slot HardwareBreakpointSlot) (*HardwareBreakpoint, bool) {
	addr, ok := p.hardwareSlotAddress[slot]
	if !ok {
		return nil, false
	}
	return p.FindHardwareBreakpoint(addr)
}

// replayHardwareBreakpoints programs every currently active hardware
// breakpoint onto a single newly created thread (spec.md §9 Open
// Question resolution: new threads inherit the process's hardware
// breakpoint table).
func (p *Process) replayHardwareBreakpoints(t *Thread) error {
	for _, bp := range p.hardwareBreakpoints {
		if err := t.SetHardwareBreakpoint(bp.Address, bp.Slot, bp.Access, bp.Size); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteBreakpointCallback looks up the pending callback for key; if
// found, along with the matching breakpoint record, invokes it and
// removes the pending entry (one-shot dispatch, spec.md §4.3). Memory-
// kind keys are never registered by this package (spec.md §9, extension
// point) and so never dispatch.
func (p *Process) ExecuteBreakpointCallback(key BreakpointCallbackKey) {
	cb, ok := p.pendingCallbacks[key]
	if !ok {
		return
	}
	switch key.Kind {
	case Software:
		if _, ok := p.softwareBreakpoints[key.Address]; !ok {
			return
		}
	case Hardware:
		if _, ok := p.hardwareBreakpoints[key.Address]; !ok {
			return
		}
	default:
		return
	}
	delete(p.pendingCallbacks, key)
	cb(key.Kind, key.Address)
}
