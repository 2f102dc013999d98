package x86dbg

// SetSoftwareBreakpoint plants a 0xCC at addr and records the original
// byte so the breakpoint can be removed cleanly later (spec.md §4.3).
// Fails if addr is not valid memory, or if a hardware breakpoint already
// occupies it (spec.md §3 invariant 1).
func (p *Process) SetSoftwareBreakpoint(addr uintptr, singleShoot bool, cb BreakpointCallback) error {
	if !p.ValidMemory(addr) {
		return ErrInvalidAddress
	}
	if _, occupied := p.hardwareBreakpoints[addr]; occupied {
		return ErrBreakpointKindCollision
	}
	if _, exists := p.softwareBreakpoints[addr]; exists {
		return nil
	}

	original, err := p.ReadMemoryUnsafe(addr, 1)
	if err != nil {
		return err
	}
	if err := p.WriteMemoryUnsafe(addr, []byte{INT3}); err != nil {
		return err
	}

	p.softwareBreakpoints[addr] = &SoftwareBreakpoint{
		Address:      addr,
		OriginalByte: original[0],
		SingleShoot:  singleShoot,
	}
	if cb != nil {
		p.pendingCallbacks[BreakpointCallbackKey{Kind: Software, Address: addr}] = cb
	}
	return nil
}

// DeleteSoftwareBreakpoint restores the original byte and removes the
// table/callback entries. Returns whether an entry existed (spec.md
// §4.3).
func (p *Process) DeleteSoftwareBreakpoint(addr uintptr) (bool, error) {
	bp, ok := p.softwareBreakpoints[addr]
	if !ok {
		return false, nil
	}
	if err := p.WriteMemoryUnsafe(addr, []byte{bp.OriginalByte}); err != nil {
		return false, err
	}
	delete(p.softwareBreakpoints, addr)
	delete(p.pendingCallbacks, BreakpointCallbackKey{Kind: Software, Address: addr})
	return true, nil
}

// FindSoftwareBreakpoint is a snapshot lookup (spec.md §4.3).
func (p *Process) FindSoftwareBreakpoint(addr uintptr) (*SoftwareBreakpoint, bool) {
	bp, ok := p.softwareBreakpoints[addr]
	return bp, ok
}
