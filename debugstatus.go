package x86dbg

// DR6 bit positions (Intel SDM Vol 3B, §17.2.6). BD/BS/BT are preserved
// on write-back but not exposed, per spec.md §4.1.
const (
	dr6BitB0 = 0
	dr6BitB1 = 1
	dr6BitB2 = 2
	dr6BitB3 = 3
	dr6BitBD = 13
	dr6BitBS = 14
	dr6BitBT = 15
)

// DebugStatusRegister is the DR6 bitfield sub-controller (spec.md §4.1).
type DebugStatusRegister struct {
	regs *Registers
}

func (d DebugStatusRegister) bitForSlot(slot HardwareBreakpointSlot) int {
	switch slot {
	case DR0:
		return dr6BitB0
	case DR1:
		return dr6BitB1
	case DR2:
		return dr6BitB2
	case DR3:
		return dr6BitB3
	default:
		panic("x86dbg: unknown hardware breakpoint slot")
	}
}

// B returns whether the given slot's breakpoint condition was detected.
func (d DebugStatusRegister) B(slot HardwareBreakpointSlot) bool {
	return flagBit(d.regs.Get(DebugDR6), d.bitForSlot(slot))
}

// SetB sets or clears the given slot's breakpoint-hit bit.
func (d DebugStatusRegister) SetB(slot HardwareBreakpointSlot, v bool) {
	bit := d.bitForSlot(slot)
	d.regs.Set(DebugDR6, setFlagBit(d.regs.Get(DebugDR6), bit, v))
}

// Reset clears B0..B3, the only bits this controller ever mutates. It is
// used by the debug-event loop after every event (spec.md §4.4 step 7).
func (d DebugStatusRegister) Reset() {
	v := d.regs.Get(DebugDR6)
	for _, bit := range []int{dr6BitB0, dr6BitB1, dr6BitB2, dr6BitB3} {
		v = setFlagBit(v, bit, false)
	}
	d.regs.Set(DebugDR6, v)
}
