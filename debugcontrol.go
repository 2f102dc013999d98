package x86dbg

// DR7 bit layout (Intel SDM Vol 3B, §17.2.4): local/global enable pairs
// in bits 0-7, LE/GE at 8/9, GD at 13, then four 4-bit RWn/LENn fields
// starting at bit 16.
const (
	dr7BitGD = 13
)

func dr7LBit(slot HardwareBreakpointSlot) int { return 2 * int(slot) }
func dr7GBit(slot HardwareBreakpointSlot) int { return 2*int(slot) + 1 }
func dr7RWShift(slot HardwareBreakpointSlot) uint { return 16 + uint(4*int(slot)) }
func dr7LENShift(slot HardwareBreakpointSlot) uint { return 16 + uint(4*int(slot)) + 2 }

// DebugControlRegister is the DR7 bitfield sub-controller (spec.md §4.1).
type DebugControlRegister struct {
	regs *Registers
}

// L returns the local-enable bit for the given slot.
func (d DebugControlRegister) L(slot HardwareBreakpointSlot) bool {
	return flagBit(d.regs.Get(DebugDR7), dr7LBit(slot))
}

// SetL sets or clears the local-enable bit for the given slot.
func (d DebugControlRegister) SetL(slot HardwareBreakpointSlot, v bool) {
	d.regs.Set(DebugDR7, setFlagBit(d.regs.Get(DebugDR7), dr7LBit(slot), v))
}

// G returns the global-enable bit for the given slot (preserved, not
// used by this debugger, which only ever programs local breakpoints).
func (d DebugControlRegister) G(slot HardwareBreakpointSlot) bool {
	return flagBit(d.regs.Get(DebugDR7), dr7GBit(slot))
}

// GD returns the general-detect bit (preserved on write-back).
func (d DebugControlRegister) GD() bool {
	return flagBit(d.regs.Get(DebugDR7), dr7BitGD)
}

func twoBitField(v uint32, shift uint) uint32 {
	return (v >> shift) & 0b11
}

func setTwoBitField(v uint32, shift uint, field uint32) uint32 {
	if field > 0b11 {
		panic("x86dbg: DR7 field does not fit in 2 bits")
	}
	mask := uint32(0b11) << shift
	return (v &^ mask) | (field << shift)
}

// RW returns the access-type encoding programmed for the given slot.
func (d DebugControlRegister) RW(slot HardwareBreakpointSlot) HardwareBreakpointAccess {
	return HardwareBreakpointAccess(twoBitField(d.regs.Get(DebugDR7), dr7RWShift(slot)))
}

// SetRW programs the access-type encoding for the given slot. Panics if
// access does not fit in 2 bits (spec.md §4.1, "must assert the value
// fits in 2 bits") — every defined HardwareBreakpointAccess constant
// does, so this only fires on a caller-constructed out-of-range value.
func (d DebugControlRegister) SetRW(slot HardwareBreakpointSlot, access HardwareBreakpointAccess) {
	d.regs.Set(DebugDR7, setTwoBitField(d.regs.Get(DebugDR7), dr7RWShift(slot), uint32(access)))
}

// LEN returns the operand-size encoding programmed for the given slot.
func (d DebugControlRegister) LEN(slot HardwareBreakpointSlot) HardwareBreakpointSize {
	return HardwareBreakpointSize(twoBitField(d.regs.Get(DebugDR7), dr7LENShift(slot)))
}

// SetLEN programs the operand-size encoding for the given slot.
func (d DebugControlRegister) SetLEN(slot HardwareBreakpointSlot, size HardwareBreakpointSize) {
	d.regs.Set(DebugDR7, setTwoBitField(d.regs.Get(DebugDR7), dr7LENShift(slot), uint32(size)))
}

// Clear disables the given slot (clears L, RW, and LEN for it), used by
// delete_hardware_breakpoint (spec.md §4.2).
func (d DebugControlRegister) Clear(slot HardwareBreakpointSlot) {
	d.SetL(slot, false)
	d.SetRW(slot, 0)
	d.SetLEN(slot, 0)
}
