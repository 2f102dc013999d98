package x86dbg

// RegisterIndex names one of the sixteen registers the Register
// Controller exposes (spec.md §4.1).
type RegisterIndex int

const (
	EAX RegisterIndex = iota
	EBX
	ECX
	EDX
	ESP
	EBP
	ESI
	EDI
	EIP
	EFLAGS
	DebugDR0
	DebugDR1
	DebugDR2
	DebugDR3
	DebugDR6
	DebugDR7

	registerCount
)

// Register is a handle onto one named register of a Registers snapshot.
// It carries arithmetic shortcuts and value equality, matching the
// source's lightweight register-reference type (spec.md §4.1).
type Register struct {
	regs  *Registers
	index RegisterIndex
}

// Get returns the register's current 32-bit value.
func (r Register) Get() uint32 { return r.regs.Get(r.index) }

// Set overwrites the register's 32-bit value.
func (r Register) Set(v uint32) { r.regs.Set(r.index, v) }

// Reset zeroes the register.
func (r Register) Reset() { r.regs.Set(r.index, 0) }

// Add adds delta to the register's value.
func (r Register) Add(delta uint32) { r.Set(r.Get() + delta) }

// Sub subtracts delta from the register's value.
func (r Register) Sub(delta uint32) { r.Set(r.Get() - delta) }

// Inc increments the register by one.
func (r Register) Inc() { r.Add(1) }

// Dec decrements the register by one.
func (r Register) Dec() { r.Sub(1) }

// Equal compares the *current* values of two register handles, not their
// identity (spec.md §4.1, "Equality compares current values").
func (r Register) Equal(other Register) bool { return r.Get() == other.Get() }
