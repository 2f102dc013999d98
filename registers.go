package x86dbg

import "github.com/sirupsen/logrus"

// Context group masks a Registers snapshot can be constructed with,
// mirroring the Windows CONTEXT_* flags (spec.md §4.1's "ALL, CONTROL,
// DEBUG_REGISTERS, ...").
const (
	ContextControl        ContextFlag = 1 << 0
	ContextInteger         ContextFlag = 1 << 1
	ContextSegments        ContextFlag = 1 << 2
	ContextFloatingPoint   ContextFlag = 1 << 3
	ContextDebugRegisters  ContextFlag = 1 << 4
	ContextExtendedRegisters ContextFlag = 1 << 5

	ContextFull ContextFlag = ContextControl | ContextInteger | ContextSegments
	ContextAll  ContextFlag = ContextFull | ContextFloatingPoint | ContextDebugRegisters | ContextExtendedRegisters
)

// Registers is a scoped CPU-context snapshot: constructed from a thread
// handle and a context-flags mask, mutated through Register/Flags/
// DebugStatus/DebugControl handles, and written back on Close only if
// something changed (spec.md §3, Register Snapshot; §4.1, write-back
// policy).
//
// Registers must not outlive the handler invocation that constructed it
// (spec.md §5, scoped acquisition) — Go has no destructors, so callers
// are expected to `defer regs.Close()` immediately after a successful
// NewRegisters, the same way the teacher's own code defers handle
// cleanup.
type Registers struct {
	kernel Kernel
	log    *logrus.Entry
	thread Handle
	flags  ContextFlag

	original CPUContext
	current  CPUContext
}

// NewRegisters reads a thread's CPU context and returns a scoped snapshot.
// A read failure is a hard (system) error, per spec.md §4.1.
func NewRegisters(kernel Kernel, log *logrus.Entry, thread Handle, flags ContextFlag) (*Registers, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	ctx, err := kernel.GetThreadContext(thread, flags)
	if err != nil {
		return nil, newSystemError("GetThreadContext", err)
	}
	return &Registers{
		kernel:   kernel,
		log:      log,
		thread:   thread,
		flags:    flags,
		original: ctx,
		current:  ctx,
	}, nil
}

// Close writes the mutated context back to the thread iff it differs
// from the context read at construction (spec.md §4.1, §8 "Register
// Snapshot idempotence"). A write-back failure is logged and swallowed:
// destructors must never fault the debug-event loop (spec.md §7).
func (r *Registers) Close() error {
	if r.current == r.original {
		return nil
	}
	if err := r.kernel.SetThreadContext(r.thread, r.current); err != nil {
		r.log.WithError(err).Warn("x86dbg: register write-back failed, discarding")
	}
	return nil
}

// Register returns a handle onto the named register.
func (r *Registers) Register(index RegisterIndex) Register {
	return Register{regs: r, index: index}
}

// Flags returns the EFLAGS bitfield sub-controller.
func (r *Registers) Flags() FlagRegister {
	return FlagRegister{regs: r}
}

// DebugStatus returns the DR6 bitfield sub-controller.
func (r *Registers) DebugStatus() DebugStatusRegister {
	return DebugStatusRegister{regs: r}
}

// DebugControl returns the DR7 bitfield sub-controller.
func (r *Registers) DebugControl() DebugControlRegister {
	return DebugControlRegister{regs: r}
}

// Get returns the raw 32-bit value of the named register.
func (r *Registers) Get(index RegisterIndex) uint32 {
	switch index {
	case EAX:
		return r.current.Eax
	case EBX:
		return r.current.Ebx
	case ECX:
		return r.current.Ecx
	case EDX:
		return r.current.Edx
	case ESP:
		return r.current.Esp
	case EBP:
		return r.current.Ebp
	case ESI:
		return r.current.Esi
	case EDI:
		return r.current.Edi
	case EIP:
		return r.current.Eip
	case EFLAGS:
		return r.current.EFlags
	case DebugDR0:
		return r.current.Dr0
	case DebugDR1:
		return r.current.Dr1
	case DebugDR2:
		return r.current.Dr2
	case DebugDR3:
		return r.current.Dr3
	case DebugDR6:
		return r.current.Dr6
	case DebugDR7:
		return r.current.Dr7
	default:
		panic("x86dbg: unknown register index")
	}
}

// Set overwrites the raw 32-bit value of the named register.
func (r *Registers) Set(index RegisterIndex, v uint32) {
	switch index {
	case EAX:
		r.current.Eax = v
	case EBX:
		r.current.Ebx = v
	case ECX:
		r.current.Ecx = v
	case EDX:
		r.current.Edx = v
	case ESP:
		r.current.Esp = v
	case EBP:
		r.current.Ebp = v
	case ESI:
		r.current.Esi = v
	case EDI:
		r.current.Edi = v
	case EIP:
		r.current.Eip = v
	case EFLAGS:
		r.current.EFlags = v
	case DebugDR0:
		r.current.Dr0 = v
	case DebugDR1:
		r.current.Dr1 = v
	case DebugDR2:
		r.current.Dr2 = v
	case DebugDR3:
		r.current.Dr3 = v
	case DebugDR6:
		r.current.Dr6 = v
	case DebugDR7:
		r.current.Dr7 = v
	default:
		panic("x86dbg: unknown register index")
	}
}
