package x86dbg

import "github.com/sirupsen/logrus"

// CreationInfo is the immutable snapshot of creation metadata a Process
// is constructed with (spec.md §3).
type CreationInfo struct {
	ImageBase    uintptr
	ImageHandle  Handle
	EntryAddress uintptr
}

// Process is spec.md §3's Process entity.
type Process struct {
	kernel Kernel
	log    *logrus.Entry

	ID     uint32
	Handle Handle

	MainThreadID uint32
	Creation     CreationInfo

	hitSystemBreakpoint bool

	threads map[uint32]*Thread

	softwareBreakpoints map[uintptr]*SoftwareBreakpoint
	hardwareBreakpoints map[uintptr]*HardwareBreakpoint

	// hardwareSlotAddress holds a weak back-reference from slot to the
	// address occupying it; key presence in this map disambiguates
	// a legitimately-zero address from "free" (spec.md §9).
	hardwareSlotAddress map[HardwareBreakpointSlot]uintptr

	pendingCallbacks map[BreakpointCallbackKey]BreakpointCallback
}

// NewProcess constructs a Process record from a CreateProcess debug
// event (spec.md §3 lifecycle).
func NewProcess(kernel Kernel, log *logrus.Entry, id uint32, handle Handle, mainThreadID uint32, creation CreationInfo) *Process {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Process{
		kernel:              kernel,
		log:                 log,
		ID:                  id,
		Handle:              handle,
		MainThreadID:        mainThreadID,
		Creation:            creation,
		threads:             make(map[uint32]*Thread),
		softwareBreakpoints: make(map[uintptr]*SoftwareBreakpoint),
		hardwareBreakpoints: make(map[uintptr]*HardwareBreakpoint),
		hardwareSlotAddress: make(map[HardwareBreakpointSlot]uintptr),
		pendingCallbacks:    make(map[BreakpointCallbackKey]BreakpointCallback),
	}
}

// NewThread adds a thread to the process's thread table (spec.md §4.3).
func (p *Process) NewThread(t *Thread) {
	p.threads[t.ID] = t
}

// RemoveThread removes a thread from the table, closing its handle.
func (p *Process) RemoveThread(id uint32) {
	if t, ok := p.threads[id]; ok {
		p.kernel.CloseHandle(t.Handle)
		delete(p.threads, id)
	}
}

// FindThread looks up a thread by id.
func (p *Process) FindThread(id uint32) (*Thread, bool) {
	t, ok := p.threads[id]
	return t, ok
}

// Threads returns every thread currently in the table, in no particular
// order.
func (p *Process) Threads() []*Thread {
	out := make([]*Thread, 0, len(p.threads))
	for _, t := range p.threads {
		out = append(out, t)
	}
	return out
}

// HitSystemBreakpoint reports whether the initial kernel-injected
// breakpoint has already been consumed (spec.md §4.5).
func (p *Process) HitSystemBreakpoint() bool { return p.hitSystemBreakpoint }

// MarkSystemBreakpointHit records that the system breakpoint fired.
func (p *Process) MarkSystemBreakpointHit() { p.hitSystemBreakpoint = true }
