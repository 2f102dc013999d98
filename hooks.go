package x86dbg

// Hooks is the debugger's external interface: a struct of function
// fields, each defaulting to a no-op, rather than an interface with
// overridden methods (spec.md §6, §9 "composition over inheritance"; see
// DESIGN.md). A concrete debugger front end sets only the fields it
// cares about, the same way the teacher's own dependency cobra.Command
// exposes a bare `Run func(...)` field instead of a Runner interface.
type Hooks struct {
	PreDebugEvent  func(event DebugEvent)
	PostDebugEvent func(event DebugEvent)

	CreateProcess func(info CreateProcessInfo, process *Process)
	AttachProcess func(info CreateProcessInfo, process *Process)
	ExitProcess   func(info ExitProcessInfo, process *Process)

	CreateThread func(info CreateThreadInfo, thread *Thread)
	ExitThread   func(info ExitThreadInfo, thread *Thread)

	LoadDll   func(info LoadDllInfo)
	UnloadDll func(info UnloadDllInfo)

	OutputString func(info OutputStringInfo)
	Rip          func(info RipInfo)
	UnknownEvent func(code uint32)

	PreException      func(record ExceptionRecord, firstChance bool)
	UnhandledException func(record ExceptionRecord, firstChance bool)

	SystemBreakpoint func(process *Process)
	Breakpoint       func(kind BreakpointKind, addr uintptr)
	EntryBreakpoint  func(process *Process)
	Step             func(thread *Thread)

	InternalLoopError func(err error)
}

func (h *Hooks) firePreDebugEvent(e DebugEvent) {
	if h.PreDebugEvent != nil {
		h.PreDebugEvent(e)
	}
}

func (h *Hooks) firePostDebugEvent(e DebugEvent) {
	if h.PostDebugEvent != nil {
		h.PostDebugEvent(e)
	}
}

func (h *Hooks) fireCreateProcess(info CreateProcessInfo, p *Process) {
	if h.CreateProcess != nil {
		h.CreateProcess(info, p)
	}
}

func (h *Hooks) fireAttachProcess(info CreateProcessInfo, p *Process) {
	if h.AttachProcess != nil {
		h.AttachProcess(info, p)
	}
}

func (h *Hooks) fireExitProcess(info ExitProcessInfo, p *Process) {
	if h.ExitProcess != nil {
		h.ExitProcess(info, p)
	}
}

func (h *Hooks) fireCreateThread(info CreateThreadInfo, t *Thread) {
	if h.CreateThread != nil {
		h.CreateThread(info, t)
	}
}

func (h *Hooks) fireExitThread(info ExitThreadInfo, t *Thread) {
	if h.ExitThread != nil {
		h.ExitThread(info, t)
	}
}

func (h *Hooks) fireLoadDll(info LoadDllInfo) {
	if h.LoadDll != nil {
		h.LoadDll(info)
	}
}

func (h *Hooks) fireUnloadDll(info UnloadDllInfo) {
	if h.UnloadDll != nil {
		h.UnloadDll(info)
	}
}

func (h *Hooks) fireOutputString(info OutputStringInfo) {
	if h.OutputString != nil {
		h.OutputString(info)
	}
}

func (h *Hooks) fireRip(info RipInfo) {
	if h.Rip != nil {
		h.Rip(info)
	}
}

func (h *Hooks) fireUnknownEvent(code uint32) {
	if h.UnknownEvent != nil {
		h.UnknownEvent(code)
	}
}

func (h *Hooks) firePreException(record ExceptionRecord, firstChance bool) {
	if h.PreException != nil {
		h.PreException(record, firstChance)
	}
}

func (h *Hooks) fireUnhandledException(record ExceptionRecord, firstChance bool) {
	if h.UnhandledException != nil {
		h.UnhandledException(record, firstChance)
	}
}

func (h *Hooks) fireSystemBreakpoint(p *Process) {
	if h.SystemBreakpoint != nil {
		h.SystemBreakpoint(p)
	}
}

func (h *Hooks) fireBreakpoint(kind BreakpointKind, addr uintptr) {
	if h.Breakpoint != nil {
		h.Breakpoint(kind, addr)
	}
}

func (h *Hooks) fireEntryBreakpoint(p *Process) {
	if h.EntryBreakpoint != nil {
		h.EntryBreakpoint(p)
	}
}

func (h *Hooks) fireStep(t *Thread) {
	if h.Step != nil {
		h.Step(t)
	}
}

func (h *Hooks) fireInternalLoopError(err error) {
	if h.InternalLoopError != nil {
		h.InternalLoopError(err)
	}
}
