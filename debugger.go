package x86dbg

import "github.com/sirupsen/logrus"

// Debugger is the debug-event dispatch loop and the process table it
// maintains (spec.md §4.4).
type Debugger struct {
	Kernel Kernel
	Hooks  Hooks
	Log    *logrus.Entry

	debugging         bool
	detached          bool
	attached          bool
	mainProcessExited bool
	mainProcessID     uint32

	processes map[uint32]*Process

	currentProcess *Process
	currentThread  *Thread

	continueStatus uint32
}

// NewDebugger constructs a Debugger bound to a Kernel implementation. The
// zero Hooks value is a fully no-op front end.
func NewDebugger(kernel Kernel, log *logrus.Entry) *Debugger {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Debugger{
		Kernel:    kernel,
		Log:       log,
		processes: make(map[uint32]*Process),
	}
}

// Create launches a target process with DEBUG_ONLY_THIS_PROCESS |
// CREATE_NEW_CONSOLE, optionally CREATE_SUSPENDED (spec.md §4.4).
func (d *Debugger) Create(path, cmdLine, cwd string, startSuspended bool) error {
	_, err := d.Kernel.CreateProcess(ProcessCreateOptions{
		FilePath:         path,
		CommandLine:      cmdLine,
		CurrentDirectory: cwd,
		StartSuspended:   startSuspended,
	})
	if err != nil {
		return newSystemError("CreateProcess", err)
	}
	d.debugging = true
	return nil
}

// Attach attaches to an already-running process by pid (spec.md §4.4).
func (d *Debugger) Attach(pid uint32) error {
	if err := d.Kernel.DebugActiveProcess(pid); err != nil {
		return newSystemError("DebugActiveProcess", err)
	}
	d.attached = true
	d.debugging = true
	return nil
}

// Detach requests a graceful stop, honoured at the end of the current
// event (spec.md §4.4, §5).
func (d *Debugger) Detach() { d.detached = true }

// Stop abruptly terminates the target via the kernel (spec.md §5).
func (d *Debugger) Stop(exitCode uint32) error {
	if d.currentProcess == nil {
		return nil
	}
	return newSystemError("TerminateProcess", d.Kernel.TerminateProcess(d.currentProcess.Handle, exitCode))
}

// FindProcess looks up a process by pid.
func (d *Debugger) FindProcess(pid uint32) (*Process, bool) {
	p, ok := d.processes[pid]
	return p, ok
}

func (d *Debugger) newProcessEntry(p *Process) { d.processes[p.ID] = p }

func (d *Debugger) removeProcessEntry(pid uint32) {
	if p, ok := d.processes[pid]; ok {
		d.Kernel.CloseHandle(p.Handle)
		delete(d.processes, pid)
	}
}

// unsafeDetach clears TF on the currently debugged thread and stops
// debugging the process, without terminating it (spec.md §4.4 step 9).
func (d *Debugger) unsafeDetach() {
	if d.currentThread != nil {
		if regs, err := NewRegisters(d.Kernel, d.Log, d.currentThread.Handle, ContextControl); err == nil {
			regs.Flags().SetTF(false)
			regs.Close()
		}
	}
	if d.currentProcess != nil {
		if err := d.Kernel.DebugActiveProcessStop(d.currentProcess.ID); err != nil {
			d.Log.WithError(err).Warn("x86dbg: DebugActiveProcessStop failed during detach")
		}
	}
	d.debugging = false
}

// Start runs the debug-event loop until the main process exits or a
// fatal error occurs on Wait/Continue themselves (spec.md §4.4).
func (d *Debugger) Start() error {
	for !d.mainProcessExited {
		if err := d.runOneIteration(); err != nil {
			return err
		}
		if d.detached {
			d.unsafeDetach()
			break
		}
	}
	return nil
}

// runOneIteration implements spec.md §4.4's numbered steps except step 9
// (detach), which Start performs after the iteration returns. Only
// Wait/Continue failures break the loop (returned to Start's caller);
// every other error raised during dispatch is routed to
// cbInternalLoopError and the loop carries on. Logic errors (invariant
// breaches, spec.md §7) are Go panics and are deliberately NOT recovered
// here — they are undefined behaviour even in the source, so letting
// them propagate is the faithful translation, not a regression.
func (d *Debugger) runOneIteration() error {
	event, err := d.Kernel.WaitForDebugEvent()
	if err != nil {
		return newSystemError("WaitForDebugEvent", err)
	}

	d.continueStatus = ContinueStatusNotHandled

	if err := d.dispatchEvent(event); err != nil {
		d.Hooks.fireInternalLoopError(err)
	}

	if d.currentThread != nil {
		if regs, err := NewRegisters(d.Kernel, d.Log, d.currentThread.Handle, ContextDebugRegisters); err == nil {
			regs.DebugStatus().Reset()
			regs.Close()
		}
	}

	if err := d.Kernel.ContinueDebugEvent(event.ProcessID, event.ThreadID, d.continueStatus); err != nil {
		return newSystemError("ContinueDebugEvent", err)
	}
	return nil
}

func (d *Debugger) dispatchEvent(event DebugEvent) error {
	d.currentProcess, _ = d.FindProcess(event.ProcessID)
	if d.currentProcess != nil {
		d.currentThread, _ = d.currentProcess.FindThread(event.ThreadID)
	} else {
		d.currentThread = nil
	}

	d.Hooks.firePreDebugEvent(event)

	var err error
	switch event.Code {
	case EventCreateProcessDebug:
		err = d.onCreateProcess(event)
	case EventExitProcessDebug:
		err = d.onExitProcess(event)
	case EventCreateThreadDebug:
		err = d.onCreateThread(event)
	case EventExitThreadDebug:
		err = d.onExitThread(event)
	case EventLoadDllDebug:
		d.onLoadDll(event)
	case EventUnloadDllDebug:
		d.onUnloadDll(event)
	case EventExceptionDebug:
		err = d.onException(event)
	case EventOutputStringDebug:
		d.Hooks.fireOutputString(event.OutputString)
	case EventRipDebug:
		d.Hooks.fireRip(event.Rip)
	default:
		d.onUnknownEvent(event)
	}

	d.Hooks.firePostDebugEvent(event)
	return err
}
