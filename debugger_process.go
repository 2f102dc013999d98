package x86dbg

// onCreateProcess handles EventCreateProcessDebug (spec.md §4.4). On
// attach, the first such event populates the main-process record; on
// launch, it plants the entry breakpoint.
func (d *Debugger) onCreateProcess(event DebugEvent) error {
	info := event.CreateProcess
	isAttachCase := d.attached && d.mainProcessID == 0

	if d.mainProcessID == 0 {
		d.mainProcessID = event.ProcessID
	}

	thread := NewThread(d.Kernel, d.Log, event.ThreadID, info.Thread, info.StartAddress, info.ThreadLocalBase)

	process := NewProcess(d.Kernel, d.Log, event.ProcessID, info.Process, event.ThreadID, CreationInfo{
		ImageBase:    info.BaseOfImage,
		ImageHandle:  info.File,
		EntryAddress: info.StartAddress,
	})
	process.NewThread(thread)

	d.newProcessEntry(process)
	d.currentProcess = process
	d.currentThread = thread

	if isAttachCase {
		d.Hooks.fireCreateProcess(info, process)
		d.Hooks.fireAttachProcess(info, process)
	} else {
		d.Hooks.fireCreateProcess(info, process)
		if err := process.SetSoftwareBreakpoint(info.StartAddress, true, nil); err != nil {
			return err
		}
	}

	if info.File != 0 {
		d.Kernel.CloseHandle(info.File)
	}
	return nil
}

// onExitProcess handles EventExitProcessDebug (spec.md §4.4).
func (d *Debugger) onExitProcess(event DebugEvent) error {
	if event.ProcessID == d.mainProcessID {
		d.mainProcessExited = true
	}
	process, ok := d.FindProcess(event.ProcessID)
	if !ok {
		return nil
	}
	d.Hooks.fireExitProcess(event.ExitProcess, process)
	d.removeProcessEntry(event.ProcessID)
	if d.currentProcess == process {
		d.currentProcess = nil
		d.currentThread = nil
	}
	return nil
}
