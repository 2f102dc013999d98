package x86dbg

// onCreateThread handles EventCreateThreadDebug: adds the thread to its
// process's table and replays the process's hardware-breakpoint table
// onto it (spec.md §4.4; §9 Open Question, resolved in SPEC_FULL.md §4).
func (d *Debugger) onCreateThread(event DebugEvent) error {
	process, ok := d.FindProcess(event.ProcessID)
	if !ok {
		return nil
	}
	info := event.CreateThread
	thread := NewThread(d.Kernel, d.Log, event.ThreadID, info.Thread, info.StartAddress, info.ThreadLocalBase)
	process.NewThread(thread)

	d.Hooks.fireCreateThread(info, thread)

	return process.replayHardwareBreakpoints(thread)
}

// onExitThread handles EventExitThreadDebug (spec.md §4.4).
func (d *Debugger) onExitThread(event DebugEvent) error {
	process, ok := d.FindProcess(event.ProcessID)
	if !ok {
		return nil
	}
	thread, ok := process.FindThread(event.ThreadID)
	if !ok {
		return nil
	}
	d.Hooks.fireExitThread(event.ExitThread, thread)
	process.RemoveThread(event.ThreadID)
	return nil
}
