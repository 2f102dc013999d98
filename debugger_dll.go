package x86dbg

// onLoadDll handles EventLoadDllDebug: emits the callback, then closes
// the image file handle if present (spec.md §4.4).
func (d *Debugger) onLoadDll(event DebugEvent) {
	info := event.LoadDll
	d.Hooks.fireLoadDll(info)
	if info.File != 0 {
		d.Kernel.CloseHandle(info.File)
	}
}

// onUnloadDll handles EventUnloadDllDebug (spec.md §4.4).
func (d *Debugger) onUnloadDll(event DebugEvent) {
	d.Hooks.fireUnloadDll(event.UnloadDll)
}
