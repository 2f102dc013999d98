package x86dbg

// onUnknownEvent handles a debug event code this debugger does not
// recognize (spec.md §4.4).
func (d *Debugger) onUnknownEvent(event DebugEvent) {
	d.continueStatus = ContinueStatusNotHandled
	d.Hooks.fireUnknownEvent(event.Code)
}
