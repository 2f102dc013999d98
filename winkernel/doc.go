// Package winkernel implements x86dbg.Kernel against the real Windows
// debug API: CreateProcess with DEBUG_ONLY_THIS_PROCESS, WaitForDebugEvent,
// ContinueDebugEvent, DebugActiveProcess[Stop], Read/WriteProcessMemory,
// Get/SetThreadContext, Suspend/ResumeThread, TerminateProcess, and handle
// closure (spec.md §6, "Kernel primitives required").
//
// It is grounded on the teacher's proc/internal/mssys package: the same
// //sys-declaration-plus-generated-stub shape, the same DEBUG_EVENT union
// decoding approach, and golang.org/x/sys/windows for the handle and
// syscall plumbing. Unlike the teacher (amd64 CONTEXT), the struct here is
// the classic 32-bit x86 CONTEXT, since spec.md scopes this debugger to
// 32-bit x86 targets only.
package winkernel
