//go:build windows

package winkernel

import "golang.org/x/sys/windows"

// Handle is a Windows object handle, shared by process, thread and file
// handles just as HANDLE is in the Windows API.
type Handle = windows.Handle

// NT_SUCCESS mirrors the NTSTATUS success-test macro (NtStatus.h),
// grounded on the teacher's proc/internal/mssys.NT_SUCCESS.
func ntSuccess(status uint32) bool { return int32(status) >= 0 }

//sys waitForDebugEvent(event *rawDebugEvent, milliseconds uint32) (err error) = kernel32.WaitForDebugEvent
//sys continueDebugEvent(processID uint32, threadID uint32, continueStatus uint32) (err error) = kernel32.ContinueDebugEvent
//sys debugActiveProcess(processID uint32) (err error) = kernel32.DebugActiveProcess
//sys debugActiveProcessStop(processID uint32) (err error) = kernel32.DebugActiveProcessStop
//sys getThreadContext(thread Handle, context *context386) (err error) = kernel32.GetThreadContext
//sys setThreadContext(thread Handle, context *context386) (err error) = kernel32.SetThreadContext
//sys suspendThread(thread Handle) (prevCount uint32, err error) = kernel32.SuspendThread
//sys resumeThread(thread Handle) (prevCount uint32, err error) = kernel32.ResumeThread
//sys terminateProcess(process Handle, exitCode uint32) (err error) = kernel32.TerminateProcess
//sys readProcessMemory(process Handle, baseAddress uintptr, buffer *byte, size uintptr, bytesRead *uintptr) (err error) = kernel32.ReadProcessMemory
//sys writeProcessMemory(process Handle, baseAddress uintptr, buffer *byte, size uintptr, bytesWritten *uintptr) (err error) = kernel32.WriteProcessMemory
//sys createProcess(appName *uint16, cmdLine *uint16, procAttrs *windows.SecurityAttributes, threadAttrs *windows.SecurityAttributes, inheritHandles bool, creationFlags uint32, env *uint16, currentDir *uint16, startupInfo *windows.StartupInfo, procInfo *windows.ProcessInformation) (err error) = kernel32.CreateProcessW
