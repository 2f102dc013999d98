//go:build windows

package winkernel

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/ravendbg/x86dbg"
)

// Kernel implements x86dbg.Kernel against the real Windows debug API.
type Kernel struct{}

// New returns a Kernel backed by real Windows syscalls.
func New() *Kernel { return &Kernel{} }

var _ x86dbg.Kernel = (*Kernel)(nil)

func (k *Kernel) CreateProcess(opts x86dbg.ProcessCreateOptions) (x86dbg.ProcessCreateResult, error) {
	var flags uint32 = windows.DEBUG_ONLY_THIS_PROCESS | windows.CREATE_NEW_CONSOLE
	if opts.StartSuspended {
		flags |= windows.CREATE_SUSPENDED
	}

	appName, err := windows.UTF16PtrFromString(opts.FilePath)
	if err != nil {
		return x86dbg.ProcessCreateResult{}, err
	}
	var cmdLinePtr *uint16
	if opts.CommandLine != "" {
		cmdLinePtr, err = windows.UTF16PtrFromString(opts.CommandLine)
		if err != nil {
			return x86dbg.ProcessCreateResult{}, err
		}
	}
	var curDirPtr *uint16
	if opts.CurrentDirectory != "" {
		curDirPtr, err = windows.UTF16PtrFromString(opts.CurrentDirectory)
		if err != nil {
			return x86dbg.ProcessCreateResult{}, err
		}
	}

	var startupInfo windows.StartupInfo
	var procInfo windows.ProcessInformation
	startupInfo.Cb = uint32(unsafe.Sizeof(startupInfo))

	if err := createProcess(appName, cmdLinePtr, nil, nil, false, flags, nil, curDirPtr, &startupInfo, &procInfo); err != nil {
		return x86dbg.ProcessCreateResult{}, err
	}

	return x86dbg.ProcessCreateResult{
		Process:   x86dbg.Handle(procInfo.Process),
		Thread:    x86dbg.Handle(procInfo.Thread),
		ProcessID: procInfo.ProcessId,
		ThreadID:  procInfo.ThreadId,
	}, nil
}

func (k *Kernel) DebugActiveProcess(pid uint32) error     { return debugActiveProcess(pid) }
func (k *Kernel) DebugActiveProcessStop(pid uint32) error { return debugActiveProcessStop(pid) }

func (k *Kernel) WaitForDebugEvent() (x86dbg.DebugEvent, error) {
	var raw rawDebugEvent
	if err := waitForDebugEvent(&raw, windows.INFINITE); err != nil {
		return x86dbg.DebugEvent{}, err
	}
	return decodeEvent(&raw), nil
}

func (k *Kernel) ContinueDebugEvent(pid, tid uint32, status uint32) error {
	return continueDebugEvent(pid, tid, status)
}

func (k *Kernel) GetThreadContext(thread x86dbg.Handle, flags x86dbg.ContextFlag) (x86dbg.CPUContext, error) {
	var ctx context386
	ctx.ContextFlags = contextFlagsFromCore(flags)
	if err := getThreadContext(Handle(thread), &ctx); err != nil {
		return x86dbg.CPUContext{}, err
	}
	return decodeContext(&ctx), nil
}

func (k *Kernel) SetThreadContext(thread x86dbg.Handle, ctx x86dbg.CPUContext) error {
	raw := encodeContext(ctx)
	return setThreadContext(Handle(thread), &raw)
}

func (k *Kernel) SuspendThread(thread x86dbg.Handle) error {
	_, err := suspendThread(Handle(thread))
	return err
}

func (k *Kernel) ResumeThread(thread x86dbg.Handle) error {
	_, err := resumeThread(Handle(thread))
	return err
}

func (k *Kernel) ReadProcessMemory(process x86dbg.Handle, addr uintptr, size int) ([]byte, error) {
	buf := make([]byte, size)
	var read uintptr
	if err := readProcessMemory(Handle(process), addr, &buf[0], uintptr(size), &read); err != nil {
		return nil, err
	}
	return buf[:read], nil
}

func (k *Kernel) WriteProcessMemory(process x86dbg.Handle, addr uintptr, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	var written uintptr
	if err := writeProcessMemory(Handle(process), addr, &data[0], uintptr(len(data)), &written); err != nil {
		return int(written), err
	}
	return int(written), nil
}

func (k *Kernel) TerminateProcess(process x86dbg.Handle, exitCode uint32) error {
	return terminateProcess(Handle(process), exitCode)
}

func (k *Kernel) CloseHandle(h x86dbg.Handle) error {
	if h == 0 {
		return nil
	}
	return windows.CloseHandle(Handle(h))
}

func contextFlagsFromCore(flags x86dbg.ContextFlag) uint32 {
	var out uint32 = contextI386
	if flags&x86dbg.ContextControl != 0 {
		out |= ContextControl
	}
	if flags&x86dbg.ContextInteger != 0 {
		out |= ContextInteger
	}
	if flags&x86dbg.ContextSegments != 0 {
		out |= ContextSegments
	}
	if flags&x86dbg.ContextFloatingPoint != 0 {
		out |= ContextFloatingPoint
	}
	if flags&x86dbg.ContextDebugRegisters != 0 {
		out |= ContextDebugRegisters
	}
	if flags&x86dbg.ContextExtendedRegisters != 0 {
		out |= ContextExtendedRegisters
	}
	return out
}

func decodeContext(c *context386) x86dbg.CPUContext {
	return x86dbg.CPUContext{
		ContextFlags: c.ContextFlags,
		Eax:          c.Eax,
		Ebx:          c.Ebx,
		Ecx:          c.Ecx,
		Edx:          c.Edx,
		Esi:          c.Esi,
		Edi:          c.Edi,
		Esp:          c.Esp,
		Ebp:          c.Ebp,
		Eip:          c.Eip,
		EFlags:       c.EFlags,
		Dr0:          c.Dr0,
		Dr1:          c.Dr1,
		Dr2:          c.Dr2,
		Dr3:          c.Dr3,
		Dr6:          c.Dr6,
		Dr7:          c.Dr7,
	}
}

func encodeContext(ctx x86dbg.CPUContext) context386 {
	var c context386
	c.ContextFlags = ctx.ContextFlags
	c.Eax, c.Ebx, c.Ecx, c.Edx = ctx.Eax, ctx.Ebx, ctx.Ecx, ctx.Edx
	c.Esi, c.Edi = ctx.Esi, ctx.Edi
	c.Esp, c.Ebp = ctx.Esp, ctx.Ebp
	c.Eip = ctx.Eip
	c.EFlags = ctx.EFlags
	c.Dr0, c.Dr1, c.Dr2, c.Dr3 = ctx.Dr0, ctx.Dr1, ctx.Dr2, ctx.Dr3
	c.Dr6, c.Dr7 = ctx.Dr6, ctx.Dr7
	return c
}

func decodeEvent(raw *rawDebugEvent) x86dbg.DebugEvent {
	out := x86dbg.DebugEvent{
		Code:      raw.Code,
		ProcessID: raw.ProcessID,
		ThreadID:  raw.ThreadID,
	}
	switch raw.Code {
	case eventCreateProcess:
		info := raw.createProcess()
		out.CreateProcess = x86dbg.CreateProcessInfo{
			File:            x86dbg.Handle(info.File),
			Process:         x86dbg.Handle(info.Process),
			Thread:          x86dbg.Handle(info.Thread),
			BaseOfImage:     info.BaseOfImage,
			ThreadLocalBase: info.ThreadLocalBase,
			StartAddress:    info.StartAddress,
			ImageName:       info.ImageName,
			Unicode:         info.Unicode != 0,
		}
	case eventExitProcess:
		out.ExitProcess = x86dbg.ExitProcessInfo{ExitCode: raw.exitProcess().ExitCode}
	case eventCreateThread:
		info := raw.createThread()
		out.CreateThread = x86dbg.CreateThreadInfo{
			Thread:          x86dbg.Handle(info.Thread),
			ThreadLocalBase: info.ThreadLocalBase,
			StartAddress:    info.StartAddress,
		}
	case eventExitThread:
		out.ExitThread = x86dbg.ExitThreadInfo{ExitCode: raw.exitThread().ExitCode}
	case eventLoadDll:
		info := raw.loadDll()
		out.LoadDll = x86dbg.LoadDllInfo{
			File:      x86dbg.Handle(info.File),
			BaseOfDll: info.BaseOfDll,
			ImageName: info.ImageName,
			Unicode:   info.Unicode != 0,
		}
	case eventUnloadDll:
		out.UnloadDll = x86dbg.UnloadDllInfo{BaseOfDll: raw.unloadDll().BaseOfDll}
	case eventException:
		info := raw.exception()
		out.Exception = x86dbg.ExceptionInfo{
			Record: x86dbg.ExceptionRecord{
				Code:    info.Record.ExceptionCode,
				Flags:   info.Record.ExceptionFlags,
				Address: info.Record.ExceptionAddress,
			},
			FirstChance: info.FirstChance != 0,
		}
	case eventOutputString:
		info := raw.outputString()
		out.OutputString = x86dbg.OutputStringInfo{Data: info.Data, Unicode: info.Unicode != 0, Length: info.Length}
	case eventRip:
		info := raw.rip()
		out.Rip = x86dbg.RipInfo{Error: info.Error, Type: info.Type}
	}
	return out
}
