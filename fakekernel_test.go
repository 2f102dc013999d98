package x86dbg

import (
	"errors"
	"testing"
)

// fakeKernel is an in-memory Kernel used by this package's tests, so the
// event-dispatch/breakpoint-engine/register-controller logic can be
// exercised without a live Windows debug target (spec.md §8; SPEC_FULL.md
// §3's Kernel interface boundary).
type fakeKernel struct {
	t testing.TB

	nextHandle Handle
	contexts   map[Handle]*CPUContext
	memory     map[uintptr]byte

	setThreadContextCalls int
	events                []DebugEvent
	eventIndex            int

	suspended      map[Handle]bool
	invalidRegions map[uintptr]bool
}

func newFakeKernel(t testing.TB) *fakeKernel {
	return &fakeKernel{
		t:         t,
		contexts:  make(map[Handle]*CPUContext),
		memory:         make(map[uintptr]byte),
		suspended:      make(map[Handle]bool),
		invalidRegions: make(map[uintptr]bool),
	}
}

// markInvalid causes ValidMemory / reads at addr to fail, simulating an
// unmapped page.
func (k *fakeKernel) markInvalid(addr uintptr) { k.invalidRegions[addr] = true }

func (k *fakeKernel) newHandle() Handle {
	k.nextHandle++
	return k.nextHandle
}

func (k *fakeKernel) addThread(ctx CPUContext) Handle {
	h := k.newHandle()
	c := ctx
	k.contexts[h] = &c
	return h
}

func (k *fakeKernel) setMemory(addr uintptr, data []byte) {
	for i, b := range data {
		k.memory[addr+uintptr(i)] = b
	}
}

func (k *fakeKernel) queueEvent(e DebugEvent) { k.events = append(k.events, e) }

func (k *fakeKernel) CreateProcess(opts ProcessCreateOptions) (ProcessCreateResult, error) {
	return ProcessCreateResult{Process: k.newHandle(), Thread: k.newHandle(), ProcessID: 1, ThreadID: 1}, nil
}

func (k *fakeKernel) DebugActiveProcess(pid uint32) error     { return nil }
func (k *fakeKernel) DebugActiveProcessStop(pid uint32) error { return nil }

func (k *fakeKernel) WaitForDebugEvent() (DebugEvent, error) {
	if k.eventIndex >= len(k.events) {
		k.t.Fatal("fakeKernel: WaitForDebugEvent called with no queued events")
	}
	e := k.events[k.eventIndex]
	k.eventIndex++
	return e, nil
}

func (k *fakeKernel) ContinueDebugEvent(pid, tid uint32, status uint32) error { return nil }

func (k *fakeKernel) GetThreadContext(thread Handle, flags ContextFlag) (CPUContext, error) {
	ctx, ok := k.contexts[thread]
	if !ok {
		k.t.Fatalf("fakeKernel: GetThreadContext on unknown handle %v", thread)
	}
	return *ctx, nil
}

func (k *fakeKernel) SetThreadContext(thread Handle, ctx CPUContext) error {
	k.setThreadContextCalls++
	c := ctx
	k.contexts[thread] = &c
	return nil
}

func (k *fakeKernel) SuspendThread(thread Handle) error { k.suspended[thread] = true; return nil }
func (k *fakeKernel) ResumeThread(thread Handle) error  { k.suspended[thread] = false; return nil }

func (k *fakeKernel) ReadProcessMemory(process Handle, addr uintptr, size int) ([]byte, error) {
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		a := addr + uintptr(i)
		if k.invalidRegions[a] {
			return nil, errors.New("fakeKernel: read from unmapped address")
		}
		out[i] = k.memory[a]
	}
	return out, nil
}

func (k *fakeKernel) WriteProcessMemory(process Handle, addr uintptr, data []byte) (int, error) {
	k.setMemory(addr, data)
	return len(data), nil
}

func (k *fakeKernel) TerminateProcess(process Handle, exitCode uint32) error { return nil }
func (k *fakeKernel) CloseHandle(h Handle) error                            { return nil }

var _ Kernel = (*fakeKernel)(nil)
