package x86dbg

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kr/pretty"
)

// expectContextEqual is a small wrapper that renders a kr/pretty diff in
// the failure message, grounded on the teacher's go.mod dependency on
// kr/pretty for register-snapshot diffs (SPEC_FULL.md §4.7, test
// tooling).
func expectContextEqual(got, want CPUContext) {
	ExpectWithOffset(1, got).To(Equal(want), func() string {
		return fmt.Sprintf("register snapshot diff:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}())
}

// This suite exercises the full event-dispatch state machine
// (spec.md §4.4, §4.5, §8) against the fake Kernel, one debug event at a
// time via Debugger's unexported runOneIteration, the same way a real
// WaitForDebugEvent/ContinueDebugEvent pair would drive it.
var _ = Describe("Debugger event-dispatch loop", func() {
	var k *fakeKernel

	BeforeEach(func() {
		k = newFakeKernel(GinkgoT())
	})

	// spec.md §8 scenario 1.
	It("runs launch, system breakpoint, entry breakpoint, exit in order", func() {
		const entry = 0x401000

		processHandle := k.newHandle()
		threadHandle := k.addThread(CPUContext{})
		k.setMemory(entry, []byte{0xC3})

		k.queueEvent(DebugEvent{
			Code: EventCreateProcessDebug, ProcessID: 1, ThreadID: 1,
			CreateProcess: CreateProcessInfo{Process: processHandle, Thread: threadHandle, StartAddress: entry},
		})
		k.queueEvent(DebugEvent{
			Code: EventExceptionDebug, ProcessID: 1, ThreadID: 1,
			Exception: ExceptionInfo{Record: ExceptionRecord{Code: ExceptionBreakpoint, Address: 0x7ffe0300}, FirstChance: true},
		})
		k.queueEvent(DebugEvent{
			Code: EventExceptionDebug, ProcessID: 1, ThreadID: 1,
			Exception: ExceptionInfo{Record: ExceptionRecord{Code: ExceptionBreakpoint, Address: entry}, FirstChance: true},
		})
		k.queueEvent(DebugEvent{Code: EventExitProcessDebug, ProcessID: 1, ThreadID: 1})

		dbg := NewDebugger(k, nil)

		var order []string
		dbg.Hooks.CreateProcess = func(CreateProcessInfo, *Process) { order = append(order, "create") }
		dbg.Hooks.SystemBreakpoint = func(*Process) { order = append(order, "system") }
		dbg.Hooks.Breakpoint = func(kind BreakpointKind, addr uintptr) {
			order = append(order, fmt.Sprintf("breakpoint:%d:%#x", kind, addr))
		}
		dbg.Hooks.EntryBreakpoint = func(*Process) { order = append(order, "entry") }
		dbg.Hooks.ExitProcess = func(ExitProcessInfo, *Process) { order = append(order, "exit") }

		Expect(dbg.Start()).To(Succeed())

		Expect(order).To(Equal([]string{
			"create", "system",
			fmt.Sprintf("breakpoint:%d:%#x", Software, uintptr(entry)), "entry",
			"exit",
		}))
		Expect(k.memory[entry]).To(Equal(byte(0xC3)), "entry breakpoint must restore the original byte on single-shoot removal")

		_, ok := dbg.FindProcess(1)
		Expect(ok).To(BeFalse(), "process table entry must be removed on ExitProcess")
	})

	// spec.md §8 scenario 2.
	It("re-arms a persistent software breakpoint and dispatches its callback once", func() {
		const loopAddr = 0x402000

		processHandle := k.newHandle()
		threadHandle := k.addThread(CPUContext{})
		k.setMemory(loopAddr, []byte{0x90})

		dbg := NewDebugger(k, nil)
		Expect(dbg.Attach(1)).To(Succeed())

		k.queueEvent(DebugEvent{
			Code: EventCreateProcessDebug, ProcessID: 1, ThreadID: 1,
			CreateProcess: CreateProcessInfo{Process: processHandle, Thread: threadHandle, StartAddress: 0},
		})
		Expect(dbg.runOneIteration()).To(Succeed())

		process, ok := dbg.FindProcess(1)
		Expect(ok).To(BeTrue())

		callbackHits := 0
		Expect(process.SetSoftwareBreakpoint(loopAddr, false, func(BreakpointKind, uintptr) { callbackHits++ })).To(Succeed())
		Expect(k.memory[loopAddr]).To(Equal(byte(INT3)))

		breakpointHits := 0
		dbg.Hooks.Breakpoint = func(BreakpointKind, uintptr) { breakpointHits++ }

		for i := 0; i < 5; i++ {
			k.queueEvent(DebugEvent{
				Code: EventExceptionDebug, ProcessID: 1, ThreadID: 1,
				Exception: ExceptionInfo{Record: ExceptionRecord{Code: ExceptionBreakpoint, Address: loopAddr}},
			})
			Expect(dbg.runOneIteration()).To(Succeed())
			Expect(k.memory[loopAddr]).To(Equal(byte(0x90)), "breakpoint byte must be cleared so the instruction re-executes")

			k.queueEvent(DebugEvent{
				Code: EventExceptionDebug, ProcessID: 1, ThreadID: 1,
				Exception: ExceptionInfo{Record: ExceptionRecord{Code: ExceptionSingleStep}},
			})
			Expect(dbg.runOneIteration()).To(Succeed())
			Expect(k.memory[loopAddr]).To(Equal(byte(INT3)), "internal step must re-arm the breakpoint")
		}

		Expect(breakpointHits).To(Equal(5))
		Expect(callbackHits).To(Equal(1), "the pending callback is one-shot even though the breakpoint itself is not single-shoot")

		_, stillArmed := process.FindSoftwareBreakpoint(loopAddr)
		Expect(stillArmed).To(BeTrue())
	})

	// spec.md §8 scenario 3.
	It("hits, disables, and re-arms a hardware execute breakpoint across the internal step", func() {
		const hwAddr = 0x403000

		processHandle := k.newHandle()
		threadHandle := k.addThread(CPUContext{})
		k.setMemory(hwAddr, []byte{0x90})

		dbg := NewDebugger(k, nil)
		Expect(dbg.Attach(1)).To(Succeed())
		k.queueEvent(DebugEvent{
			Code: EventCreateProcessDebug, ProcessID: 1, ThreadID: 1,
			CreateProcess: CreateProcessInfo{Process: processHandle, Thread: threadHandle, StartAddress: 0},
		})
		Expect(dbg.runOneIteration()).To(Succeed())

		process, _ := dbg.FindProcess(1)
		Expect(process.SetHardwareBreakpoint(hwAddr, DR0, AccessExecute, SizeByte, false, nil)).To(Succeed())

		readControl := func() DebugControlRegister {
			regs, err := NewRegisters(k, nil, threadHandle, ContextDebugRegisters)
			Expect(err).NotTo(HaveOccurred())
			defer regs.Close()
			return regs.DebugControl()
		}
		Expect(readControl().L(DR0)).To(BeTrue(), "L0 must be set before the hit")

		var hitSlot HardwareBreakpointSlot = 99
		dbg.Hooks.Breakpoint = func(kind BreakpointKind, addr uintptr) {
			Expect(kind).To(Equal(Hardware))
			bp, ok := process.FindHardwareBreakpoint(addr)
			Expect(ok).To(BeTrue())
			hitSlot = bp.Slot
		}

		k.queueEvent(DebugEvent{
			Code: EventExceptionDebug, ProcessID: 1, ThreadID: 1,
			Exception: ExceptionInfo{Record: ExceptionRecord{Code: ExceptionSingleStep, Address: hwAddr}},
		})
		Expect(dbg.runOneIteration()).To(Succeed())
		Expect(hitSlot).To(Equal(DR0))
		Expect(readControl().L(DR0)).To(BeFalse(), "L0 must be cleared during the rearming single-step")

		k.queueEvent(DebugEvent{
			Code: EventExceptionDebug, ProcessID: 1, ThreadID: 1,
			Exception: ExceptionInfo{Record: ExceptionRecord{Code: ExceptionSingleStep}},
		})
		Expect(dbg.runOneIteration()).To(Succeed())
		Expect(readControl().L(DR0)).To(BeTrue(), "L0 must be set again once the internal step completes")
	})

	// spec.md §8 scenario 6.
	It("refuses a fifth hardware breakpoint once all four slots are occupied", func() {
		processHandle := k.newHandle()
		p := NewProcess(k, nil, 1, processHandle, 1, CreationInfo{})
		p.NewThread(NewThread(k, nil, 1, k.addThread(CPUContext{}), 0, 0))

		for i, slot := range []HardwareBreakpointSlot{DR0, DR1, DR2, DR3} {
			addr := uintptr(0x410000 + i*0x1000)
			k.setMemory(addr, []byte{0x90})
			Expect(p.SetHardwareBreakpoint(addr, slot, AccessExecute, SizeByte, false, nil)).To(Succeed())
		}

		_, ok := p.FindFreeHardwareBreakpointSlot()
		Expect(ok).To(BeFalse())
	})

	// spec.md §9's Open Question, resolved in SPEC_FULL.md §4: new threads
	// replay the process's current hardware breakpoint table.
	It("replays hardware breakpoints onto a thread created after the breakpoint was set", func() {
		const hwAddr = 0x404000

		processHandle := k.newHandle()
		firstThread := k.addThread(CPUContext{})
		k.setMemory(hwAddr, []byte{0x90})

		dbg := NewDebugger(k, nil)
		Expect(dbg.Attach(1)).To(Succeed())
		k.queueEvent(DebugEvent{
			Code: EventCreateProcessDebug, ProcessID: 1, ThreadID: 1,
			CreateProcess: CreateProcessInfo{Process: processHandle, Thread: firstThread, StartAddress: 0},
		})
		Expect(dbg.runOneIteration()).To(Succeed())

		process, _ := dbg.FindProcess(1)
		Expect(process.SetHardwareBreakpoint(hwAddr, DR0, AccessExecute, SizeByte, false, nil)).To(Succeed())

		secondThread := k.addThread(CPUContext{})
		k.queueEvent(DebugEvent{
			Code: EventCreateThreadDebug, ProcessID: 1, ThreadID: 2,
			CreateThread: CreateThreadInfo{Thread: secondThread},
		})
		Expect(dbg.runOneIteration()).To(Succeed())

		regs, err := NewRegisters(k, nil, secondThread, ContextDebugRegisters)
		Expect(err).NotTo(HaveOccurred())
		defer regs.Close()
		Expect(regs.Get(DebugDR0)).To(Equal(uint32(hwAddr)))
		Expect(regs.DebugControl().L(DR0)).To(BeTrue())
	})

	// spec.md §3 invariant 1.
	It("refuses a software breakpoint at an address already holding a hardware breakpoint", func() {
		const addr = 0x405000
		processHandle := k.newHandle()
		p := NewProcess(k, nil, 1, processHandle, 1, CreationInfo{})
		p.NewThread(NewThread(k, nil, 1, k.addThread(CPUContext{}), 0, 0))
		k.setMemory(addr, []byte{0x90})

		Expect(p.SetHardwareBreakpoint(addr, DR0, AccessExecute, SizeByte, false, nil)).To(Succeed())
		Expect(p.SetSoftwareBreakpoint(addr, false, nil)).To(MatchError(ErrBreakpointKindCollision))

		Expect(p.SetHardwareBreakpoint(addr+4, DR1, AccessWrite, SizeDword, false, nil)).To(Succeed())

		regs, err := NewRegisters(k, nil, p.Threads()[0].Handle, ContextDebugRegisters)
		Expect(err).NotTo(HaveOccurred())
		defer regs.Close()

		// Independent check of the DR7 bit layout spec.md §4.1 requires:
		// RWn/LENn are 4-bit fields per slot starting at bit 16, in slot
		// order, with Ln interleaved at bits 0-7.
		wantDr7 := uint32(1<<0 | 1<<2 | uint32(AccessExecute)<<16 | uint32(SizeByte)<<18 | uint32(AccessWrite)<<20 | uint32(SizeDword)<<22)
		wantCtx := regs.current
		wantCtx.Dr7 = wantDr7
		expectContextEqual(regs.current, wantCtx)
	})
})
