//go:build windows

package winkernel

// CONTEXT_* flags for the 32-bit x86 CONTEXT struct (WinNT.h). The high
// word (0x00010000) is the i386-specific CONTEXT identifier.
const (
	contextI386 = 0x00010000

	ContextControl         = contextI386 | 0x00000001
	ContextInteger         = contextI386 | 0x00000002
	ContextSegments        = contextI386 | 0x00000004
	ContextFloatingPoint   = contextI386 | 0x00000008
	ContextDebugRegisters  = contextI386 | 0x00000010
	ContextExtendedRegisters = contextI386 | 0x00000020

	ContextFull = ContextControl | ContextInteger | ContextSegments
	ContextAll  = ContextFull | ContextFloatingPoint | ContextDebugRegisters | ContextExtendedRegisters

	maxSupportedExtension = 512
)

// floatingSaveArea mirrors FLOATING_SAVE_AREA (WinNT.h); the debugger
// never inspects its fields, so it is carried opaquely.
type floatingSaveArea struct {
	ControlWord   uint32
	StatusWord    uint32
	TagWord       uint32
	ErrorOffset   uint32
	ErrorSelector uint32
	DataOffset    uint32
	DataSelector  uint32
	RegisterArea  [80]byte
	Cr0NpxState   uint32
}

// context386 mirrors the classic 32-bit x86 CONTEXT struct (WinNT.h),
// field for field and in declared order: the layout GetThreadContext and
// SetThreadContext read and write directly, so field order and sizes must
// match exactly.
type context386 struct {
	ContextFlags uint32

	Dr0 uint32
	Dr1 uint32
	Dr2 uint32
	Dr3 uint32
	Dr6 uint32
	Dr7 uint32

	FloatSave floatingSaveArea

	SegGs uint32
	SegFs uint32
	SegEs uint32
	SegDs uint32

	Edi uint32
	Esi uint32
	Ebx uint32
	Edx uint32
	Ecx uint32
	Eax uint32

	Ebp    uint32
	Eip    uint32
	SegCs  uint32
	EFlags uint32
	Esp    uint32
	SegSs  uint32

	ExtendedRegisters [maxSupportedExtension]byte
}
