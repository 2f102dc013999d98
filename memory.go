package x86dbg

// Windows PAGE_* protection constants (WinNT.h), the low byte of a
// memory-protection value; the high bytes carry flags like PAGE_GUARD
// and are preserved untouched (spec.md §4.6).
const (
	pageNoAccess          uint32 = 0x01
	pageReadOnly          uint32 = 0x02
	pageReadWrite         uint32 = 0x04
	pageWriteCopy         uint32 = 0x08
	pageExecute           uint32 = 0x10
	pageExecuteRead       uint32 = 0x20
	pageExecuteReadWrite  uint32 = 0x40
	pageExecuteWriteCopy  uint32 = 0x80

	protectionLowByteMask uint32 = 0xFF
)

// RemoveWriteAccess strips write permission from a PAGE_* protection
// constant, preserving any high-byte flags (spec.md §4.6).
func RemoveWriteAccess(prot uint32) uint32 {
	low := prot & protectionLowByteMask
	high := prot &^ protectionLowByteMask
	switch low {
	case pageReadWrite:
		low = pageReadOnly
	case pageWriteCopy:
		low = pageReadOnly
	case pageExecuteReadWrite:
		low = pageExecuteRead
	case pageExecuteWriteCopy:
		low = pageExecuteRead
	}
	return high | low
}

// RemoveExecuteAccess strips execute permission from a PAGE_* protection
// constant, preserving any high-byte flags (spec.md §4.6).
func RemoveExecuteAccess(prot uint32) uint32 {
	low := prot & protectionLowByteMask
	high := prot &^ protectionLowByteMask
	switch low {
	case pageExecute:
		low = pageNoAccess
	case pageExecuteRead:
		low = pageReadOnly
	case pageExecuteReadWrite:
		low = pageReadWrite
	case pageExecuteWriteCopy:
		low = pageWriteCopy
	}
	return high | low
}
