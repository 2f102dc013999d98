package x86dbg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestProcess(t *testing.T, k *fakeKernel) *Process {
	processHandle := k.newHandle()
	return NewProcess(k, nil, 1, processHandle, 1, CreationInfo{})
}

// TestSafeReadRoundTrip is spec.md §8's "Safe read round-trip" property
// and §8 scenario 4.
func TestSafeReadRoundTrip(t *testing.T) {
	k := newFakeKernel(t)
	p := newTestProcess(t, k)
	k.setMemory(0x1000, []byte{0x90, 0x90, 0x90, 0x90})

	require.NoError(t, p.SetSoftwareBreakpoint(0x1001, false, nil))

	unsafeBytes, err := p.ReadMemoryUnsafe(0x1000, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0x90, INT3, 0x90, 0x90}, unsafeBytes)

	safeBytes, err := p.ReadMemorySafe(0x1000, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0x90, 0x90, 0x90, 0x90}, safeBytes)
}

// TestSafeWriteRefusesOverlap is spec.md §8's "Safe write refuses
// overlap" property and §8 scenario 5.
func TestSafeWriteRefusesOverlap(t *testing.T) {
	k := newFakeKernel(t)
	p := newTestProcess(t, k)
	k.setMemory(0x2000, []byte{0x90, 0x90, 0x90})
	require.NoError(t, p.SetSoftwareBreakpoint(0x2000, false, nil))

	err := p.WriteMemorySafe(0x1FFF, []byte{0x11, 0x22, 0x33})
	require.ErrorIs(t, err, ErrUnsafeWriteOverlapsBreakpoint)

	_, stillArmed := p.FindSoftwareBreakpoint(0x2000)
	require.True(t, stillArmed)
	require.Equal(t, byte(INT3), k.memory[0x2000])
}

func TestValidMemory(t *testing.T) {
	k := newFakeKernel(t)
	p := newTestProcess(t, k)
	k.markInvalid(0x3000)

	require.False(t, p.ValidMemory(0x3000))
	require.True(t, p.ValidMemory(0x3001))
}
