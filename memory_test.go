package x86dbg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveWriteAccess(t *testing.T) {
	require.Equal(t, pageReadOnly, RemoveWriteAccess(pageReadWrite))
	require.Equal(t, pageReadOnly, RemoveWriteAccess(pageWriteCopy))
	require.Equal(t, pageExecuteRead, RemoveWriteAccess(pageExecuteReadWrite))
	require.Equal(t, pageExecuteRead, RemoveWriteAccess(pageExecuteWriteCopy))
	require.Equal(t, pageReadOnly, RemoveWriteAccess(pageReadOnly), "a protection not in the table is returned unchanged")

	const pageGuard = 0x100
	require.Equal(t, uint32(pageGuard|pageReadOnly), RemoveWriteAccess(pageGuard|pageReadWrite), "high-byte flags must survive untouched")
}

func TestRemoveExecuteAccess(t *testing.T) {
	require.Equal(t, pageNoAccess, RemoveExecuteAccess(pageExecute))
	require.Equal(t, pageReadOnly, RemoveExecuteAccess(pageExecuteRead))
	require.Equal(t, pageReadWrite, RemoveExecuteAccess(pageExecuteReadWrite))
	require.Equal(t, pageWriteCopy, RemoveExecuteAccess(pageExecuteWriteCopy))
	require.Equal(t, pageReadWrite, RemoveExecuteAccess(pageReadWrite), "a protection not in the table is returned unchanged")
}
