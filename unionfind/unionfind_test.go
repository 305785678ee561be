package unionfind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCompressesPath(t *testing.T) {
	f := New(5)
	f.Union(0, 1)
	f.Union(1, 2)
	f.Union(2, 3)

	root := f.Find(0)
	// The chain 0->1->2->3 is relinked directly to the root.
	for i := int32(0); i < 3; i++ {
		require.Equal(t, root, f.parent[i])
	}
	require.Equal(t, root, f.Find(1))
	require.Equal(t, root, f.Find(2))
	require.Equal(t, root, f.Find(3))
	require.NotEqual(t, root, f.Find(4))
}

func TestUnionIsIdempotent(t *testing.T) {
	f := New(3)
	f.Union(0, 1)
	f.Union(0, 1)
	require.Equal(t, f.Find(0), f.Find(1))
}
