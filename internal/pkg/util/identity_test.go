package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveIdentityViewerWins(t *testing.T) {
	id := ResolveIdentity(7, "sess-1")
	require.Equal(t, uint64(7), id.ViewerID)
	require.Empty(t, id.SessionID)
}

func TestResolveIdentitySessionFallback(t *testing.T) {
	id := ResolveIdentity(0, "sess-1")
	require.Zero(t, id.ViewerID)
	require.Equal(t, "sess-1", id.SessionID)
	require.False(t, id.IsAnonymous())
}

func TestResolveIdentityAnonymous(t *testing.T) {
	require.True(t, ResolveIdentity(0, "").IsAnonymous())
}

func TestBucketViewerStable(t *testing.T) {
	first := BucketViewer(12345, 2)
	require.Equal(t, first, BucketViewer(12345, 2))
	require.Contains(t, []int{0, 1}, first)
}
