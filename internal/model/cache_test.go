package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openInMemoryCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache("")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissReturnsNotOK(t *testing.T) {
	c := openInMemoryCache(t)

	_, _, ok, err := c.Get("/some/train/dir")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCachePutThenGetRoundTrips(t *testing.T) {
	c := openInMemoryCache(t)

	var train Train
	train.Trans[5][1][2][3] = -2.25
	global := GlobalParams{Tr: [14]float64{TrMM: -0.1}}

	require.NoError(t, c.Put("/some/train/dir", &train, global))

	got, gotGlobal, ok, err := c.Get("/some/train/dir")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, train.Trans[5][1][2][3], got.Trans[5][1][2][3])
	require.Equal(t, global.Tr[TrMM], gotGlobal.Tr[TrMM])
}

func TestCachePutReplacesExistingEntry(t *testing.T) {
	c := openInMemoryCache(t)

	var train1, train2 Train
	train1.Trans[0][0][0][0] = -1
	train2.Trans[0][0][0][0] = -9

	require.NoError(t, c.Put("dir", &train1, GlobalParams{}))
	require.NoError(t, c.Put("dir", &train2, GlobalParams{}))

	got, _, ok, err := c.Get("dir")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, -9.0, got.Trans[0][0][0][0])
}
