package logic_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ripple/shared"
	"ripple/test"
	"testing"
)

func TestSetHandle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct, err := h.dir.UpsertAccount(ctx, "a1", "  Alice <b>A.</b> ", "https://img.example/a.png")
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", acct.DisplayName)
	assert.Equal(t, "", acct.Handle)
	_, err = h.dir.UpsertAccount(ctx, "a2", "Bob", "")
	require.NoError(t, err)

	acct, err = h.dir.SetHandle(ctx, "a1", "  Alice_01 ")
	require.NoError(t, err)
	assert.Equal(t, "alice_01", acct.Handle)

	var taken *shared.HandleTakenError
	_, err = h.dir.SetHandle(ctx, "a2", "ALICE_01")
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "alice_01", taken.Handle)

	var vErr *shared.ValidationError
	for _, bad := range []string{"ab", "has space", "dash-ed", "émile", "x123456789012345678901234567890"} {
		_, err = h.dir.SetHandle(ctx, "a2", bad)
		assert.ErrorAs(t, err, &vErr, bad)
	}

	var nfErr *shared.NotFoundError
	_, err = h.dir.SetHandle(ctx, "ghost", "ghost_handle")
	assert.ErrorAs(t, err, &nfErr)

	acct, err = h.dir.ProfileByHandle(ctx, "Alice_01")
	require.NoError(t, err)
	assert.Equal(t, "a1", acct.Id)
	_, err = h.dir.ProfileByHandle(ctx, "nobody")
	assert.ErrorAs(t, err, &nfErr)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "v", "sunny_viewer")
	test.SeedAccount(t, h.repo, "a", "sunny_day")
	test.SeedAccount(t, h.repo, "b", "sunflower")
	test.SeedAccount(t, h.repo, "c", "moon")
	test.SeedAccount(t, h.repo, "d", "")
	require.NoError(t, h.graph.Follow(ctx, "v", "b"))

	res, err := h.dir.Search(ctx, "  SUN ", "v")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "sunflower", res[0].Author.Handle)
	assert.True(t, res[0].IsFollowing)
	assert.Equal(t, "sunny_day", res[1].Author.Handle)
	assert.False(t, res[1].IsFollowing)

	res, err = h.dir.Search(ctx, "   ", "v")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearch_AtMostTwenty(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	for i := 0; i < 25; i++ {
		id := string(rune('a'+i)) + "_id"
		test.SeedAccount(t, h.repo, id, "user_"+string(rune('a'+i)))
	}
	res, err := h.dir.Search(ctx, "user", "")
	require.NoError(t, err)
	assert.Len(t, res, 20)
}

func TestProfilesByIds_UnknownIdsAbsent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "a", "aaa")
	res, err := h.dir.ProfilesByIds(ctx, []string{"a", "a", "zzz"})
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "aaa", res["a"].Handle)
}
