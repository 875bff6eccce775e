package logic_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"ripple/dal"
	"ripple/logic"
	"ripple/shared"
	"ripple/test"
	"ripple/test/mocks"
	"strings"
	"testing"
	"time"
)

func TestThreadsFor_ResolvesAuthorsInOneBatch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "f", "friend")
	test.SeedAccount(t, h.repo, "r", "replier")
	test.SeedAccount(t, h.repo, "s", "second")
	d1, err := h.drops.Create(ctx, "f", "coffee", am("2024-05-01"))
	require.NoError(t, err)
	d2, err := h.drops.Create(ctx, "f", "sunset", pm("2024-05-01"))
	require.NoError(t, err)
	for _, rp := range []struct{ drop, author, body string }{
		{d1.Id, "r", "nice!"},
		{d1.Id, "s", "same here"},
		{d2.Id, "r", "lovely"},
		{d2.Id, "r", "really lovely"},
	} {
		h.clock.Advance(time.Second)
		_, err = h.threads.Create(ctx, rp.drop, rp.author, rp.body)
		require.NoError(t, err)
	}

	ctrl := gomock.NewController(t)
	mockDir := mocks.NewMockIDirectory(ctrl)
	mockDir.EXPECT().ProfilesByIds(gomock.Any(), test.SameIds("r", "s")).
		Return(map[string]*dal.Account{
			"r": {Id: "r", Handle: "replier"},
			"s": {Id: "s", Handle: "second"},
		}, nil).
		Times(1)

	threads := logic.NewRippleThreads(h.cfg, test.NewDiscardLogger(), h.repo, h.clock, mockDir, h.metrics)
	res, err := threads.ThreadsFor(ctx, []string{d1.Id, d2.Id})
	require.NoError(t, err)

	require.Len(t, res[d1.Id], 2)
	assert.Equal(t, "same here", res[d1.Id][0].Body)
	assert.Equal(t, "second", res[d1.Id][0].Author.Handle)
	assert.Equal(t, "nice!", res[d1.Id][1].Body)
	assert.Equal(t, "replier", res[d1.Id][1].Author.Handle)
	assert.Equal(t, "https://ripple.test/profile/replier", res[d1.Id][1].Author.ProfileUrl)
	require.Len(t, res[d2.Id], 2)
	assert.Equal(t, "really lovely", res[d2.Id][0].Body)
}

func TestThreadsFor_NoRipplesNoLookup(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	mockDir := mocks.NewMockIDirectory(ctrl)
	mockDir.EXPECT().ProfilesByIds(gomock.Any(), gomock.Any()).Times(0)

	threads := logic.NewRippleThreads(h.cfg, test.NewDiscardLogger(), h.repo, h.clock, mockDir, h.metrics)
	res, err := threads.ThreadsFor(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestRipple_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "f", "friend")
	test.SeedAccount(t, h.repo, "r", "replier")
	drop, err := h.drops.Create(ctx, "f", "coffee", am("2024-05-01"))
	require.NoError(t, err)

	var vErr *shared.ValidationError
	_, err = h.threads.Create(ctx, drop.Id, "r", "  ")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Ripple", vErr.Field)

	var nfErr *shared.NotFoundError
	_, err = h.threads.Create(ctx, "missing", "r", "hello")
	assert.ErrorAs(t, err, &nfErr)

	view, err := h.threads.Create(ctx, drop.Id, "r", " nice! ")
	require.NoError(t, err)
	assert.Equal(t, "nice!", view.Body)
	assert.Equal(t, "replier", view.Author.Handle)
	assert.True(t, view.CreatedAt.Equal(h.clock.Now()))

	var authErr *shared.AuthorizationError
	err = h.threads.Delete(ctx, view.Id, "f")
	assert.ErrorAs(t, err, &authErr)

	require.NoError(t, h.threads.Delete(ctx, view.Id, "r"))
	err = h.threads.Delete(ctx, view.Id, "r")
	assert.ErrorAs(t, err, &nfErr)
}

func TestRipple_CreateBodyBounds(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "f", "friend")
	drop, err := h.drops.Create(ctx, "f", "coffee", am("2024-05-01"))
	require.NoError(t, err)

	view, err := h.threads.Create(ctx, drop.Id, "f", "y")
	require.NoError(t, err)
	assert.Equal(t, "y", view.Body)
	view, err = h.threads.Create(ctx, drop.Id, "f", strings.Repeat("y", 280))
	require.NoError(t, err)
	assert.Len(t, view.Body, 280)

	var vErr *shared.ValidationError
	_, err = h.threads.Create(ctx, drop.Id, "f", strings.Repeat("y", 281))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 281, vErr.Length)
	assert.Contains(t, err.Error(), "1–280")
}

func TestRipple_BodyWithAngleBracketsStoredAsWritten(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "f", "friend")
	drop, err := h.drops.Create(ctx, "f", "a<b and c", am("2024-05-01"))
	require.NoError(t, err)
	assert.Equal(t, "a<b and c", drop.Body)

	view, err := h.threads.Create(ctx, drop.Id, "f", " so grateful for you <3 <friend> ")
	require.NoError(t, err)
	assert.Equal(t, "so grateful for you <3 <friend>", view.Body)
}
