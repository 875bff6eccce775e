package logic_test

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"ripple/dal"
	"ripple/dto"
	"ripple/logic"
	"ripple/shared"
	"ripple/test"
	"ripple/test/mocks"
	"testing"
	"time"
)

func TestTimeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "V", "viewer")
	test.SeedAccount(t, h.repo, "F", "author")
	test.SeedAccount(t, h.repo, "R", "replier")

	require.NoError(t, h.graph.Follow(ctx, "V", "F"))

	drop, err := h.drops.Create(ctx, "F", "grateful for coffee", am("2024-05-01"))
	require.NoError(t, err)

	items, err := h.tl.BuildTimeline(ctx, "V")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, drop.Id, items[0].Id)
	assert.Equal(t, "grateful for coffee", items[0].Body)
	assert.Equal(t, "author", items[0].Author.Handle)
	assert.Equal(t, 0, items[0].HeartCount)
	assert.False(t, items[0].Hearted)
	assert.NotNil(t, items[0].Ripples)
	assert.Empty(t, items[0].Ripples)

	state, err := h.eng.Toggle(ctx, drop.Id, "V")
	require.NoError(t, err)
	assert.True(t, state.Hearted)
	items, err = h.tl.BuildTimeline(ctx, "V")
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].HeartCount)
	assert.True(t, items[0].Hearted)

	// R does not follow F but can still ripple on the drop
	h.clock.Advance(time.Minute)
	_, err = h.threads.Create(ctx, drop.Id, "R", "nice!")
	require.NoError(t, err)
	profileItems, err := h.tl.BuildProfileTimeline(ctx, "F", "F")
	require.NoError(t, err)
	require.Len(t, profileItems, 1)
	require.Len(t, profileItems[0].Ripples, 1)
	assert.Equal(t, "nice!", profileItems[0].Ripples[0].Body)
	assert.Equal(t, "replier", profileItems[0].Ripples[0].Author.Handle)
	// F sees the heart count but has not hearted it
	assert.Equal(t, 1, profileItems[0].HeartCount)
	assert.False(t, profileItems[0].Hearted)

	_, err = h.drops.Create(ctx, "F", "second coffee", am("2024-05-01"))
	var conflict *shared.SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, shared.PeriodAM, conflict.Slot.Period)

	_, err = h.drops.Create(ctx, "F", "evening tea", pm("2024-05-01"))
	require.NoError(t, err)

	// R follows nobody: its timeline is only its own drops
	items, err = h.tl.BuildTimeline(ctx, "R")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTimeline_Deterministic(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "v", "viewer")
	for _, id := range []string{"a", "b", "c"} {
		test.SeedAccount(t, h.repo, id, "user_"+id)
		require.NoError(t, h.graph.Follow(ctx, "v", id))
	}
	// Same instant for every drop: order falls back to id
	for _, id := range []string{"a", "b", "c", "v"} {
		_, err := h.drops.Create(ctx, id, "same moment "+id, am("2024-05-01"))
		require.NoError(t, err)
	}
	h.clock.Advance(5 * time.Hour)
	_, err := h.drops.Create(ctx, "a", "later", pm("2024-05-01"))
	require.NoError(t, err)

	first, err := h.tl.BuildTimeline(ctx, "v")
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, "later", first[0].Body)
	for i := 1; i < len(first)-1; i++ {
		assert.True(t, first[i].CreatedAt.Equal(first[i+1].CreatedAt))
		assert.Greater(t, first[i].Id, first[i+1].Id)
	}
	for i := 0; i < 5; i++ {
		again, err := h.tl.BuildTimeline(ctx, "v")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTimeline_DropAuthorsInOneBatch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "v", "viewer")
	test.SeedAccount(t, h.repo, "f", "friend")
	require.NoError(t, h.graph.Follow(ctx, "v", "f"))
	for _, slot := range []shared.Slot{am("2024-05-01"), pm("2024-05-01"), am("2024-05-02")} {
		_, err := h.drops.Create(ctx, "f", "drop in "+slot.String(), slot)
		require.NoError(t, err)
		h.clock.Advance(time.Hour)
	}
	_, err := h.drops.Create(ctx, "v", "mine", pm("2024-05-02"))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	mockDir := mocks.NewMockIDirectory(ctrl)
	mockDir.EXPECT().ProfilesByIds(gomock.Any(), test.SameIds("v", "f")).
		Return(map[string]*dal.Account{"f": {Id: "f", Handle: "friend"}}, nil).
		Times(1)

	tl := logic.NewTimeline(h.cfg, test.NewDiscardLogger(), h.clock, h.txt, h.graph, h.drops, h.eng, h.threads,
		mockDir, h.metrics)
	items, err := tl.BuildTimeline(ctx, "v")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "mine", items[0].Body)
	// Unresolved author keeps its id only
	assert.Equal(t, dto.AuthorView{Id: "v"}, items[0].Author)
	assert.Equal(t, "friend", items[1].Author.Handle)
}

func TestTimeline_StoreFailurePropagates(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	mockGraph := mocks.NewMockISocialGraph(ctrl)
	boom := errors.New("backing store unavailable")
	mockGraph.EXPECT().ViewerAccounts(gomock.Any(), "v").Return(nil, boom)

	tl := logic.NewTimeline(h.cfg, test.NewDiscardLogger(), h.clock, h.txt, mockGraph, h.drops, h.eng, h.threads,
		h.dir, h.metrics)
	_, err := tl.BuildTimeline(context.Background(), "v")
	assert.ErrorIs(t, err, boom)
}

func TestComposerState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	test.SeedAccount(t, h.repo, "v", "viewer")

	// 08:00 UTC is still morning in UTC but already 17:00 in Tokyo
	state, err := h.tl.ComposerState(ctx, "v", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, am("2024-05-01"), state.Slot)
	assert.False(t, state.SlotUsed)
	assert.Equal(t, "What are you grateful for this morning?", state.Prompt)
	assert.Empty(t, state.Offered)

	_, err = h.drops.Create(ctx, "v", "sunrise", state.Slot)
	require.NoError(t, err)
	state, err = h.tl.ComposerState(ctx, "v", time.UTC)
	require.NoError(t, err)
	assert.True(t, state.SlotUsed)
	assert.Equal(t, []string{"This morning's gratitude has been offered.", "Rest in it. Return at dusk."}, state.Offered)
	assert.Equal(t, []shared.Slot{am("2024-05-01")}, state.UsedSlots)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	state, err = h.tl.ComposerState(ctx, "v", tokyo)
	require.NoError(t, err)
	assert.Equal(t, pm("2024-05-01"), state.Slot)
	assert.False(t, state.SlotUsed)
	assert.Equal(t, "What are you grateful for this evening?", state.Prompt)
}
