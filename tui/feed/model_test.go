package feed

import (
	"context"
	"errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ripple/dto"
	"ripple/reconcile"
	"strings"
	"testing"
	"time"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type stubBackend struct {
	timeline  *dto.TimelineResp
	rippleErr error
	deleteErr error
	heartErr  error
	heartOn   bool
	deleted   []string
	ripples   []string
}

func (b *stubBackend) Timeline(context.Context) (*dto.TimelineResp, error) {
	return b.timeline, nil
}

func (b *stubBackend) CreateRipple(_ context.Context, dropId, body string) (*dto.RippleView, error) {
	if b.rippleErr != nil {
		return nil, b.rippleErr
	}
	b.ripples = append(b.ripples, dropId+":"+body)
	return &dto.RippleView{Id: "r-new", DropId: dropId, Body: body}, nil
}

func (b *stubBackend) DeleteRipple(_ context.Context, id string) error {
	b.deleted = append(b.deleted, id)
	return b.deleteErr
}

func (b *stubBackend) DeleteDrop(_ context.Context, id string) error {
	b.deleted = append(b.deleted, id)
	return b.deleteErr
}

func (b *stubBackend) ToggleHeart(_ context.Context, dropId string) (*dto.HeartState, error) {
	if b.heartErr != nil {
		return nil, b.heartErr
	}
	return &dto.HeartState{DropId: dropId, Hearted: b.heartOn, Count: 1}, nil
}

var me = dto.AuthorView{Id: "v", Handle: "viewer"}

func snapshot(items ...dto.TimelineItem) *dto.TimelineResp {
	return &dto.TimelineResp{Items: items}
}

func item(id, authorId string, at time.Time, ripples ...dto.RippleView) dto.TimelineItem {
	if ripples == nil {
		ripples = []dto.RippleView{}
	}
	return dto.TimelineItem{
		Id:        id,
		Author:    dto.AuthorView{Id: authorId, Handle: "user_" + authorId},
		Body:      "grateful " + id,
		CreatedAt: at,
		Ripples:   ripples,
	}
}

func newLoaded(t *testing.T, b *stubBackend) Model {
	t.Helper()
	m := New(b, me)
	m.now = func() time.Time { return t0.Add(time.Minute) }
	m, _ = m.Update(SnapshotMsg{Resp: b.timeline})
	return m
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestRipple_ProvisionalThenConfirmed(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0))}
	m := newLoaded(t, b)

	m, cmd := m.Update(SubmitRippleMsg{DropId: "d1", Body: "thank you"})
	require.Len(t, m.Items()[0].Ripples, 1)
	assert.True(t, reconcile.IsLocalId(m.Items()[0].Ripples[0].Id))

	// Create succeeds; the follow-up fetch returns the confirmed copy
	b.timeline = snapshot(item("d1", "f", t0,
		dto.RippleView{Id: "r1", DropId: "d1", Author: me, Body: "thank you", CreatedAt: t0.Add(time.Minute + time.Second)}))
	msg := run(t, cmd)
	m, cmd = m.Update(msg)
	m, _ = m.Update(run(t, cmd))

	ripples := m.Items()[0].Ripples
	require.Len(t, ripples, 1)
	assert.Equal(t, "r1", ripples[0].Id)
	assert.Equal(t, []string{"d1:thank you"}, b.ripples)
}

func TestRipple_FailureRestoresComposer(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0)), rippleErr: errors.New("Ripple must be 1–280 characters (got 0)")}
	m := newLoaded(t, b)

	m, cmd := m.Update(SubmitRippleMsg{DropId: "d1", Body: "kind words"})
	assert.False(t, m.composing)
	m, _ = m.Update(run(t, cmd))

	assert.Empty(t, m.Items()[0].Ripples)
	assert.True(t, m.composing)
	assert.Equal(t, "d1", m.composeTo)
	assert.Equal(t, "kind words", m.input.Value())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "1–280 characters")
}

func TestRipple_BlankIsIgnored(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0))}
	m := newLoaded(t, b)

	m, cmd := m.Update(SubmitRippleMsg{DropId: "d1", Body: "   "})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Items()[0].Ripples)
}

func TestDelete_HiddenAtOnceAndRevertedOnFailure(t *testing.T) {
	b := &stubBackend{
		timeline:  snapshot(item("d1", "v", t0), item("d2", "f", t0.Add(-time.Hour))),
		deleteErr: errors.New("403 Not Permitted"),
	}
	m := newLoaded(t, b)

	m, cmd := m.Update(DeleteMsg{Id: "d1"})
	require.Len(t, m.Items(), 1)
	assert.Equal(t, "d2", m.Items()[0].Id)

	m, _ = m.Update(run(t, cmd))
	assert.Len(t, m.Items(), 2)
	assert.EqualError(t, m.Err(), "403 Not Permitted")
	assert.Equal(t, []string{"d1"}, b.deleted)
}

func TestDelete_ConfirmedBySnapshot(t *testing.T) {
	mine := dto.RippleView{Id: "r1", DropId: "d1", Author: me, Body: "mine", CreatedAt: t0}
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0, mine))}
	m := newLoaded(t, b)

	m, cmd := m.Update(DeleteMsg{Id: "r1", IsRipple: true})
	assert.Empty(t, m.Items()[0].Ripples)

	b.timeline = snapshot(item("d1", "f", t0))
	m, cmd = m.Update(run(t, cmd))
	m, _ = m.Update(run(t, cmd))
	assert.Empty(t, m.Items()[0].Ripples)
	assert.Equal(t, 0, m.overlay.PendingRemovals())
}

func TestDelete_ProvisionalIsNotSent(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0))}
	m := newLoaded(t, b)
	m, _ = m.Update(SubmitRippleMsg{DropId: "d1", Body: "hi"})

	_, cmd := m.Update(DeleteMsg{Id: m.Items()[0].Ripples[0].Id, IsRipple: true})
	assert.Nil(t, cmd)
	assert.Empty(t, b.deleted)
}

func TestHeart_OptimisticAndRollback(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0)), heartErr: errors.New("boom")}
	m := newLoaded(t, b)

	m, cmd := m.Update(ToggleHeartMsg{DropId: "d1"})
	assert.True(t, m.Items()[0].Hearted)
	assert.Equal(t, 1, m.Items()[0].HeartCount)

	m, _ = m.Update(run(t, cmd))
	assert.False(t, m.Items()[0].Hearted)
	assert.Equal(t, 0, m.Items()[0].HeartCount)
	assert.EqualError(t, m.Err(), "boom")
}

func TestHeart_SettlesOnSnapshot(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0)), heartOn: true}
	m := newLoaded(t, b)

	m, cmd := m.Update(ToggleHeartMsg{DropId: "d1"})
	hearted := item("d1", "f", t0)
	hearted.Hearted = true
	hearted.HeartCount = 1
	b.timeline = snapshot(hearted)

	m, cmd = m.Update(run(t, cmd))
	m, _ = m.Update(run(t, cmd))
	assert.True(t, m.Items()[0].Hearted)
	assert.Equal(t, 1, m.Items()[0].HeartCount)
	assert.Equal(t, 0, m.overlay.PendingHearts())
}

func TestKeys_ComposeAndSend(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0))}
	m := newLoaded(t, b)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	require.True(t, m.composing)
	for _, r := range "yes" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.composing)
	require.Len(t, m.Items()[0].Ripples, 1)
	assert.Equal(t, "yes", m.Items()[0].Ripples[0].Body)
}

func TestKeys_DeleteOnlyOwnDrop(t *testing.T) {
	b := &stubBackend{timeline: snapshot(item("d1", "f", t0))}
	m := newLoaded(t, b)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Nil(t, cmd)
}

func TestView_TruncatesToWidth(t *testing.T) {
	long := item("d1", "f", t0)
	long.Body = strings.Repeat("gratitude ", 30)
	b := &stubBackend{timeline: snapshot(long)}
	m := newLoaded(t, b)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	view := m.View()
	assert.Contains(t, view, "@user_f")
	assert.Contains(t, view, "…")
}

func TestView_EmptyHint(t *testing.T) {
	b := &stubBackend{timeline: &dto.TimelineResp{Items: []dto.TimelineItem{}, EmptyHint: "No drops yet."}}
	m := newLoaded(t, b)
	assert.Contains(t, m.View(), "No drops yet.")
}
