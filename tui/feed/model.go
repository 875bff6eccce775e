package feed

import (
	"context"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"ripple/dto"
	"ripple/reconcile"
	"ripple/shared"
	"time"
)

// Backend is the slice of the ripple API the feed needs. *client.Client satisfies it.
type Backend interface {
	Timeline(ctx context.Context) (*dto.TimelineResp, error)
	CreateRipple(ctx context.Context, dropId, body string) (*dto.RippleView, error)
	DeleteRipple(ctx context.Context, rippleId string) error
	DeleteDrop(ctx context.Context, dropId string) error
	ToggleHeart(ctx context.Context, dropId string) (*dto.HeartState, error)
}

// --- Messages ---

// SnapshotMsg carries a fresh server timeline.
type SnapshotMsg struct {
	Resp *dto.TimelineResp
}

type SnapshotErrorMsg struct {
	Err error
}

type RefreshMsg struct{}

type SubmitRippleMsg struct {
	DropId string
	Body   string
}

type RippleResultMsg struct {
	LocalId string
	Ripple  *dto.RippleView
	Err     error
}

// DeleteMsg removes a drop, or a ripple when IsRipple is set.
type DeleteMsg struct {
	Id       string
	IsRipple bool
}

type DeleteResultMsg struct {
	Id  string
	Err error
}

type ToggleHeartMsg struct {
	DropId string
}

// HeartResultMsg reports a toggle; Hearted is the state that was asked for.
type HeartResultMsg struct {
	DropId  string
	Hearted bool
	State   *dto.HeartState
	Err     error
}

// --- Model ---

// Model renders the viewer's timeline with unconfirmed changes applied on top.
type Model struct {
	backend   Backend
	me        dto.AuthorView
	now       func() time.Time
	overlay   *reconcile.Overlay
	items     []dto.TimelineItem
	usedSlots int
	emptyHint string
	cursor    int
	loading   bool
	err       error
	keys      KeyMap
	input     textinput.Model
	composing bool
	composeTo string
	width     int
}

func New(backend Backend, me dto.AuthorView) Model {
	ti := textinput.New()
	ti.Placeholder = "Send a ripple..."
	ti.CharLimit = 280

	return Model{
		backend: backend,
		me:      me,
		now:     time.Now,
		overlay: reconcile.NewOverlay(),
		keys:    DefaultKeyMap(),
		input:   ti,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchSnapshot()
}

func (m Model) Items() []dto.TimelineItem {
	return m.items
}

func (m Model) Err() error {
	return m.err
}

func (m *Model) rerender() {
	m.items = m.overlay.Render()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() *dto.TimelineItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

func (m Model) findItem(dropId string) *dto.TimelineItem {
	for i := range m.items {
		if m.items[i].Id == dropId {
			return &m.items[i]
		}
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.loading = false
		m.overlay.ApplySnapshot(msg.Resp.Items)
		m.usedSlots = len(msg.Resp.UsedSlots)
		m.emptyHint = msg.Resp.EmptyHint
		m.rerender()
		return m, nil

	case SnapshotErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case RefreshMsg:
		m.loading = true
		return m, m.fetchSnapshot()

	case SubmitRippleMsg:
		body := shared.NormalizeBody(msg.Body)
		if body == "" || m.findItem(msg.DropId) == nil {
			return m, nil
		}
		localId := m.overlay.AddRipple(msg.DropId, body, m.me, m.now())
		m.err = nil
		m.composing = false
		m.input.Reset()
		m.input.Blur()
		m.rerender()
		return m, m.createRipple(localId, msg.DropId, body)

	case RippleResultMsg:
		if msg.Err != nil {
			if pr, ok := m.overlay.DiscardRipple(msg.LocalId); ok {
				m.composeTo = pr.DropId
				m.composing = true
				m.input.SetValue(pr.Body)
				m.input.Focus()
			}
			m.err = msg.Err
			m.rerender()
			return m, nil
		}
		return m, m.fetchSnapshot()

	case DeleteMsg:
		if reconcile.IsLocalId(msg.Id) {
			return m, nil
		}
		m.err = nil
		m.overlay.MarkRemoved(msg.Id)
		m.rerender()
		return m, m.delete(msg.Id, msg.IsRipple)

	case DeleteResultMsg:
		if msg.Err != nil {
			m.overlay.RevertRemoval(msg.Id)
			m.err = msg.Err
			m.rerender()
			return m, nil
		}
		return m, m.fetchSnapshot()

	case ToggleHeartMsg:
		item := m.findItem(msg.DropId)
		if item == nil {
			return m, nil
		}
		want := !item.Hearted
		m.err = nil
		m.overlay.SetHeart(msg.DropId, want)
		m.rerender()
		return m, m.toggleHeart(msg.DropId, want)

	case HeartResultMsg:
		if msg.Err != nil {
			m.overlay.RevertHeart(msg.DropId, msg.Hearted)
			m.err = msg.Err
			m.rerender()
			return m, nil
		}
		// The server toggles; if another toggle raced this one, show what it settled on.
		if msg.State != nil && msg.State.Hearted != msg.Hearted {
			m.overlay.SetHeart(msg.DropId, msg.State.Hearted)
			m.rerender()
		}
		return m, m.fetchSnapshot()

	case tea.KeyMsg:
		if m.composing {
			return m.updateComposer(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateComposer(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.Update(SubmitRippleMsg{DropId: m.composeTo, Body: m.input.Value()})
	case key.Matches(msg, m.keys.Cancel):
		m.composing = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m.Update(RefreshMsg{})
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Heart):
		if sel := m.selected(); sel != nil {
			return m.Update(ToggleHeartMsg{DropId: sel.Id})
		}
	case key.Matches(msg, m.keys.Ripple):
		if sel := m.selected(); sel != nil {
			m.composeTo = sel.Id
			m.composing = true
			cmd := m.input.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Delete):
		if sel := m.selected(); sel != nil && sel.Author.Id == m.me.Id {
			return m.Update(DeleteMsg{Id: sel.Id})
		}
	case key.Matches(msg, m.keys.DeleteRipple):
		if sel := m.selected(); sel != nil {
			for _, r := range sel.Ripples {
				if r.Author.Id == m.me.Id && !reconcile.IsLocalId(r.Id) {
					return m.Update(DeleteMsg{Id: r.Id, IsRipple: true})
				}
			}
		}
	}
	return m, nil
}
