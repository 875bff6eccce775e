package feed

import (
	"context"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchSnapshot() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		resp, err := backend.Timeline(context.Background())
		if err != nil {
			return SnapshotErrorMsg{Err: err}
		}
		return SnapshotMsg{Resp: resp}
	}
}

func (m Model) createRipple(localId, dropId, body string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ripple, err := backend.CreateRipple(context.Background(), dropId, body)
		return RippleResultMsg{LocalId: localId, Ripple: ripple, Err: err}
	}
}

func (m Model) delete(id string, isRipple bool) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		var err error
		if isRipple {
			err = backend.DeleteRipple(context.Background(), id)
		} else {
			err = backend.DeleteDrop(context.Background(), id)
		}
		return DeleteResultMsg{Id: id, Err: err}
	}
}

func (m Model) toggleHeart(dropId string, want bool) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		state, err := backend.ToggleHeart(context.Background(), dropId)
		return HeartResultMsg{DropId: dropId, Hearted: want, State: state, Err: err}
	}
}
