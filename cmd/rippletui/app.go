package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"ripple/tui/feed"
)

// appModel adapts the feed to tea.Model.
type appModel struct {
	feed feed.Model
}

func (m appModel) Init() tea.Cmd {
	return m.feed.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	return m.feed.View()
}
