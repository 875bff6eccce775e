package feed

import (
	"fmt"
	"github.com/charmbracelet/x/ansi"
	"ripple/dto"
	"ripple/reconcile"
	"strings"
)

func displayName(a dto.AuthorView) string {
	switch {
	case a.Handle != "":
		return "@" + a.Handle
	case a.DisplayName != "":
		return a.DisplayName
	default:
		return "someone"
	}
}

// fit truncates every line of s to the usable width.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = ansi.Truncate(ln, width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("ripple"))
	sb.WriteString("\n")
	if m.loading {
		sb.WriteString(metaStyle.Render("Refreshing..."))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render(fit(m.err.Error(), m.width)))
		sb.WriteString("\n")
	}
	if len(m.items) == 0 && m.emptyHint != "" {
		sb.WriteString(metaStyle.Render(fit(m.emptyHint, m.width)))
		sb.WriteString("\n")
	}

	inner := m.width - 4
	for i, item := range m.items {
		card := m.renderItem(item, inner)
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render(card))
		} else {
			sb.WriteString(unselectedStyle.Render(card))
		}
		sb.WriteString("\n")
	}

	if m.composing {
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	}
	sb.WriteString(statusStyle.Render(m.statusLine()))
	return sb.String()
}

func (m Model) renderItem(item dto.TimelineItem, width int) string {
	var sb strings.Builder
	head := fmt.Sprintf("%s %s",
		authorStyle.Render(displayName(item.Author)),
		metaStyle.Render(fmt.Sprintf("%s · %s", item.Slot.Date, item.Slot.Period)))
	sb.WriteString(fit(head, width))
	sb.WriteString("\n")
	sb.WriteString(bodyStyle.Render(fit(item.Body, width)))
	sb.WriteString("\n")

	heart := "♡"
	if item.Hearted {
		heart = "♥"
	}
	sb.WriteString(heartStyle.Render(fmt.Sprintf("%s %d", heart, item.HeartCount)))
	if n := len(item.Ripples); n > 0 {
		sb.WriteString(metaStyle.Render(fmt.Sprintf("  %d ripples", n)))
	}
	for _, r := range item.Ripples {
		line := fmt.Sprintf("↳ %s: %s", displayName(r.Author), r.Body)
		if reconcile.IsLocalId(r.Id) {
			line += pendingStyle.Render(" (sending)")
		}
		sb.WriteString("\n")
		sb.WriteString(rippleStyle.Render(fit(line, width-2)))
	}
	return sb.String()
}

func (m Model) statusLine() string {
	if m.composing {
		return "enter send · esc cancel"
	}
	status := "j/k move · h heart · c ripple · d delete · x delete ripple · r refresh · q quit"
	if m.usedSlots > 0 {
		status = fmt.Sprintf("%d of 2 drops offered today · %s", m.usedSlots, status)
	}
	return fit(status, m.width)
}
