package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/trustboard/internal/engine"
)

// View renders the current view (Bubble Tea interface).
func (m LeaderboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return fmt.Sprintf("Error: %v\n", m.err) + SubtleStyle.Render("Press 'r' to retry, 'q' to quit")
	case ViewStateLoading:
		return RenderLoading(m.loadingState)
	case ViewStateList, ViewStateDetail:
		return m.renderListView()
	default:
		return ""
	}
}

func (m LeaderboardModel) renderListView() string {
	if m.board == nil || len(m.board.Influencers) == 0 {
		return msgNoData + "\n"
	}

	var sections []string
	if m.view.Degraded {
		sections = append(sections, BannerStyle.Render(msgDegraded))
	}
	sections = append(sections, m.renderStats(), m.renderStatusBar())

	if len(m.view.Influencers) == 0 {
		sections = append(sections, SubtleStyle.Render("No influencers in "+m.view.Category))
	} else {
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.help.View(LeaderboardKeyMap()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStats renders the three summary cards.
func (m LeaderboardModel) renderStats() string {
	stats := m.view.Stats
	card := func(label, value string) string {
		return BoxStyle.Render(LabelStyle.Render(label) + "\n" + ValueStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Active Influencers", engine.FormatCount(int64(stats.ActiveInfluencers))),
		card("Claims Verified", engine.FormatCount(int64(stats.ClaimsVerified))),
		card("Average Trust Score", fmt.Sprintf("%.1f%%", stats.AverageTrustScore)),
	)
}

func (m LeaderboardModel) renderStatusBar() string {
	status := fmt.Sprintf("Category: %s | Sort: %s | %d shown",
		m.view.Category, m.view.Order.Label(), len(m.view.Influencers))
	return InfoStyle.Render(status)
}
