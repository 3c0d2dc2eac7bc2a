package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/trustboard/internal/engine"
)

// View renders the current view (Bubble Tea interface).
func (m DetailModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return fmt.Sprintf("Error: %v\n", m.err) + SubtleStyle.Render("Press 'r' to retry, esc to go back")
	case ViewStateLoading:
		return RenderLoading(m.loadingState)
	case ViewStateDetail, ViewStateList:
		return m.renderDetailView()
	default:
		return ""
	}
}

func (m DetailModel) renderDetailView() string {
	if m.payload == nil {
		return msgNoData + "\n" + SubtleStyle.Render("Select an influencer on the leaderboard and press enter")
	}

	var sections []string
	if m.view.Degraded {
		sections = append(sections, BannerStyle.Render(msgDegraded))
	}
	sections = append(sections, m.renderProfile(), m.renderStats(), m.renderFilterBar())

	if len(m.view.Claims) == 0 {
		sections = append(sections, SubtleStyle.Render(msgNoMatches))
	} else {
		sections = append(sections, m.claims.View())
	}

	if m.searching {
		sections = append(sections, LabelStyle.Render("Search: ")+m.search.View())
	}
	sections = append(sections, m.help.View(DetailKeyMap()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DetailModel) renderProfile() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.view.Username))
	if previews := engine.TweetPreviews(m.view.Tweets, 3); len(previews) > 0 { //nolint:mnd // Header shows three tweets.
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(strings.Join(previews, " • ")))
	}
	return b.String()
}

func (m DetailModel) renderStats() string {
	card := func(label, value string) string {
		return BoxStyle.Render(LabelStyle.Render(label) + "\n" + ValueStyle.Render(value))
	}

	followers := "-"
	if m.view.Followers > 0 {
		followers = engine.FormatCount(m.view.Followers)
	}

	trust := m.view.AggregateString
	if m.view.AggregateScore != nil {
		trust = ScoreStyle(*m.view.AggregateScore).Render(trust)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Trust Score", fmt.Sprintf("%s (based on %d claims)", trust, m.view.TotalClaims)),
		card("Yearly Revenue", "$"+m.view.Stats.YearlyRevenue),
		card("Products", fmt.Sprintf("%d", m.view.Stats.ProductsCount)),
		card("Followers", followers),
	)
}

func (m DetailModel) renderFilterBar() string {
	bar := fmt.Sprintf("Category: %s | Status: %s", m.query.Category, m.query.Status)
	if m.query.Search != "" {
		bar += fmt.Sprintf(" | Search: %q", m.query.Search)
	}
	bar += fmt.Sprintf(" | Showing %d of %d claims", len(m.view.Claims), m.view.TotalClaims)
	return InfoStyle.Render(bar)
}

// renderClaimCard renders one claim as a bordered card.
func renderClaimCard(c engine.Claim, selected bool) string {
	status := StatusStyle(string(c.Status)).Render(strings.ToLower(string(c.Status)))
	score := ScoreStyle(c.TrustScore).Render(fmt.Sprintf("%d%%", c.TrustScore))

	body := fmt.Sprintf("%s  %s\n%s %s\n%s",
		status, ValueStyle.Render(c.Title),
		LabelStyle.Render("Trust Score:"), score,
		SubtleStyle.Render(fmt.Sprintf("%d supporting, %d contradicting", len(c.Supporting), len(c.Contradicting))),
	)
	if selected {
		return SelectedBoxStyle.Render(body)
	}
	return BoxStyle.Render(body)
}
