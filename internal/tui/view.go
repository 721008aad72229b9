package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/render"
)

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		HeaderStyle.Render("♠ Blackjack ♥"),
		m.renderHand("Dealer", m.layout.DealerY, m.dealerValue()),
		m.renderHand("Player", m.layout.PlayerY, m.playerValue()),
	}

	if panel := m.renderMessagePanel(); panel != "" {
		sections = append(sections, panel)
	}
	if m.scene.PanelVisible(render.PanelGameplay) {
		sections = append(sections, ActionsStyle.Render("Your move: [h] hit  [s] stand"))
	}

	sections = append(sections,
		TitleStyle.Render("Game Log"),
		GameLogStyle.Render(m.logViewport.View()),
		m.help.View(m.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHand(title string, y float64, value string) string {
	row := m.scene.Row(y)
	header := HandInfoStyle.Render(fmt.Sprintf("%s: %s", title, value))
	if len(row) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, InfoStyle.Render("(no cards)"))
	}

	cards := make([]string, 0, len(row))
	for _, v := range row {
		cards = append(cards, m.renderCard(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (m *Model) renderCard(v render.Visual) string {
	var art string
	style := BlackCardStyle
	switch {
	case v.Blank:
		art = ""
	case v.FaceDown:
		art = string(v.Back)
		style = CardBackStyle
	default:
		art = string(v.Face)
		if isRed(v.CardID) {
			style = RedCardStyle
		}
	}
	if m.moving[v.Handle] > 0 {
		style = MovingCardStyle
	}
	return cardFrame.Render(style.Render(strings.TrimRight(art, "\n")))
}

func (m *Model) renderMessagePanel() string {
	if !m.scene.PanelVisible(render.PanelMessage) {
		return ""
	}
	lines := []string{TitleStyle.Render(m.scene.Message(render.PanelMessage))}
	if sub := m.scene.Message(render.PanelSubMessage); sub != "" {
		lines = append(lines, InfoStyle.Render(sub))
	}
	lines = append(lines, ActionsStyle.Render("Press [n] to deal"))
	return panelFrame.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m *Model) playerValue() string {
	hand := m.Session().Player().Hand()
	if hand.Count() == 0 {
		return "-"
	}
	return fmt.Sprint(hand.Value())
}

// dealerValue hides the total while the hole card is face down
func (m *Model) dealerValue() string {
	dealer := m.Session().Dealer()
	if dealer.Hand().Count() == 0 {
		return "-"
	}
	if h, ok := dealer.Visual(1); ok && m.scene.FaceDown(h) {
		return "?"
	}
	return fmt.Sprint(dealer.Hand().Value())
}

func isRed(cardID string) bool {
	return strings.HasSuffix(cardID, "_hearts") || strings.HasSuffix(cardID, "_diamonds")
}

