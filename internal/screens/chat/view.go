package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	convo "github.com/abhisek/speakflow/internal/chat"
	"github.com/abhisek/speakflow/internal/ui/components"
	"github.com/abhisek/speakflow/internal/ui/theme"
)

var typingFrames = []string{"•  ", "•• ", "•••"}

func (c *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	header := theme.Body.Bold(true).Render("AI Role-play") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render("Topic: "+c.loop.Topic())
	input := components.Card(c.input.View(), cw)

	avail := max(height-lipgloss.Height(header)-lipgloss.Height(input)-2, 3)
	transcript := lastLines(c.renderMessages(cw), avail)

	content := header + "\n\n" + transcript + "\n" + input
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (c *ChatScreen) renderMessages(cw int) string {
	bubbleWidth := cw * 4 / 5
	var rows []string

	for i, m := range c.loop.Messages() {
		var bubble string
		switch m.Role {
		case convo.RoleUser:
			style := theme.UserBubble
			if lipgloss.Width(m.Content) > bubbleWidth-2 {
				style = style.Width(bubbleWidth)
			}
			bubble = style.Render(m.Content)
			bubble = lipgloss.PlaceHorizontal(cw, lipgloss.Right, bubble)
		default:
			style := theme.AssistantBubble
			if i == c.selected {
				style = theme.AssistantSelected
			}
			body := m.Content
			if i == c.selected {
				label := "🔊 ctrl+p to listen"
				if c.playing {
					label = "🔊 Playing..."
				}
				body += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(label)
			}
			bubble = style.Width(bubbleWidth).Render(body)
		}
		rows = append(rows, bubble)
	}

	if c.loop.Busy() {
		dots := typingFrames[c.frame%len(typingFrames)]
		rows = append(rows, theme.AssistantBubble.Render(lipgloss.NewStyle().Foreground(theme.TextDim).Render(dots)))
	}
	return strings.Join(rows, "\n")
}

// lastLines keeps the bottom n lines so the newest messages stay visible.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
