package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles agrupa los estilos de las filas del chat.
type Styles struct {
	UserAvatar      lipgloss.Style
	AssistantAvatar lipgloss.Style
	UserText        lipgloss.Style
	AssistantText   lipgloss.Style
	Busy            lipgloss.Style
}

// NewStyles crea estilos atados al perfil de color de out.
func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	return Styles{
		UserAvatar: r.NewStyle().
			Foreground(lipgloss.Color("#7dd3fc")).
			Bold(true),
		AssistantAvatar: r.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true),
		UserText: r.NewStyle(),
		AssistantText: r.NewStyle().
			Foreground(lipgloss.Color("#e5e7eb")),
		Busy: r.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Italic(true),
	}
}
