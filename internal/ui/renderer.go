// Package ui dibuja la sesion de chat en una terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"chat-widget/internal/domain"
)

const (
	userLabel      = "Tu"
	assistantLabel = "Bot"
	busyText       = "pensando..."
	clearLine      = "\r\x1b[K"
)

// TerminalRenderer escribe filas por rol en out. Cada mensaje se imprime una
// sola vez, asi la terminal queda siempre en el ultimo mensaje.
type TerminalRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
	seen   map[string]struct{}
	busy   bool

	// echoesInput indica que la terminal ya muestra lo que el usuario
	// escribio despues de Prompt, asi que las filas de usuario no se repiten.
	echoesInput bool
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{
		out:    out,
		styles: NewStyles(out),
		seen:   make(map[string]struct{}),
	}
}

// NewPromptRenderer es un TerminalRenderer para un REPL: el usuario escribe
// despues de Prompt y sus filas no se vuelven a imprimir.
func NewPromptRenderer(out io.Writer) *TerminalRenderer {
	r := NewTerminalRenderer(out)
	r.echoesInput = true
	return r
}

// Prompt devuelve el prefijo de la fila de usuario, listo para imprimir antes de leer.
func (r *TerminalRenderer) Prompt() string {
	return r.styles.UserAvatar.Render(userLabel+" >") + " "
}

func (r *TerminalRenderer) DisplayMessages(messages []domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.busy {
		fmt.Fprint(r.out, clearLine)
	}
	for _, m := range messages {
		if _, ok := r.seen[m.ID]; ok {
			continue
		}
		r.seen[m.ID] = struct{}{}
		if r.echoesInput && m.Role == domain.RoleUser {
			continue
		}
		fmt.Fprintln(r.out, r.row(m))
	}
	if r.busy {
		fmt.Fprint(r.out, r.styles.Busy.Render(busyText))
	}
}

func (r *TerminalRenderer) SetBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if busy == r.busy {
		return
	}
	r.busy = busy
	if busy {
		fmt.Fprint(r.out, r.styles.Busy.Render(busyText))
		return
	}
	fmt.Fprint(r.out, clearLine)
}

func (r *TerminalRenderer) row(m domain.Message) string {
	avatar, text := r.styles.AssistantAvatar, r.styles.AssistantText
	label := assistantLabel
	if m.Role == domain.RoleUser {
		avatar, text = r.styles.UserAvatar, r.styles.UserText
		label = userLabel
	}
	lines := strings.Split(m.Text, "\n")
	prefix := avatar.Render(label + " >")
	indent := strings.Repeat(" ", len(label)+3)
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(prefix + " " + text.Render(line))
			continue
		}
		b.WriteString("\n" + indent + text.Render(line))
	}
	return b.String()
}
