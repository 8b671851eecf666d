package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"chat-widget/internal/chatapi"
	"chat-widget/internal/domain"
)

// DefaultLanguage se envia cuando la sesion no define otro idioma.
const DefaultLanguage = "zh-Hant"

var ErrSessionNotConfigured = errors.New("chat session not configured")

// Renderer es la superficie de salida: dibuja la lista y el indicador de ocupado.
type Renderer interface {
	DisplayMessages(messages []domain.Message)
	SetBusy(busy bool)
}

// InputSource expone el valor actual del input y permite limpiarlo.
type InputSource interface {
	Value() string
	Clear()
}

// ChatSession mantiene la lista de mensajes, el lock de envio y el client id.
type ChatSession struct {
	client   chatapi.ChatClient
	renderer Renderer
	input    InputSource
	conn     Connectivity
	logger   *zap.Logger
	now      func() time.Time

	clientID string
	language string

	mu       sync.Mutex
	messages []domain.Message
	sending  atomic.Bool
}

// SessionOption ajusta dependencias opcionales de la sesion.
type SessionOption func(*ChatSession)

func WithInput(input InputSource) SessionOption {
	return func(s *ChatSession) { s.input = input }
}

func WithConnectivity(conn Connectivity) SessionOption {
	return func(s *ChatSession) { s.conn = conn }
}

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *ChatSession) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *ChatSession) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHistory siembra la lista inicial de mensajes.
func WithHistory(messages []domain.Message) SessionOption {
	return func(s *ChatSession) {
		s.messages = append([]domain.Message(nil), messages...)
	}
}

// NewChatSession construye una sesion lista para enviar.
func NewChatSession(client chatapi.ChatClient, renderer Renderer, clientID, language string, opts ...SessionOption) (*ChatSession, error) {
	if client == nil || renderer == nil {
		return nil, ErrSessionNotConfigured
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: empty client id", ErrSessionNotConfigured)
	}
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	s := &ChatSession{
		client:   client,
		renderer: renderer,
		conn:     InterfaceProbe{},
		logger:   zap.NewNop(),
		now:      time.Now,
		clientID: clientID,
		language: language,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *ChatSession) ClientID() string { return s.clientID }

// Sending indica si hay una request en vuelo.
func (s *ChatSession) Sending() bool { return s.sending.Load() }

// Messages devuelve una copia de la lista actual.
func (s *ChatSession) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SendText envia content (o el valor del input si content esta vacio) y
// agrega exactamente un mensaje del asistente con la respuesta o el error.
// Si ya hay un envio en curso la llamada se descarta.
func (s *ChatSession) SendText(ctx context.Context, content string) {
	if s == nil || s.client == nil {
		return
	}
	if !s.sending.CompareAndSwap(false, true) {
		s.logger.Debug("send ignored, request in flight", zap.String("client_id", s.clientID))
		return
	}
	defer s.sending.Store(false)

	text := s.resolveText(content)
	if text == "" {
		return
	}

	s.appendAndRender(domain.NewMessage(domain.RoleUser, text, s.now()))
	if s.input != nil {
		s.input.Clear()
	}

	reply := s.exchange(ctx, text)
	s.appendAndRender(domain.NewMessage(domain.RoleAssistant, reply, s.now()))
}

// SendAsync corre SendText en una goroutine; el canal se cierra al terminar.
func (s *ChatSession) SendAsync(ctx context.Context, content string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.SendText(ctx, content)
	}()
	return done
}

func (s *ChatSession) resolveText(content string) string {
	text := strings.TrimSpace(content)
	if text == "" && s.input != nil {
		text = strings.TrimSpace(s.input.Value())
	}
	return text
}

// exchange hace la request y siempre apaga el indicador de ocupado, incluso
// si el cliente entra en panic.
func (s *ChatSession) exchange(ctx context.Context, text string) (reply string) {
	s.renderer.SetBusy(true)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chat send panicked", zap.Any("panic", r), zap.String("client_id", s.clientID))
			reply = panicText(r)
		}
		s.renderer.SetBusy(false)
	}()

	start := s.now()
	res := s.client.Send(ctx, chatapi.Request{
		Text:     text,
		ClientID: s.clientID,
		Language: s.language,
	})
	s.logger.Debug("chat send finished",
		zap.String("client_id", s.clientID),
		zap.Stringer("kind", res.Kind),
		zap.Int("status", res.Status),
		zap.Duration("latency", s.now().Sub(start)),
	)
	return ResolveReply(res, s.conn)
}

func (s *ChatSession) appendAndRender(msg domain.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	snapshot := make([]domain.Message, len(s.messages))
	copy(snapshot, s.messages)
	s.mu.Unlock()

	s.renderer.DisplayMessages(snapshot)
}

func panicText(r any) string {
	var text string
	switch v := r.(type) {
	case error:
		text = v.Error()
	case string:
		text = v
	default:
		text = fmt.Sprint(v)
	}
	if strings.TrimSpace(text) == "" {
		return FallbackUnexpected
	}
	return text
}
