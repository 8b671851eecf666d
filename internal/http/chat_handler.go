package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const clientIDHeader = "X-Client-Id"

// Responder genera el texto de respuesta para un mensaje entrante.
type Responder interface {
	Reply(ctx context.Context, clientID, language, text string) (string, error)
}

// EchoResponder devuelve el mismo texto, util para probar el widget sin un LLM.
type EchoResponder struct {
	Prefix string
}

func (e EchoResponder) Reply(_ context.Context, _, _, text string) (string, error) {
	return e.Prefix + text, nil
}

// ChatHandler atiende POST /api/chat.
type ChatHandler struct {
	logger    *zap.Logger
	responder Responder
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, responder Responder) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if responder == nil {
		responder = EchoResponder{}
	}
	return &ChatHandler{logger: logger, responder: responder}
}

// PostChat maneja POST /api/chat.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		ClientID string `json:"clientId"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	clientID := strings.TrimSpace(c.GetHeader(clientIDHeader))
	if clientID == "" {
		clientID = strings.TrimSpace(req.ClientID)
	}

	reply, err := h.responder.Reply(c.Request.Context(), clientID, req.Language, text)
	if err != nil {
		h.logger.Error("chat reply failed", zap.Error(err), zap.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("could not generate reply: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":     reply,
		"clientId": clientID,
	})
}
