package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	chatPath       = "/api/chat"
	clientIDHeader = "X-Client-Id"
)

// ChatClient define la interfaz para enviar un mensaje al backend de chat.
type ChatClient interface {
	Send(ctx context.Context, req Request) Result
}

// Request es el cuerpo JSON del POST /api/chat.
type Request struct {
	Text     string `json:"text"`
	ClientID string `json:"clientId"`
	Language string `json:"language"`
}

// HTTPClient implementa ChatClient contra {baseURL}/api/chat.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye el cliente. Un timeout de cero deja la request sin limite.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithHTTPClient reemplaza el *http.Client subyacente (tests, transports custom).
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	if hc != nil {
		c.client = hc
	}
	return c
}

func (c *HTTPClient) Send(ctx context.Context, in Request) Result {
	bodyBytes, err := json.Marshal(in)
	if err != nil {
		return NetworkFailure(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return NetworkFailure(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(clientIDHeader, in.ClientID)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("chat request failed", zap.Error(err), zap.String("client_id", in.ClientID))
		return NetworkFailure(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkFailure(fmt.Errorf("read response: %w", err))
	}
	raw := string(respBody)

	data, parseErr := decodeBody(respBody)
	statusText := statusTextOf(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("chat http error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", raw),
			zap.String("client_id", in.ClientID),
		)
		return Result{Kind: KindHTTPError, Data: data, Raw: raw, Status: resp.StatusCode, StatusText: statusText}
	}

	if parseErr != nil {
		c.logger.Warn("chat response is not json", zap.Error(parseErr), zap.Int("status", resp.StatusCode))
		return Result{Kind: KindParseError, Data: data, Raw: raw, Status: resp.StatusCode, StatusText: statusText, Err: parseErr}
	}

	return Result{Kind: KindSuccess, Data: data, Raw: raw, Status: resp.StatusCode, StatusText: statusText}
}

// decodeBody devuelve el JSON decodificado o {errorRaw: raw} si no parsea.
func decodeBody(body []byte) (any, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return map[string]any{ErrorRawKey: string(body)}, err
	}
	return data, nil
}

func statusTextOf(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if text := strings.TrimPrefix(resp.Status, prefix); text != resp.Status && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
