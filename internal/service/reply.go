package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"chat-widget/internal/chatapi"
)

// Textos que se muestran cuando el backend no devuelve algo utilizable.
const (
	FallbackRephrase   = "please rephrase"
	FallbackUnstable   = "network unstable, try again"
	FallbackMalformed  = "server response malformed"
	FallbackUnexpected = "unexpected response"
	FallbackOffline    = "you appear to be offline, check your connection"
	FallbackUnknown    = "unknown error"
)

const clientIDKey = "clientId"

// ExtractBotReply normaliza cualquier forma de respuesta del backend a un
// unico texto para mostrar. raw es el body original; la decision se toma
// solo sobre data.
func ExtractBotReply(data any, raw string) string {
	if s, ok := data.(string); ok {
		return orFallback(strings.TrimSpace(s), FallbackRephrase)
	}

	obj, ok := asObject(data)
	if !ok {
		return FallbackRephrase
	}

	if v, ok := present(obj, "text"); ok {
		return orFallback(strings.TrimSpace(stringify(v)), FallbackRephrase)
	}
	if v, ok := present(obj, "message"); ok {
		return orFallback(strings.TrimSpace(stringify(v)), FallbackRephrase)
	}

	if countKeys(obj, clientIDKey) == 0 {
		return FallbackUnstable
	}

	if v, ok := present(obj, "error"); ok {
		if s := stringify(v); s != "" {
			return s
		}
	}
	if _, ok := obj[chatapi.ErrorRawKey]; ok {
		return FallbackMalformed
	}

	out, err := json.Marshal(data)
	if err != nil {
		return FallbackUnexpected
	}
	return string(out)
}

// asObject trata mapas y arrays JSON como objetos (un array expone sus indices como claves).
func asObject(data any) (map[string]any, bool) {
	switch v := data.(type) {
	case map[string]any:
		return v, true
	case []any:
		obj := make(map[string]any, len(v))
		for i, item := range v {
			obj[strconv.Itoa(i)] = item
		}
		return obj, true
	default:
		return nil, false
	}
}

func present(obj map[string]any, key string) (any, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func countKeys(obj map[string]any, exclude string) int {
	n := 0
	for k := range obj {
		if k != exclude {
			n++
		}
	}
	return n
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	}
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
