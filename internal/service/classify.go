package service

import (
	"fmt"
	"net"
	"strings"

	"chat-widget/internal/chatapi"
)

// Connectivity reporta si el host tiene red, como navigator.onLine.
type Connectivity interface {
	Online() bool
}

// ConnectivityFunc adapta una funcion a Connectivity.
type ConnectivityFunc func() bool

func (f ConnectivityFunc) Online() bool { return f() }

// InterfaceProbe considera online al host si alguna interfaz no-loopback
// esta levantada y tiene direccion. Si no se pueden listar las interfaces
// asume online y deja que el error de red se muestre tal cual.
type InterfaceProbe struct {
	// Interfaces lista las interfaces del host; nil usa net.Interfaces.
	Interfaces func() ([]net.Interface, error)
	// Addrs devuelve las direcciones de una interfaz; nil usa iface.Addrs.
	Addrs func(net.Interface) ([]net.Addr, error)
}

func (p InterfaceProbe) Online() bool {
	list, addrsOf := p.Interfaces, p.Addrs
	if list == nil {
		list = net.Interfaces
	}
	if addrsOf == nil {
		addrsOf = func(iface net.Interface) ([]net.Addr, error) { return iface.Addrs() }
	}

	ifaces, err := list()
	if err != nil {
		return true
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if addrs, err := addrsOf(iface); err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// ResolveReply convierte el resultado de un envio en el texto del mensaje del asistente.
func ResolveReply(res chatapi.Result, conn Connectivity) string {
	switch res.Kind {
	case chatapi.KindSuccess, chatapi.KindParseError:
		return ExtractBotReply(res.Data, res.Raw)
	default:
		return ClassifyFailure(res, conn)
	}
}

// ClassifyFailure mapea un error HTTP o de red a un mensaje para el usuario.
func ClassifyFailure(res chatapi.Result, conn Connectivity) string {
	switch res.Kind {
	case chatapi.KindHTTPError:
		if res.Status == 502 || res.Status == 404 {
			return FallbackUnstable
		}
		return fmt.Sprintf("request failed (%d %s): %s", res.Status, res.StatusText, serverDetail(res))
	case chatapi.KindNetworkError:
		if conn != nil && !conn.Online() {
			return FallbackOffline
		}
		if res.Err != nil && res.Err.Error() != "" {
			return res.Err.Error()
		}
		return FallbackUnknown
	default:
		return ExtractBotReply(res.Data, res.Raw)
	}
}

// serverDetail busca error, body y message en el body parseado, luego el raw.
func serverDetail(res chatapi.Result) string {
	if obj, ok := res.Data.(map[string]any); ok {
		for _, key := range []string{"error", "body", "message"} {
			if v, ok := present(obj, key); ok {
				if s := stringify(v); s != "" {
					return s
				}
			}
		}
	}
	if raw := strings.TrimSpace(res.Raw); raw != "" {
		return raw
	}
	return FallbackUnknown
}
