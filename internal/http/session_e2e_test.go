package http

import (
	"context"
	"net/http/httptest"
	"testing"

	"chat-widget/internal/chatapi"
	"chat-widget/internal/domain"
	"chat-widget/internal/service"
)

type nopRenderer struct{ busy bool }

func (r *nopRenderer) DisplayMessages([]domain.Message) {}
func (r *nopRenderer) SetBusy(busy bool)                 { r.busy = busy }

func TestChatSession_AgainstDevBackend(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(EchoResponder{Prefix: "echo: "}))
	defer srv.Close()

	renderer := &nopRenderer{}
	client := chatapi.NewHTTPClient(srv.URL, 0, nil)
	session, err := service.NewChatSession(client, renderer, "cid-e2e", "zh-Hant")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	before := len(session.Messages())
	session.SendText(context.Background(), "hello")

	msgs := session.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("expected %d messages, got %d", before+2, len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Text != "hello" {
		t.Fatalf("unexpected user message %+v", msgs[0])
	}
	if msgs[1].Role != domain.RoleAssistant || msgs[1].Text != "echo: hello" {
		t.Fatalf("unexpected assistant message %+v", msgs[1])
	}
	if renderer.busy {
		t.Fatalf("expected busy cleared")
	}
}

func TestChatSession_UnknownRouteIsUnstable(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(nil))
	defer srv.Close()

	client := chatapi.NewHTTPClient(srv.URL+"/missing", 0, nil)
	session, err := service.NewChatSession(client, &nopRenderer{}, "cid-e2e", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	session.SendText(context.Background(), "hello")

	msgs := session.Messages()
	if got := msgs[len(msgs)-1].Text; got != service.FallbackUnstable {
		t.Fatalf("expected %q for 404, got %q", service.FallbackUnstable, got)
	}
}
