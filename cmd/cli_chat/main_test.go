package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "chat-widget/internal/http"
)

func startBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := apihttp.NewRouter(zap.NewNop(), apihttp.NewChatHandler(zap.NewNop(), apihttp.EchoResponder{Prefix: "echo: "}))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_ChatUntilExit(t *testing.T) {
	srv := startBackend(t)
	t.Setenv("CHAT_API_BASE", srv.URL)
	t.Setenv("CLIENT_ID_STORE", "file")
	t.Setenv("CLIENT_ID_PATH", filepath.Join(t.TempDir(), "state.json"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	in := strings.NewReader("hola\n\nsalir\nnever sent\n")
	if err := run(context.Background(), options{}, in, &out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := out.String()
	if strings.Count(got, "Tu > ") != 3 {
		t.Fatalf("expected a prompt before each read, got %q", got)
	}
	if strings.Contains(got, "Tu > hola") {
		t.Fatalf("expected typed line not rendered again, got %q", got)
	}
	if !strings.Contains(got, "Bot > echo: hola") {
		t.Fatalf("expected bot row, got %q", got)
	}
	if strings.Contains(got, "never sent") {
		t.Fatalf("expected loop to stop at salir, got %q", got)
	}
	if !strings.Contains(got, "Saliendo del chat...") {
		t.Fatalf("expected exit message, got %q", got)
	}
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	srv := startBackend(t)
	t.Setenv("CHAT_API_BASE", "http://127.0.0.1:1")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader("ping\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--api-base", srv.URL, "--client-id-store", "memory"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "Bot > echo: ping") {
		t.Fatalf("expected reply from flag backend, got %q", out.String())
	}
}

func TestRun_InvalidStore(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	err := run(context.Background(), options{store: "cookie"}, strings.NewReader(""), &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	srv := startBackend(t)
	t.Setenv("CHAT_API_BASE", srv.URL)
	t.Setenv("CLIENT_ID_STORE", "memory")
	t.Setenv("LOG_LEVEL", "error")

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, options{}, pr, &out)
	}()

	if _, err := pw.Write([]byte("hola\n")); err != nil {
		t.Fatalf("write first line: %v", err)
	}
	// Lines are read on demand, so this write only completes once the first
	// message has been answered and the loop is reading again.
	if _, err := pw.Write([]byte("\n")); err != nil {
		t.Fatalf("write second line: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected run to return after cancel while stdin stays open")
	}
	if !strings.Contains(out.String(), "Bot > echo: hola") {
		t.Fatalf("expected reply before cancel, got %q", out.String())
	}
}
