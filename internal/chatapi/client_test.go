package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientSend_Success(t *testing.T) {
	var (
		gotBody   Request
		gotHeader string
		gotCT     string
		gotPath   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Client-Id")
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  hola  "}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", 0, nil)
	res := c.Send(context.Background(), Request{Text: "hello", ClientID: "cid-1", Language: "zh-Hant"})

	if res.Kind != KindSuccess {
		t.Fatalf("expected success, got %v (%v)", res.Kind, res.Err)
	}
	if gotPath != "/api/chat" {
		t.Fatalf("expected /api/chat, got %q", gotPath)
	}
	if gotHeader != "cid-1" {
		t.Fatalf("expected X-Client-Id header cid-1, got %q", gotHeader)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected json content type, got %q", gotCT)
	}
	if gotBody.Text != "hello" || gotBody.ClientID != "cid-1" || gotBody.Language != "zh-Hant" {
		t.Fatalf("unexpected request body %+v", gotBody)
	}
	obj, ok := res.Data.(map[string]any)
	if !ok || obj["text"] != "  hola  " {
		t.Fatalf("expected decoded object, got %#v", res.Data)
	}
}

func TestHTTPClientSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no route"}`))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL, 0, nil).Send(context.Background(), Request{Text: "x"})
	if res.Kind != KindHTTPError {
		t.Fatalf("expected http error, got %v", res.Kind)
	}
	if res.Status != http.StatusNotFound || res.StatusText != "Not Found" {
		t.Fatalf("unexpected status %d %q", res.Status, res.StatusText)
	}
	if obj, ok := res.Data.(map[string]any); !ok || obj["error"] != "no route" {
		t.Fatalf("expected parsed error body, got %#v", res.Data)
	}
}

func TestHTTPClientSend_MalformedBody(t *testing.T) {
	t.Run("2xx with html", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		defer srv.Close()

		res := NewHTTPClient(srv.URL, 0, nil).Send(context.Background(), Request{Text: "x"})
		if res.Kind != KindParseError {
			t.Fatalf("expected parse error, got %v", res.Kind)
		}
		obj, ok := res.Data.(map[string]any)
		if !ok || obj[ErrorRawKey] != "<html>oops</html>" {
			t.Fatalf("expected errorRaw sentinel, got %#v", res.Data)
		}
	})

	t.Run("5xx with html", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer srv.Close()

		res := NewHTTPClient(srv.URL, 0, nil).Send(context.Background(), Request{Text: "x"})
		if res.Kind != KindHTTPError {
			t.Fatalf("expected http error, got %v", res.Kind)
		}
		if res.Raw != "boom" {
			t.Fatalf("expected raw body, got %q", res.Raw)
		}
	})
}

func TestHTTPClientSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewHTTPClient(url, 0, nil).Send(context.Background(), Request{Text: "x"})
	if res.Kind != KindNetworkError {
		t.Fatalf("expected network error, got %v", res.Kind)
	}
	if res.Err == nil {
		t.Fatalf("expected underlying error")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindSuccess:      "success",
		KindHTTPError:    "http_error",
		KindParseError:   "parse_error",
		KindNetworkError: "network_error",
		Kind(42):         "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
