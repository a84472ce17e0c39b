package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
)

type fakeSink struct {
	updates []tele.Update
}

func (f *fakeSink) ProcessUpdate(u tele.Update) {
	f.updates = append(f.updates, u)
}

func newTestServer() (*Server, *fakeSink) {
	sink := &fakeSink{}
	cfg := &coreconfig.Config{
		Webhook: coreconfig.WebhookConfig{APIKey: "secret"},
	}
	return NewServer(cfg, sink), sink
}

func TestUpdateRejectsBadAPIKey(t *testing.T) {
	srv, sink := newTestServer()
	h := srv.routes()

	for _, target := range []string{"/", "/?apikey=wrong"} {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"update_id":1}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want 404", target, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("%s: body = %q, want empty", target, rec.Body.String())
		}
	}
	if len(sink.updates) != 0 {
		t.Fatal("update processed despite bad key")
	}
}

func TestUpdateVersionProbe(t *testing.T) {
	srv, sink := newTestServer()
	rec := httptest.NewRecorder()

	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?apikey=secret&version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasSuffix(rec.Body.String(), "\n") || rec.Body.Len() == 0 {
		t.Fatalf("body = %q, want marker line", rec.Body.String())
	}
	if len(sink.updates) != 0 {
		t.Fatal("version probe must not reach the bot")
	}
}

func TestUpdateDispatchesToBot(t *testing.T) {
	srv, sink := newTestServer()
	rec := httptest.NewRecorder()

	body := `{"update_id":7,"message":{"message_id":1,"text":"/version","chat":{"id":42,"type":"private"}}}`
	req := httptest.NewRequest(http.MethodPost, "/?apikey=secret", strings.NewReader(body))
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sink.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(sink.updates))
	}
	upd := sink.updates[0]
	if upd.ID != 7 || upd.Message == nil || upd.Message.Text != "/version" {
		t.Fatalf("decoded update = %+v", upd)
	}
}

func TestUpdateRejectsGarbage(t *testing.T) {
	srv, sink := newTestServer()
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/?apikey=secret", strings.NewReader("not json"))
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(sink.updates) != 0 {
		t.Fatal("garbage reached the bot")
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()
	rec := httptest.NewRecorder()

	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
