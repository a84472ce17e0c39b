// Package webhook exposes the inbound update endpoint for webhook mode,
// plus the operational endpoints (health, metrics).
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	tele "gopkg.in/telebot.v4"

	"github.com/xbnstudios/furcast-nsfw-bot/core/buildinfo"
	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxUpdateBytes    = 1 << 20
)

// UpdateSink consumes decoded updates. *tele.Bot satisfies it.
type UpdateSink interface {
	ProcessUpdate(u tele.Update)
}

// Server receives Telegram updates over HTTP and feeds them to the bot.
type Server struct {
	cfg *coreconfig.Config
	bot UpdateSink
}

// NewServer builds a webhook server bound to the given update sink.
func NewServer(cfg *coreconfig.Config, bot UpdateSink) *Server {
	return &Server{cfg: cfg, bot: bot}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Webhook.Listen, s.cfg.Webhook.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WEB.Info("webhook.listen", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WEB.Warn("webhook.shutdown_failed", slog.String("err", err.Error()))
		}
		return <-errCh
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("webhook: serve failed: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/", s.handleUpdate)
	r.Get("/", s.handleUpdate)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleUpdate authenticates the shared-secret query key, answers the
// version probe, and injects the update into the bot's dispatch loop.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("apikey") != s.cfg.Webhook.APIKey {
		// Wrong or missing key looks like a dead endpoint.
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if q.Has("version") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, buildinfo.Marker()+"\n")
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var upd tele.Update
	body := http.MaxBytesReader(w, r.Body, maxUpdateBytes)
	if err := json.NewDecoder(body).Decode(&upd); err != nil {
		logger.Warn(r.Context(), "webhook", "bad_update", slog.String("err", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.bot.ProcessUpdate(upd)
	w.WriteHeader(http.StatusOK)
}
