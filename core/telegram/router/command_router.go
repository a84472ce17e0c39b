package router

import (
	"log/slog"

	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	tg "github.com/xbnstudios/furcast-nsfw-bot/core/telegram"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminChatID   int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	gate := middleware.ChatGateOptions{
		ChatID:   opts.AdminChatID,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		if def.AdminChatOnly {
			h = middleware.RequireChat(gate)(h)
		}
		if def.PrivateOnly {
			h = middleware.RequirePrivate(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
