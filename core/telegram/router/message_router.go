package router

import (
	"strings"
	"time"

	tg "github.com/xbnstudios/furcast-nsfw-bot/core/telegram"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for an FSM manager.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// MessageOptions controls conversation entry and fallback behaviour for
// plain (non-command) updates.
type MessageOptions struct {
	// Entry starts a fresh conversation for messages from users without
	// an active one. The entry handler decides whether the chat context
	// qualifies at all.
	Entry       tele.HandlerFunc
	UnknownText tele.HandlerFunc
}

// messageEndpoints lists every update kind that can open or continue a
// submission conversation: text plus all media-bearing message types.
var messageEndpoints = []string{
	tele.OnText,
	tele.OnPhoto,
	tele.OnVideo,
	tele.OnAnimation,
	tele.OnAudio,
	tele.OnDocument,
	tele.OnSticker,
	tele.OnVideoNote,
	tele.OnVoice,
}

// isCommandText reports whether text should be resolved against the
// command registry. Only slash-prefixed text qualifies; a bare word like
// "version" is conversation input, not a command.
func isCommandText(text string) bool {
	return strings.HasPrefix(text, "/")
}

// MessageRoutes builds handlers routing plain messages either into the
// user's in-flight conversation or into the conversation entry point.
func MessageRoutes(fsmMgr FSM, reg *tg.Registry, opts MessageOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}

		if reg != nil && isCommandText(text) {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if opts.Entry != nil {
			return handleWithSummary(c, "conversation_entry", start, "", "", func() error {
				return opts.Entry(c)
			})
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	routes := make([]tg.Route, 0, len(messageEndpoints))
	for _, endpoint := range messageEndpoints {
		routes = append(routes, tg.Route{
			Endpoint: endpoint,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		})
	}
	return routes
}
