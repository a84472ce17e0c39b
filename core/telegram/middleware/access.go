package middleware

import tele "gopkg.in/telebot.v4"

// ChatGateOptions defines how chat-restricted checks should behave.
type ChatGateOptions struct {
	ChatID   int64
	OnReject tele.HandlerFunc
}

// RequireChat ensures downstream handlers only run for updates originating
// in the configured chat. Other chats get the reject handler, or silence.
func RequireChat(opts ChatGateOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if opts.ChatID != 0 && (chat == nil || chat.ID != opts.ChatID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}

// RequirePrivate ensures downstream handlers only run in one-to-one chats.
// Updates from groups and channels are dropped silently, matching how the
// command behaves when issued outside its context.
func RequirePrivate(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil || chat.Type != tele.ChatPrivate {
			return nil
		}
		return next(c)
	}
}
