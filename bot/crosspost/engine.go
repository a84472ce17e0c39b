// Package crosspost implements the three-message cross-posting protocol:
// forward the media into the restricted channel, announce it in the main
// chat, then post the announcement link back into the restricted channel.
package crosspost

import (
	"context"
	"fmt"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	"github.com/xbnstudios/furcast-nsfw-bot/core/metrics"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/format"
)

// Gateway is the slice of the Telegram API the engine needs. *tele.Bot
// satisfies it.
type Gateway interface {
	Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Result carries the identifiers of the three messages one successful
// cross-post produces.
type Result struct {
	// ForwardID is the forwarded copy in the restricted channel.
	ForwardID int
	// AnnounceID is the announcement in the main chat.
	AnnounceID int
	// ContextID is the follow-up context post in the restricted channel.
	ContextID int

	// ForwardLink and AnnounceLink are the t.me URLs the posts
	// cross-reference each other with.
	ForwardLink  string
	AnnounceLink string
}

// Engine performs cross-posts against a Gateway.
type Engine struct {
	gw          Gateway
	chats       coreconfig.ChatSet
	botUsername string
}

// NewEngine builds an Engine posting between the given chat set.
func NewEngine(gw Gateway, chats coreconfig.ChatSet, botUsername string) *Engine {
	return &Engine{gw: gw, chats: chats, botUsername: botUsername}
}

var silentHTML = &tele.SendOptions{
	ParseMode:             tele.ModeHTML,
	DisableNotification:   true,
	DisableWebPagePreview: true,
}

// Post runs the protocol for one media message and an HTML-safe
// description. The description must already be escaped; display names are
// escaped here. If the forward fails nothing else is sent and the error
// propagates so the caller never reports success.
func (e *Engine) Post(ctx context.Context, m *tele.Message, descriptionHTML string) (Result, error) {
	if m == nil || m.Sender == nil {
		return Result{}, fmt.Errorf("crosspost: nil media message")
	}

	fwd, err := e.gw.Forward(tele.ChatID(e.chats.NSFW), m)
	if err != nil {
		metrics.IncCrossPost("forward_failed")
		logger.Warn(ctx, "crosspost", "forward.fail",
			slog.String("status", "fail"),
			slog.Int64("target_chat", e.chats.NSFW),
			slog.Int64("user_id", m.Sender.ID),
			slog.String("err", err.Error()),
		)
		return Result{}, fmt.Errorf("forward to restricted channel: %w", err)
	}

	mention := format.MentionHTML(m.Sender.ID, m.Sender.FirstName)
	fwdLink := format.MessageURL(fwd.Chat.ID, fwd.Chat.Username, fwd.ID)

	announce := fmt.Sprintf(
		"%s shared:\n%s\n%s  ⚠️  %s",
		mention,
		descriptionHTML,
		format.Link(format.BotURL(e.botUsername), "Join/post"),
		format.Link(fwdLink, "View NSFW"),
	)
	main, err := e.gw.Send(tele.ChatID(e.chats.Main), announce, silentHTML)
	if err != nil {
		metrics.IncCrossPost("announce_failed")
		logger.Warn(ctx, "crosspost", "announce.fail",
			slog.String("status", "fail"),
			slog.Int64("target_chat", e.chats.Main),
			slog.Int("forward_id", fwd.ID),
			slog.String("err", err.Error()),
		)
		return Result{}, fmt.Errorf("announce in main chat: %w", err)
	}

	mainLink := format.MessageURL(main.Chat.ID, main.Chat.Username, main.ID)
	followUp := fmt.Sprintf(
		"Shared by %s (%s) with description:\n%s",
		mention,
		format.Link(mainLink, "context"),
		descriptionHTML,
	)
	ctxPost, err := e.gw.Send(tele.ChatID(e.chats.NSFW), followUp, silentHTML)
	if err != nil {
		metrics.IncCrossPost("announce_failed")
		logger.Warn(ctx, "crosspost", "context.fail",
			slog.String("status", "fail"),
			slog.Int64("target_chat", e.chats.NSFW),
			slog.Int("forward_id", fwd.ID),
			slog.Int("announce_id", main.ID),
			slog.String("err", err.Error()),
		)
		return Result{}, fmt.Errorf("context post in restricted channel: %w", err)
	}

	res := Result{
		ForwardID:    fwd.ID,
		AnnounceID:   main.ID,
		ContextID:    ctxPost.ID,
		ForwardLink:  fwdLink,
		AnnounceLink: mainLink,
	}
	metrics.IncCrossPost("ok")
	logger.Info(ctx, "crosspost", "posted",
		slog.String("status", "ok"),
		slog.Int64("user_id", m.Sender.ID),
		slog.Int("forward_id", res.ForwardID),
		slog.Int("announce_id", res.AnnounceID),
		slog.Int("context_id", res.ContextID),
	)
	return res, nil
}
