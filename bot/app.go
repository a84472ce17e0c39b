// Package bot wires the relay application: command handlers, the
// submission conversation, cross-posting, and invite-link rotation.
package bot

import (
	"context"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/xbnstudios/furcast-nsfw-bot/bot/crosspost"
	"github.com/xbnstudios/furcast-nsfw-bot/bot/invite"
	"github.com/xbnstudios/furcast-nsfw-bot/bot/submission"
	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	"github.com/xbnstudios/furcast-nsfw-bot/core/metrics"
	tg "github.com/xbnstudios/furcast-nsfw-bot/core/telegram"
	tghelpers "github.com/xbnstudios/furcast-nsfw-bot/core/telegram/helpers"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/router"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/state"
	"github.com/xbnstudios/furcast-nsfw-bot/webhook"
)

// sweepInterval is how often idle conversations are checked for expiry.
const sweepInterval = 30 * time.Second

// Gateway is the full Telegram API surface the app uses. *tele.Bot
// satisfies it; tests substitute fakes.
type Gateway interface {
	crosspost.Gateway
	invite.Exporter
	Delete(msg tele.Editable) error
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// App is the assembled relay bot.
type App struct {
	cfg   *coreconfig.Config
	chats coreconfig.ChatSet
	store state.Manager
	cell  *invite.Cell

	// Bound on start.
	gw      Gateway
	engine  *crosspost.Engine
	botUser string
}

// New builds an App from configuration.
func New(cfg *coreconfig.Config) *App {
	return &App{
		cfg:   cfg,
		chats: cfg.Chats(),
		store: state.NewMemoryManager(),
		cell:  invite.NewCell(cfg.Bot.JoinLink),
	}
}

// TelegramRunOptions assembles the runtime wiring for the bot.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.registerCommands(reg)

	state.RegisterHandler(submission.StateAwaitingDescription, a.conversationStep)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminChatID: a.chats.Admin,
		OnAdminReject: func(c tele.Context) error {
			return tghelpers.ReplyText(c, "Unauthorized")
		},
	})
	routes = append(routes, router.MessageRoutes(a.store, reg, router.MessageOptions{
		Entry: a.conversationEntry,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	reg.SetCallbackNotFound(a.handleCallback)

	return tg.RunOptions{
		Config:       a.cfg,
		Registry:     reg,
		Middlewares:  tg.DefaultMiddlewares(a.cfg, nil),
		Routes:       routes,
		OnStart:      a.onStart,
		ServeUpdates: a.serveUpdates,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt tg.Runtime) error {
	a.gw = rt.Bot
	a.botUser = rt.Bot.Me.Username
	a.engine = crosspost.NewEngine(rt.Bot, a.chats, a.botUser)

	a.cell.Bootstrap(ctx, rt.Bot, a.chats.Invite)

	go a.sweepLoop(ctx)
	return nil
}

func (a *App) serveUpdates(ctx context.Context, bot *tele.Bot) error {
	srv := webhook.NewServer(a.cfg, bot)
	return srv.Run(ctx)
}

// sweepLoop expires idle submission conversations and notifies their
// owners. This is the active half of the timeout; handlers also check
// lazily on the next inbound event.
func (a *App) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sess := range a.store.ExpireStale(submission.Timeout) {
				metrics.IncConversationTimeout()
				logger.Info(ctx, "submission", "conversation.timeout",
					slog.String("status", "ok"),
					slog.Int64("user_id", sess.UserID),
				)
				if _, err := a.gw.Send(tele.ChatID(sess.ChatID), msgTimedOut); err != nil {
					logger.Warn(ctx, "submission", "timeout.notice_failed",
						slog.Int64("user_id", sess.UserID),
						slog.String("err", err.Error()),
					)
				}
			}
		}
	}
}
