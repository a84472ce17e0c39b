package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/xbnstudios/furcast-nsfw-bot/bot/submission"
	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	"github.com/xbnstudios/furcast-nsfw-bot/core/metrics"
	tghelpers "github.com/xbnstudios/furcast-nsfw-bot/core/telegram/helpers"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/format"
)

// Parsed as HTML - be sure to escape anything you put in!
const msgPromptDescription = "Now tell me the <b>content warnings</b> and <b>tags</b>, e.g.\n" +
	"• irl sexytimes with my mate\n" +
	"• anthro mouse getting vored\n" +
	"• fisting cute anthro wolf\n" +
	"(or /cancel)"

const (
	msgGuideNotMedia = "Hi, I help you share NSFW content. This system is meant for media, " +
		"which I didn't see in what you sent. If I forgot what we were " +
		"talking about, try again. If you need an invite link to the NSFW " +
		"channel, say /start. If you think this is a bug, contact the admins."
	msgAskTextDescription = "Sorry, descriptions must be text. Send a text description, or /cancel"
	msgCancelled          = "Cancelled"
	msgNothingToCancel    = "Nothing to cancel."
	msgTimedOut           = "Sorry, your last post timed out, try again."
	msgPosted             = "Thanks, posted!"
	msgPostFailed         = "Sorry, something went wrong and your post was not shared. " +
		"Please try again, and contact the admins if it keeps failing."
)

// conversationEntry handles plain messages from users without an active
// submission. Only private chats can open one.
func (a *App) conversationEntry(c tele.Context) error {
	if c.Chat() == nil || c.Chat().Type != tele.ChatPrivate {
		return nil
	}
	ev := submission.Classify(submission.PhaseAwaitingMedia, c.Message())
	out := submission.Advance(submission.PhaseAwaitingMedia, ev)
	return a.applyOutcome(c, out, ev)
}

// conversationStep handles messages while a description is pending. The
// conversation is pinned to the private chat it started in; the same
// user's messages elsewhere do not advance it.
func (a *App) conversationStep(c tele.Context) error {
	userID := c.Sender().ID
	sess, ok := a.store.Get(userID)
	if !ok {
		return nil
	}
	if c.Chat() == nil || c.Chat().ID != sess.ChatID {
		return nil
	}
	// Atomic check-and-remove: if the sweeper got here first, the
	// session is already gone and no second timeout notice is sent.
	if _, expired := a.store.ExpireOne(userID, submission.Timeout); expired {
		return a.expireConversation(c, userID)
	}
	ev := submission.Classify(submission.PhaseAwaitingDescription, c.Message())
	out := submission.Advance(submission.PhaseAwaitingDescription, ev)
	return a.applyOutcome(c, out, ev)
}

// expireConversation runs the forced timeout transition for a session
// that went stale before the sweeper got to it. The triggering message
// is consumed; the user starts over.
func (a *App) expireConversation(c tele.Context, userID int64) error {
	out := submission.Expire(submission.PhaseAwaitingDescription)
	metrics.IncConversationTimeout()
	logger.Info(tghelpers.BuildContext(c), "submission", "conversation.timeout",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("trigger", "lazy"),
	)
	return a.applyOutcome(c, out, submission.Event{Kind: submission.EventOther})
}

// applyOutcome executes a transition's side effects against Telegram and
// the session store.
func (a *App) applyOutcome(c tele.Context, out submission.Outcome, ev submission.Event) error {
	userID := c.Sender().ID

	pending, hadPending := a.store.Get(userID)
	if out.StoreMedia {
		a.store.Begin(userID, c.Chat().ID, submission.StateAwaitingDescription, c.Message())
	}
	if out.ClearPending {
		a.store.Clear(userID)
	}

	var firstErr error
	for _, eff := range out.Effects {
		var err error
		switch eff {
		case submission.EffectPromptDescription:
			err = tghelpers.SendHTML(c, msgPromptDescription)
		case submission.EffectGuideNotMedia:
			err = tghelpers.SendText(c, msgGuideNotMedia)
		case submission.EffectAskTextDescription:
			err = tghelpers.SendText(c, msgAskTextDescription)
		case submission.EffectConfirmCancelled:
			err = tghelpers.SendText(c, msgCancelled)
		case submission.EffectNothingToCancel:
			err = tghelpers.SendText(c, msgNothingToCancel)
		case submission.EffectNoticeTimeout:
			err = tghelpers.SendText(c, msgTimedOut)
		case submission.EffectCrossPost:
			if !hadPending || pending.Media == nil {
				err = tghelpers.SendText(c, msgPostFailed)
				break
			}
			ctx := tghelpers.BuildContext(c)
			if _, postErr := a.engine.Post(ctx, pending.Media, format.EscapeHTML(ev.Text)); postErr != nil {
				err = tghelpers.SendText(c, msgPostFailed)
			} else {
				err = tghelpers.SendText(c, msgPosted)
			}
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
