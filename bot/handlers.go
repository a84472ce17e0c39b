package bot

import (
	"fmt"
	"strings"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/xbnstudios/furcast-nsfw-bot/bot/media"
	"github.com/xbnstudios/furcast-nsfw-bot/bot/submission"
	"github.com/xbnstudios/furcast-nsfw-bot/core/buildinfo"
	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	tg "github.com/xbnstudios/furcast-nsfw-bot/core/telegram"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/callbacks"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/commands"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/format"
	tghelpers "github.com/xbnstudios/furcast-nsfw-bot/core/telegram/helpers"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/keyboard"
)

// Parsed as HTML - escape anything interpolated.
const joinTemplate = "Hello, %s! The " +
	"<a href='https://furcast.fm/chat/#rules'>rules</a> still apply for " +
	"content posted via this bot! Just send me media to post. " +
	"Your channel invite link is below. Use it before it expires!"

const joinButtonText = "CLICK ME OH YEAH JUST LIKE THAT"

const (
	msgPrivateGroupOnly = "Sorry, this bot serves a private group."
	msgNoInviteLink     = "Sorry, there is no invite link available right now. Ask the admins."
	msgMainChatOnly     = "Sorry, this command only works in the main chat."
	msgReplyRequired    = "You forgot to reply to the message that needs to be moved!"
	msgOnlyMedia        = "Only media can be moved"
	msgNotYourMessage   = "Sorry, command is for your own messages or admins. " +
		"Please @ an admin if someone else's post should be moved."
	msgDescriptionHint = "Provide a description, like <pre>/nsfw anthro mouse getting vored</pre>"
	msgMoveFailed      = "Sorry, moving the post failed. Try again, or ask the admins."
	msgNotImplemented  = "Not yet implemented"
)

func (a *App) registerCommands(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Get your invite link",
		PrivateOnly: true,
	})
	reg.RegisterCommand("/nsfw", commands.Command{
		Handler:     a.handleNSFW,
		Description: "Move the replied-to post to the NSFW channel",
	})
	reg.RegisterCommand("/newlink", commands.Command{
		Handler:       a.handleNewLink,
		Description:   "Rotate the NSFW invite link",
		AdminChatOnly: true,
		Hidden:        true,
	})
	reg.RegisterCommand("/version", commands.Command{
		Handler:     a.handleVersion,
		Description: "Show bot build info",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Cancel the pending submission",
		PrivateOnly: true,
		Hidden:      true,
	})
}

// handleStart verifies main-chat membership and hands out the current
// invite link behind an inline button.
func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()

	member, err := a.gw.ChatMemberOf(tele.ChatID(a.chats.Main), sender)
	if err != nil {
		// Lookup failure counts as not-a-member.
		logger.Warn(ctx, "invite", "membership.lookup_failed",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
		member = nil
	}
	if member == nil || !memberRole(member.Role) {
		logger.Info(ctx, "invite", "invite.rejected",
			slog.String("status", "ok"),
			slog.Int64("user_id", sender.ID),
		)
		return tghelpers.ReplyText(c, msgPrivateGroupOnly)
	}

	link := a.cell.Get()
	if link == "" {
		return tghelpers.ReplyText(c, msgNoInviteLink)
	}

	logger.Info(ctx, "invite", "invite.sent",
		slog.String("status", "ok"),
		slog.Int64("user_id", sender.ID),
	)
	text := fmt.Sprintf(joinTemplate, format.EscapeHTML(sender.FirstName))
	return tghelpers.SendHTML(c, text, keyboard.SingleURLMarkup(joinButtonText, link))
}

// memberRole reports whether the membership status grants invite access.
func memberRole(role tele.MemberStatus) bool {
	switch role {
	case tele.Member, tele.Administrator, tele.Creator:
		return true
	}
	return false
}

// handleNSFW moves a replied-to post out of the main chat via the
// cross-post protocol, then deletes the original.
func (a *App) handleNSFW(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	if c.Chat() == nil || c.Chat().ID != a.chats.Main {
		return tghelpers.ReplyText(c, msgMainChatOnly)
	}

	move := c.Message().ReplyTo
	if move == nil {
		return tghelpers.ReplyText(c, msgReplyRequired)
	}

	chatop := a.isChatop(c.Sender())

	if !media.IsMediaLike(move) && !chatop {
		return tghelpers.ReplyText(c, msgOnlyMedia)
	}
	if move.Sender == nil || (move.Sender.ID != c.Sender().ID && !chatop) {
		return tghelpers.ReplyText(c, msgNotYourMessage)
	}

	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" && !chatop {
		return tghelpers.SendHTML(c, msgDescriptionHint)
	}
	description := moveDescription(payload)

	if _, err := a.engine.Post(ctx, move, description); err != nil {
		return tghelpers.ReplyText(c, msgMoveFailed)
	}
	if err := a.gw.Delete(move); err != nil {
		logger.Warn(ctx, "post", "move.delete_failed",
			slog.Int64("chat_id", move.Chat.ID),
			slog.Int("message_id", move.ID),
			slog.String("err", err.Error()),
		)
	}
	return nil
}

// isChatop reports whether the user can moderate the main chat.
func (a *App) isChatop(user *tele.User) bool {
	member, err := a.gw.ChatMemberOf(tele.ChatID(a.chats.Main), user)
	if err != nil || member == nil {
		return false
	}
	return member.Role == tele.Creator || member.Rights.CanDeleteMessages
}

// moveDescription builds the HTML description for a moved post.
func moveDescription(payload string) string {
	if payload == "" {
		return "(moved from main chat)"
	}
	return format.EscapeHTML(payload) + " (moved from main chat)"
}

// handleNewLink rotates the invite link. The admin-chat gate is applied
// by the command router.
func (a *App) handleNewLink(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	logger.Info(ctx, "invite", "invite.rotation_requested",
		slog.String("status", "ok"),
		slog.Int64("user_id", c.Sender().ID),
	)
	link, err := a.cell.Rotate(ctx, a.gw, a.chats.Invite)
	if err != nil {
		return tghelpers.ReplyText(c, "Invite link rotation failed: "+err.Error())
	}
	return tghelpers.SendText(c, "Success. Bot's new invite link: "+link,
		&tele.SendOptions{DisableWebPagePreview: true})
}

func (a *App) handleVersion(c tele.Context) error {
	return tghelpers.SendHTML(c, fmt.Sprintf(
		"<a href='https://github.com/xbnstudios/furcast-nsfw-bot'>furcast-nsfw-bot</a>\nBuild version: %s",
		buildinfo.Marker(),
	))
}

// handleCancel runs the cancel transition for whichever phase the user
// is in. Cancelling without a pending submission is a no-op reply.
func (a *App) handleCancel(c tele.Context) error {
	phase := submission.PhaseAwaitingMedia
	if a.store.InProgress(c.Sender().ID) {
		phase = submission.PhaseAwaitingDescription
	}
	out := submission.Advance(phase, submission.Event{Kind: submission.EventCancel})
	return a.applyOutcome(c, out, submission.Event{Kind: submission.EventCancel})
}

// handleCallback is the fallback for inline-button presses. The delete
// action is recognized but not built yet; anything else is a wiring bug.
func (a *App) handleCallback(c tele.Context) error {
	act, _ := callbacks.FromContext(c)
	if act.Code == callbacks.CodeDelete {
		return tghelpers.SendText(c, msgNotImplemented)
	}
	logger.Error(tghelpers.BuildContext(c), "telegram", "callback.unknown",
		slog.String("data", c.Callback().Data),
	)
	return nil
}
