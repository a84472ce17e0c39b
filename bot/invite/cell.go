// Package invite owns the rotatable invite link for the restricted channel.
package invite

import (
	"context"
	"fmt"
	"sync/atomic"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
)

// Cell is a process-wide single-value holder for the current invite link.
// Reads and replacements are atomic; no partial value is ever visible.
type Cell struct {
	link atomic.Value // string
}

// NewCell returns a Cell seeded with the given link (may be empty).
func NewCell(seed string) *Cell {
	c := &Cell{}
	c.link.Store(seed)
	return c
}

// Get returns the current invite link, or "" when none is known.
func (c *Cell) Get() string {
	v, _ := c.link.Load().(string)
	return v
}

// Set replaces the invite link.
func (c *Cell) Set(link string) {
	c.link.Store(link)
}

// Exporter is the Gateway slice used to read and rotate invite links.
// *tele.Bot satisfies it.
type Exporter interface {
	ChatByID(id int64) (*tele.Chat, error)
	InviteLink(chat *tele.Chat) (string, error)
}

// Rotate exports a fresh invite link for the chat and stores it.
func (c *Cell) Rotate(ctx context.Context, gw Exporter, chatID int64) (string, error) {
	link, err := gw.InviteLink(&tele.Chat{ID: chatID})
	if err != nil {
		return "", fmt.Errorf("export invite link: %w", err)
	}
	if link == "" {
		return "", fmt.Errorf("export invite link: empty link returned")
	}
	c.Set(link)
	logger.Info(ctx, "invite", "rotated",
		slog.String("status", "ok"),
		slog.Int64("target_chat", chatID),
	)
	return link, nil
}

// Bootstrap fills the cell at startup: reuse the chat's current link when
// the API reports one, export a fresh link otherwise, and keep whatever
// seed the cell already holds if both fail. Failures are logged, never
// fatal; /start degrades gracefully without a link.
func (c *Cell) Bootstrap(ctx context.Context, gw Exporter, chatID int64) {
	chat, err := gw.ChatByID(chatID)
	if err != nil {
		logger.Info(ctx, "invite", "bootstrap.lookup_failed",
			slog.Int64("target_chat", chatID),
			slog.String("err", err.Error()),
		)
	} else if chat.InviteLink != "" {
		c.Set(chat.InviteLink)
		return
	}

	logger.Info(ctx, "invite", "bootstrap.generate")
	link, err := gw.InviteLink(&tele.Chat{ID: chatID})
	if err != nil {
		// Probably no rights.
		logger.Warn(ctx, "invite", "bootstrap.export_failed",
			slog.Int64("target_chat", chatID),
			slog.String("err", err.Error()),
		)
		return
	}
	if link != "" {
		c.Set(link)
	}
}
