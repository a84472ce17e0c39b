package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminChatOnly restricts the command to the configured admin chat.
	AdminChatOnly bool
	// PrivateOnly drops the command outside one-to-one chats.
	PrivateOnly bool
	Hidden      bool
	Aliases     []string
}
