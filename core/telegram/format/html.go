package format

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// EscapeHTML escapes user-supplied text for Telegram's HTML parse mode.
// Every value interpolated into a formatted message must pass through here;
// unescaped input is an injection defect, not a cosmetic one.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// MentionHTML builds a profile-linked mention for the given user. The
// display name is escaped.
func MentionHTML(userID int64, displayName string) string {
	return fmt.Sprintf("<a href='tg://user?id=%d'>%s</a>", userID, EscapeHTML(displayName))
}

// Link wraps text in an anchor. The text is escaped; the URL is assumed to
// be bot-generated.
func Link(url, text string) string {
	return fmt.Sprintf("<a href='%s'>%s</a>", url, EscapeHTML(text))
}

// MessageURL builds a t.me deep link to a message. Public chats link via
// username; private channels and supergroups use the /c/ form with the
// -100 prefix stripped from the chat id.
func MessageURL(chatID int64, username string, messageID int) string {
	if username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", username, messageID)
	}
	id := strconv.FormatInt(chatID, 10)
	id = strings.TrimPrefix(id, "-100")
	id = strings.TrimPrefix(id, "-")
	return fmt.Sprintf("https://t.me/c/%s/%d", id, messageID)
}

// BotURL builds a t.me link to the bot itself.
func BotURL(username string) string {
	return "https://t.me/" + username
}
