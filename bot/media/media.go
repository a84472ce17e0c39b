// Package media decides whether a Telegram message counts as shareable
// media for the relay flow.
package media

import tele "gopkg.in/telebot.v4"

// IsMediaLike reports whether the message carries something worth
// cross-posting: a plain URL, a formatted link, or an attachment of any
// supported kind.
func IsMediaLike(m *tele.Message) bool {
	if m == nil {
		return false
	}
	for _, e := range m.Entities {
		if e.Type == tele.EntityURL || e.Type == tele.EntityTextLink {
			return true
		}
	}
	for _, e := range m.CaptionEntities {
		if e.Type == tele.EntityURL || e.Type == tele.EntityTextLink {
			return true
		}
	}
	return HasAttachment(m)
}

// HasAttachment reports whether the message carries an actual attachment,
// as opposed to being text that merely contains links.
func HasAttachment(m *tele.Message) bool {
	if m == nil {
		return false
	}
	return m.Animation != nil ||
		m.Audio != nil ||
		m.Document != nil ||
		m.Photo != nil ||
		m.Sticker != nil ||
		m.Video != nil ||
		m.VideoNote != nil ||
		m.Voice != nil
}
