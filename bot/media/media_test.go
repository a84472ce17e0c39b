package media

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestIsMediaLike(t *testing.T) {
	cases := []struct {
		name string
		msg  *tele.Message
		want bool
	}{
		{"nil", nil, false},
		{"plain text", &tele.Message{Text: "hello"}, false},
		{"command", &tele.Message{Text: "/start"}, false},
		{"photo", &tele.Message{Photo: &tele.Photo{}}, true},
		{"video", &tele.Message{Video: &tele.Video{}}, true},
		{"animation", &tele.Message{Animation: &tele.Animation{}}, true},
		{"audio", &tele.Message{Audio: &tele.Audio{}}, true},
		{"document", &tele.Message{Document: &tele.Document{}}, true},
		{"sticker", &tele.Message{Sticker: &tele.Sticker{}}, true},
		{"video note", &tele.Message{VideoNote: &tele.VideoNote{}}, true},
		{"voice", &tele.Message{Voice: &tele.Voice{}}, true},
		{"bare url", &tele.Message{
			Text:     "https://example.com/a.png",
			Entities: []tele.MessageEntity{{Type: tele.EntityURL}},
		}, true},
		{"formatted link", &tele.Message{
			Text:     "look at this",
			Entities: []tele.MessageEntity{{Type: tele.EntityTextLink, URL: "https://example.com"}},
		}, true},
		{"link in caption", &tele.Message{
			Caption:         "see",
			CaptionEntities: []tele.MessageEntity{{Type: tele.EntityURL}},
		}, true},
		{"mention only", &tele.Message{
			Text:     "@someone",
			Entities: []tele.MessageEntity{{Type: tele.EntityMention}},
		}, false},
		{"contact", &tele.Message{Contact: &tele.Contact{}}, false},
		{"location", &tele.Message{Location: &tele.Location{}}, false},
	}
	for _, tc := range cases {
		if got := IsMediaLike(tc.msg); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasAttachment(t *testing.T) {
	if !HasAttachment(&tele.Message{Photo: &tele.Photo{}}) {
		t.Fatal("photo is an attachment")
	}
	linky := &tele.Message{
		Text:     "https://example.com/a.png",
		Entities: []tele.MessageEntity{{Type: tele.EntityURL}},
	}
	if HasAttachment(linky) {
		t.Fatal("link-bearing text is not an attachment")
	}
	if !IsMediaLike(linky) {
		t.Fatal("link-bearing text is still media-like")
	}
	if HasAttachment(nil) {
		t.Fatal("nil message")
	}
}
