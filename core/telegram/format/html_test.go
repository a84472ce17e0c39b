package format

import "testing"

func TestEscapeHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"<b>bold</b>", "&lt;b&gt;bold&lt;/b&gt;"},
		{"a & b", "a &amp; b"},
		{"it's", "it&#39;s"},
	}
	for _, tc := range cases {
		if got := EscapeHTML(tc.in); got != tc.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMentionHTML(t *testing.T) {
	got := MentionHTML(7, "Riley <3")
	want := "<a href='tg://user?id=7'>Riley &lt;3</a>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMessageURL(t *testing.T) {
	cases := []struct {
		name      string
		chatID    int64
		username  string
		messageID int
		want      string
	}{
		{"public chat", -1001462860928, "furcast", 12, "https://t.me/furcast/12"},
		{"private supergroup", -1001462860928, "", 12, "https://t.me/c/1462860928/12"},
		{"plain group", -12345, "", 3, "https://t.me/c/12345/3"},
	}
	for _, tc := range cases {
		if got := MessageURL(tc.chatID, tc.username, tc.messageID); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLink(t *testing.T) {
	got := Link("https://t.me/c/1/2", "View & enjoy")
	want := "<a href='https://t.me/c/1/2'>View &amp; enjoy</a>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
