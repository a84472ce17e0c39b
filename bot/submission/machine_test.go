package submission

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestAdvanceMediaOpensConversation(t *testing.T) {
	out := Advance(PhaseAwaitingMedia, Event{Kind: EventMedia})
	if out.Next != PhaseAwaitingDescription {
		t.Fatalf("next = %v, want awaiting description", out.Next)
	}
	if !out.StoreMedia {
		t.Fatal("expected media capture")
	}
	if out.ClearPending {
		t.Fatal("unexpected clear")
	}
	if len(out.Effects) != 1 || out.Effects[0] != EffectPromptDescription {
		t.Fatalf("effects = %v, want prompt", out.Effects)
	}
}

func TestAdvanceNonMediaDoesNotOpen(t *testing.T) {
	for _, kind := range []EventKind{EventText, EventOther} {
		out := Advance(PhaseAwaitingMedia, Event{Kind: kind})
		if out.Next != PhaseAwaitingMedia {
			t.Fatalf("kind %v: next = %v, want awaiting media", kind, out.Next)
		}
		if out.StoreMedia {
			t.Fatalf("kind %v: unexpected capture", kind)
		}
		if len(out.Effects) != 1 || out.Effects[0] != EffectGuideNotMedia {
			t.Fatalf("kind %v: effects = %v", kind, out.Effects)
		}
	}
}

func TestAdvanceTextCompletesSubmission(t *testing.T) {
	out := Advance(PhaseAwaitingDescription, Event{Kind: EventText, Text: "tags"})
	if out.Next != PhaseAwaitingMedia {
		t.Fatalf("next = %v, want awaiting media", out.Next)
	}
	if !out.ClearPending {
		t.Fatal("expected pending submission discarded")
	}
	if len(out.Effects) != 1 || out.Effects[0] != EffectCrossPost {
		t.Fatalf("effects = %v, want cross-post", out.Effects)
	}
}

func TestAdvanceMediaReplacesCapture(t *testing.T) {
	out := Advance(PhaseAwaitingDescription, Event{Kind: EventMedia})
	if out.Next != PhaseAwaitingDescription {
		t.Fatalf("next = %v, want awaiting description", out.Next)
	}
	if !out.StoreMedia {
		t.Fatal("re-submission must replace the capture")
	}
	if out.ClearPending {
		t.Fatal("unexpected clear")
	}
}

func TestAdvanceNonTextDescriptionReprompts(t *testing.T) {
	out := Advance(PhaseAwaitingDescription, Event{Kind: EventOther})
	if out.Next != PhaseAwaitingDescription {
		t.Fatalf("next = %v, want awaiting description", out.Next)
	}
	if out.StoreMedia || out.ClearPending {
		t.Fatal("state must be unchanged")
	}
	if len(out.Effects) != 1 || out.Effects[0] != EffectAskTextDescription {
		t.Fatalf("effects = %v", out.Effects)
	}
}

func TestAdvanceCancel(t *testing.T) {
	out := Advance(PhaseAwaitingDescription, Event{Kind: EventCancel})
	if out.Next != PhaseAwaitingMedia || !out.ClearPending {
		t.Fatalf("cancel mid-flight: %+v", out)
	}
	if len(out.Effects) != 1 || out.Effects[0] != EffectConfirmCancelled {
		t.Fatalf("effects = %v", out.Effects)
	}

	// Cancelling again must be a harmless no-op reply.
	out = Advance(PhaseAwaitingMedia, Event{Kind: EventCancel})
	if out.Next != PhaseAwaitingMedia || out.ClearPending || out.StoreMedia {
		t.Fatalf("idempotent cancel: %+v", out)
	}
	if len(out.Effects) != 1 || out.Effects[0] != EffectNothingToCancel {
		t.Fatalf("effects = %v", out.Effects)
	}
}

func TestExpire(t *testing.T) {
	out := Expire(PhaseAwaitingDescription)
	if out.Next != PhaseAwaitingMedia || !out.ClearPending {
		t.Fatalf("expire: %+v", out)
	}
	if len(out.Effects) != 1 || out.Effects[0] != EffectNoticeTimeout {
		t.Fatalf("effects = %v", out.Effects)
	}

	out = Expire(PhaseAwaitingMedia)
	if len(out.Effects) != 0 || out.ClearPending {
		t.Fatalf("expiring an idle phase must be silent: %+v", out)
	}
}

func TestClassify(t *testing.T) {
	linkText := &tele.Message{
		Text:     "irl sexytimes, see https://example.com",
		Entities: []tele.MessageEntity{{Type: tele.EntityURL}},
	}

	cases := []struct {
		name  string
		phase Phase
		msg   *tele.Message
		want  EventKind
	}{
		{"nil", PhaseAwaitingMedia, nil, EventOther},
		{"cancel", PhaseAwaitingMedia, &tele.Message{Text: "/cancel"}, EventCancel},
		{"cancel with mention", PhaseAwaitingDescription, &tele.Message{Text: "/cancel@some_bot"}, EventCancel},
		{"photo", PhaseAwaitingMedia, &tele.Message{Photo: &tele.Photo{}}, EventMedia},
		{"url opens submission", PhaseAwaitingMedia, linkText, EventMedia},
		{"text", PhaseAwaitingMedia, &tele.Message{Text: "cute wolf"}, EventText},
		{"contact", PhaseAwaitingMedia, &tele.Message{Contact: &tele.Contact{}}, EventOther},
		// In the description step, text that happens to contain a link is
		// the description; only real attachments replace the capture.
		{"link-bearing description", PhaseAwaitingDescription, linkText, EventText},
		{"plain description", PhaseAwaitingDescription, &tele.Message{Text: "cute wolf"}, EventText},
		{"photo re-submission", PhaseAwaitingDescription, &tele.Message{Photo: &tele.Photo{}}, EventMedia},
		{"contact in description", PhaseAwaitingDescription, &tele.Message{Contact: &tele.Contact{}}, EventOther},
	}
	for _, tc := range cases {
		if got := Classify(tc.phase, tc.msg).Kind; got != tc.want {
			t.Errorf("%s: kind = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLinkDescriptionCompletesSubmission(t *testing.T) {
	msg := &tele.Message{
		Text:     "irl sexytimes, see https://example.com",
		Entities: []tele.MessageEntity{{Type: tele.EntityURL}},
	}
	ev := Classify(PhaseAwaitingDescription, msg)
	if ev.Kind != EventText {
		t.Fatalf("kind = %v, want text", ev.Kind)
	}
	out := Advance(PhaseAwaitingDescription, ev)
	if len(out.Effects) != 1 || out.Effects[0] != EffectCrossPost {
		t.Fatalf("effects = %v, want cross-post", out.Effects)
	}
	if !out.ClearPending || out.StoreMedia {
		t.Fatalf("outcome = %+v, want completion", out)
	}
}
