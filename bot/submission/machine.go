// Package submission drives the media submission conversation: capture a
// media message, ask for a description, hand both to the cross-post engine.
package submission

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/xbnstudios/furcast-nsfw-bot/bot/media"
	"github.com/xbnstudios/furcast-nsfw-bot/core/telegram/state"
)

// Phase names a step of the submission conversation.
type Phase int

const (
	// PhaseAwaitingMedia is the entry phase: the user has no pending
	// submission and the next qualifying message opens one.
	PhaseAwaitingMedia Phase = iota
	// PhaseAwaitingDescription means media was captured and the bot is
	// waiting for a text description.
	PhaseAwaitingDescription
)

// StateAwaitingDescription is the FSM state key for the description step.
const StateAwaitingDescription state.State = "awaiting_description"

// Timeout is the inactivity deadline after which a conversation expires.
const Timeout = 3 * time.Minute

// EventKind classifies an inbound message for the state machine.
type EventKind int

const (
	// EventMedia is a message satisfying the media predicate.
	EventMedia EventKind = iota
	// EventText is a plain text message that is not a command.
	EventText
	// EventCancel is the /cancel command.
	EventCancel
	// EventOther is anything else (contact, location, poll, ...).
	EventOther
)

// Event is the machine's input: a classified message.
type Event struct {
	Kind EventKind
	Text string
}

// Effect instructs the caller to produce one observable side effect.
type Effect int

const (
	// EffectPromptDescription asks the user for content warnings/tags.
	EffectPromptDescription Effect = iota
	// EffectGuideNotMedia explains that the flow needs media.
	EffectGuideNotMedia
	// EffectAskTextDescription re-prompts when the description is not text.
	EffectAskTextDescription
	// EffectConfirmCancelled acknowledges /cancel.
	EffectConfirmCancelled
	// EffectNothingToCancel replies to /cancel without a conversation.
	EffectNothingToCancel
	// EffectCrossPost performs the cross-posting protocol with the
	// stored media and the event's text.
	EffectCrossPost
	// EffectNoticeTimeout tells the user the conversation expired.
	EffectNoticeTimeout
)

// Outcome is the result of one transition.
type Outcome struct {
	Next    Phase
	Effects []Effect
	// StoreMedia asks the caller to capture (or replace) the pending
	// media with the triggering message.
	StoreMedia bool
	// ClearPending asks the caller to discard the pending submission.
	ClearPending bool
}

// Advance is the pure transition function of the submission conversation.
// Side effects are returned, never executed here.
func Advance(p Phase, ev Event) Outcome {
	switch p {
	case PhaseAwaitingMedia:
		switch ev.Kind {
		case EventMedia:
			return Outcome{
				Next:       PhaseAwaitingDescription,
				Effects:    []Effect{EffectPromptDescription},
				StoreMedia: true,
			}
		case EventCancel:
			return Outcome{
				Next:    PhaseAwaitingMedia,
				Effects: []Effect{EffectNothingToCancel},
			}
		default:
			return Outcome{
				Next:    PhaseAwaitingMedia,
				Effects: []Effect{EffectGuideNotMedia},
			}
		}

	case PhaseAwaitingDescription:
		switch ev.Kind {
		case EventCancel:
			return Outcome{
				Next:         PhaseAwaitingMedia,
				Effects:      []Effect{EffectConfirmCancelled},
				ClearPending: true,
			}
		case EventText:
			return Outcome{
				Next:         PhaseAwaitingMedia,
				Effects:      []Effect{EffectCrossPost},
				ClearPending: true,
			}
		case EventMedia:
			// Re-submission replaces the capture unconditionally.
			return Outcome{
				Next:       PhaseAwaitingDescription,
				Effects:    []Effect{EffectPromptDescription},
				StoreMedia: true,
			}
		default:
			return Outcome{
				Next:    PhaseAwaitingDescription,
				Effects: []Effect{EffectAskTextDescription},
			}
		}
	}

	return Outcome{Next: p}
}

// Expire is the forced transition applied when the inactivity deadline
// passes.
func Expire(p Phase) Outcome {
	if p == PhaseAwaitingMedia {
		return Outcome{Next: PhaseAwaitingMedia}
	}
	return Outcome{
		Next:         PhaseAwaitingMedia,
		Effects:      []Effect{EffectNoticeTimeout},
		ClearPending: true,
	}
}

// Classify maps an inbound message onto a machine event. Classification
// is phase-sensitive because text and media overlap: a text message
// carrying a URL entity is media-like enough to open a submission, but in
// the description step the same shape is the description itself. There
// only messages with an actual attachment replace the capture.
func Classify(p Phase, m *tele.Message) Event {
	if m == nil {
		return Event{Kind: EventOther}
	}
	text := strings.TrimSpace(m.Text)
	if strings.HasPrefix(text, "/cancel") {
		return Event{Kind: EventCancel}
	}
	if p == PhaseAwaitingDescription && text != "" && !media.HasAttachment(m) {
		return Event{Kind: EventText, Text: m.Text}
	}
	if media.IsMediaLike(m) {
		return Event{Kind: EventMedia, Text: m.Caption}
	}
	if text != "" {
		return Event{Kind: EventText, Text: m.Text}
	}
	return Event{Kind: EventOther}
}
