package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"
)

// PollerOptions configures BuildPoller.
type PollerOptions struct {
	LongPollTimeoutSeconds int
}

// BuildPoller returns the long poller used when updates are pulled rather
// than pushed. Webhook mode bypasses telebot polling entirely; updates are
// injected through Bot.ProcessUpdate by the webhook server.
func BuildPoller(opts PollerOptions) tele.Poller {
	timeoutSec := opts.LongPollTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}
