// Package state provides a lightweight FSM/session manager for Telegram bots.
// Sessions carry the conversation phase, a captured message, and an activity
// timestamp so idle conversations can be expired.
package state
