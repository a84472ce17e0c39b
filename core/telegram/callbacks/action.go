// Package callbacks encodes and decodes inline-button actions. Button
// data travels as a comma-separated record: an action code followed by
// its arguments, e.g. "d,<chat>,<user>,<message>,<requester>".
package callbacks

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Action codes.
const (
	// CodeDelete requests removal of the user's own cross-posted message.
	CodeDelete = "d"
)

// Action is a decoded inline-button payload.
type Action struct {
	Code      string
	ChatID    int64
	UserID    int64
	MessageID int
	// Requested is the unix time the button was created.
	Requested int64
}

// Encode renders the action in wire format.
func (a Action) Encode() string {
	return fmt.Sprintf("%s,%d,%d,%d,%d", a.Code, a.ChatID, a.UserID, a.MessageID, a.Requested)
}

// Decode parses button data. The code field is always returned when
// present, even when the argument list is malformed.
func Decode(data string) (Action, error) {
	parts := strings.Split(data, ",")
	a := Action{Code: parts[0]}
	if len(parts) != 5 {
		return a, fmt.Errorf("callbacks: want 5 fields, got %d", len(parts))
	}
	var err error
	if a.ChatID, err = strconv.ParseInt(parts[1], 10, 64); err != nil {
		return a, fmt.Errorf("callbacks: bad chat id: %w", err)
	}
	if a.UserID, err = strconv.ParseInt(parts[2], 10, 64); err != nil {
		return a, fmt.Errorf("callbacks: bad user id: %w", err)
	}
	if a.MessageID, err = strconv.Atoi(parts[3]); err != nil {
		return a, fmt.Errorf("callbacks: bad message id: %w", err)
	}
	if a.Requested, err = strconv.ParseInt(parts[4], 10, 64); err != nil {
		return a, fmt.Errorf("callbacks: bad request time: %w", err)
	}
	return a, nil
}

// FromContext decodes the pressed button's action.
func FromContext(c tele.Context) (Action, error) {
	cb := c.Callback()
	if cb == nil {
		return Action{}, fmt.Errorf("callbacks: no callback in update")
	}
	return Decode(strings.TrimPrefix(cb.Data, "\f"))
}
