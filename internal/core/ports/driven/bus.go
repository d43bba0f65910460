package driven

import "github.com/pulseboard/pulseboard-cli/internal/core/domain"

// Subscription is a live message listener handle. The token is used to
// remove the listener; the channel delivers matching messages.
type Subscription struct {
	// Token identifies the listener for Unsubscribe.
	Token string

	// C delivers messages whose type matched the subscription.
	C <-chan domain.AuthMessage
}

// MessageBus is the cross-context message channel between the callback
// receiver and the session that opened the authorization window. It stands in
// for window.postMessage: the receiver publishes, sessions subscribe.
//
// Type filtering happens at the bus; origin validation is the subscriber's
// responsibility (the receiving boundary must check both).
type MessageBus interface {
	// Subscribe registers a listener for the given message types.
	Subscribe(types ...string) Subscription

	// Unsubscribe removes a listener. Safe to call more than once.
	Unsubscribe(token string)

	// Publish delivers a message to all matching listeners and returns how
	// many received it. Zero means no session is listening and the caller
	// should fall back to the full-page-redirect path.
	Publish(msg domain.AuthMessage) int
}
