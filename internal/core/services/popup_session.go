package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// SessionTiming tunes the authorization window liveness probe. The exact
// values are not load-bearing; the defaults reconcile the historical range.
type SessionTiming struct {
	// PollInterval is how often the window is checked for having been closed.
	PollInterval time.Duration

	// GraceWindow is how long a close-detection waits for a late message
	// before the session settles as cancelled.
	GraceWindow time.Duration
}

// Default timing constants.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultGraceWindow  = time.Second
)

func (t SessionTiming) withDefaults() SessionTiming {
	if t.PollInterval <= 0 {
		t.PollInterval = DefaultPollInterval
	}
	if t.GraceWindow <= 0 {
		t.GraceWindow = DefaultGraceWindow
	}
	return t
}

// PopupSession owns one authorization window's lifecycle: opening it,
// listening for the callback's message, polling for user closure as the
// fallback path, and producing exactly one SettleResult.
//
// Two independent detection paths race: the message subscription (primary)
// and the closed-window poll (fallback, for callbacks that never signal).
// The first to fire is authoritative; the listener and the poll are torn
// down before the result is returned, so a straggler can never cause a
// second transition.
type PopupSession struct {
	desc      domain.ProviderDescriptor
	windowing driven.Windowing
	bus       driven.MessageBus
	appOrigin string
	timing    SessionTiming

	mu      sync.Mutex
	settled bool
}

// NewPopupSession creates a session for one authorization attempt.
// appOrigin is the application's own origin; messages from any other origin
// are ignored.
func NewPopupSession(
	desc domain.ProviderDescriptor,
	windowing driven.Windowing,
	bus driven.MessageBus,
	appOrigin string,
	timing SessionTiming,
) *PopupSession {
	return &PopupSession{
		desc:      desc,
		windowing: windowing,
		bus:       bus,
		appOrigin: appOrigin,
		timing:    timing.withDefaults(),
	}
}

// Settled reports whether the session has produced its result.
func (s *PopupSession) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// latch marks the session settled. Returns false if it already was, which
// means a second detection path fired after the first; the caller must
// discard its result.
func (s *PopupSession) latch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settled {
		return false
	}
	s.settled = true
	return true
}

// Open opens the authorization window and blocks until the session settles.
// Cancelling ctx tears the session down and settles it as cancelled
// (the unmount path).
//
// A session settles exactly once; calling Open on an already settled session
// returns a cancelled result without opening anything.
func (s *PopupSession) Open(ctx context.Context, authURL string) domain.SettleResult {
	if s.Settled() {
		return domain.SettleResult{Kind: domain.SettleCancelled}
	}

	win, err := s.windowing.Open(authURL)
	if err != nil || win == nil {
		// Blocked: settle immediately, no listener or poll is installed.
		s.latch()
		if err != nil {
			return domain.SettleResult{
				Kind: domain.SettleError,
				Err:  fmt.Errorf("%w: %v", domain.ErrPopupBlocked, err),
			}
		}
		return domain.SettleResult{Kind: domain.SettleError, Err: domain.ErrPopupBlocked}
	}

	sub := s.bus.Subscribe(s.desc.SuccessMessageType, s.desc.ErrorMessageType)
	poll := time.NewTicker(s.timing.PollInterval)

	// Teardown runs before the result reaches the caller, so no downstream
	// effect can observe a live listener or poll after settling.
	settle := func(res domain.SettleResult) domain.SettleResult {
		poll.Stop()
		s.bus.Unsubscribe(sub.Token)
		if !s.latch() {
			return domain.SettleResult{Kind: domain.SettleCancelled}
		}
		logger.Debug("session %s settled: %s", s.desc.ID, res.Kind)
		return res
	}

	// grace is armed once the window is seen closed; a message arriving
	// before it fires still wins.
	var grace <-chan time.Time

	for {
		select {
		case msg := <-sub.C:
			if res, ok := s.accept(msg); ok {
				return settle(res)
			}

		case <-poll.C:
			if grace == nil && win.Closed() {
				logger.Debug("session %s: window closed, starting grace window", s.desc.ID)
				grace = time.After(s.timing.GraceWindow)
			}

		case <-grace:
			// Last chance for a message that raced the grace timer.
			select {
			case msg := <-sub.C:
				if res, ok := s.accept(msg); ok {
					return settle(res)
				}
			default:
			}
			return settle(domain.SettleResult{Kind: domain.SettleCancelled})

		case <-ctx.Done():
			return settle(domain.SettleResult{Kind: domain.SettleCancelled})
		}
	}
}

// accept validates a message at the receiving boundary: the origin must be
// the application's own, and the type must belong to this session's provider.
// Anything else is ignored silently, not merely logged.
func (s *PopupSession) accept(msg domain.AuthMessage) (domain.SettleResult, bool) {
	if msg.Origin != s.appOrigin {
		return domain.SettleResult{}, false
	}
	switch msg.Type {
	case s.desc.SuccessMessageType:
		return domain.SettleResult{Kind: domain.SettleSuccess, ProjectID: msg.ProjectID}, true
	case s.desc.ErrorMessageType:
		return domain.SettleResult{
			Kind: domain.SettleError,
			Err:  fmt.Errorf("%w: %s", domain.ErrAuthDenied, msg.Error),
		}, true
	default:
		return domain.SettleResult{}, false
	}
}
