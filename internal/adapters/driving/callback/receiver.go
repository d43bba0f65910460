// Package callback implements the local HTTP receiver for provider
// authorization redirects. On each redirect it publishes a completion
// message to the bus; when nothing is listening it falls back to a direct
// code exchange and a dashboard redirect.
package callback

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driving"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// Receiver handles provider authorization redirects at /callback/{provider}.
type Receiver struct {
	registry     driving.ProviderRegistry
	bus          driven.MessageBus
	backend      driven.BackendGateway
	appOrigin    string
	dashboardURL string

	mu       sync.Mutex
	addr     string
	server   *http.Server
	listener net.Listener
	seen     map[string]time.Time
}

// NewReceiver creates a callback receiver. dashboardURL is the base URL the
// no-listener fallback redirects to.
func NewReceiver(registry driving.ProviderRegistry, bus driven.MessageBus, backend driven.BackendGateway, appOrigin, dashboardURL string) *Receiver {
	return &Receiver{
		registry:     registry,
		bus:          bus,
		backend:      backend,
		appOrigin:    appOrigin,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		seen:         make(map[string]time.Time),
	}
}

// Start begins listening on addr. If the port is 0 an available one is
// chosen; Addr reports the bound address.
func (rc *Receiver) Start(addr string) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/callback/", rc.handleCallback)

	rc.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	rc.listener = listener
	rc.addr = listener.Addr().String()

	go func() {
		if err := rc.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("callback receiver: %v", err)
		}
	}()

	logger.Debug("callback receiver listening on %s", rc.addr)
	return nil
}

// Stop shuts down the receiver.
func (rc *Receiver) Stop() error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rc.server.Shutdown(ctx)
}

// Addr returns the bound listen address.
func (rc *Receiver) Addr() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.addr
}

// RedirectURI returns the redirect URI registered for a provider.
func (rc *Receiver) RedirectURI(provider domain.ProviderID) string {
	return fmt.Sprintf("http://%s/callback/%s", rc.Addr(), provider)
}

func (rc *Receiver) handleCallback(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/callback/")
	descPtr, err := rc.registry.Get(domain.ProviderID(slug))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	desc := *descPtr

	query := r.URL.Query()
	projectID := query.Get("projectId")
	errParam := query.Get("error")
	state := query.Get("state")
	code := query.Get("code")

	// A repeated redirect (back button, refresh) must not publish or
	// exchange again.
	if state != "" && !rc.markSeen(state) {
		logger.Debug("callback replay for %s ignored (state %s)", desc.ID, state)
		rc.renderResult(w, desc, errParam)
		return
	}

	msg := domain.AuthMessage{Origin: rc.appOrigin}
	if errParam != "" {
		msg.Type = desc.ErrorMessageType
		msg.Error = errParam
	} else {
		msg.Type = desc.SuccessMessageType
		msg.ProjectID = projectID
	}

	delivered := rc.bus.Publish(msg)
	if delivered > 0 {
		logger.Debug("callback for %s delivered to %d listener(s)", desc.ID, delivered)
		rc.renderResult(w, desc, errParam)
		return
	}

	// Nobody is racing this redirect: complete the flow directly and send
	// the browser back to the dashboard.
	rc.fallback(w, r, desc, projectID, code, state, errParam)
}

// fallback handles the no-listener path: one-time code exchange plus a
// redirect into the dashboard.
func (rc *Receiver) fallback(w http.ResponseWriter, r *http.Request, desc domain.ProviderDescriptor, projectID, code, state, errParam string) {
	target := fmt.Sprintf("%s/dashboard/%s/%s", rc.dashboardURL, url.PathEscape(projectID), desc.ID)

	if errParam == "" && code != "" {
		if err := rc.backend.ExchangeCode(r.Context(), desc, projectID, code, state); err != nil {
			logger.Warn("code exchange for %s failed: %v", desc.ID, err)
			errParam = err.Error()
		}
	}

	if errParam != "" {
		target += "?error=" + url.QueryEscape(errParam)
	} else {
		target += fmt.Sprintf("?%s_connected=%s", desc.ID, url.QueryEscape(projectID))
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// markSeen records the state token and reports whether it was new.
func (rc *Receiver) markSeen(state string) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, dup := rc.seen[state]; dup {
		return false
	}
	rc.seen[state] = time.Now()

	// Old tokens are only kept long enough to absorb a back button.
	cutoff := time.Now().Add(-time.Hour)
	for tok, at := range rc.seen {
		if at.Before(cutoff) {
			delete(rc.seen, tok)
		}
	}
	return true
}

func (rc *Receiver) renderResult(w http.ResponseWriter, desc domain.ProviderDescriptor, errParam string) {
	w.Header().Set("Content-Type", "text/html")
	if errParam != "" {
		fmt.Fprint(w, resultHTML(
			fmt.Sprintf("%s connection failed", desc.DisplayName()),
			html.EscapeString(errParam),
		))
		return
	}
	fmt.Fprint(w, resultHTML(
		fmt.Sprintf("%s connected", desc.DisplayName()),
		"You can close this window and return to Pulseboard.",
	))
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Pulseboard</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #0F1420;
        }
        .container {
            text-align: center;
            background: #1A2236;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #2C3A5C;
        }
        h1 {
            color: #E8ECF5;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #8C96AD;
            margin: 0;
            font-size: 16px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, title, message)
}
