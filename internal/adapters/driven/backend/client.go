// Package backend implements the BackendGateway port against the Pulseboard
// dashboard API. The backend owns OAuth tokens, provider API access, and the
// project record; this client only speaks its JSON envelope.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.BackendGateway = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// Conservative client-side limit; the backend throttles harder.
	requestsPerSecond = 8.0
	burstSize         = 10
)

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// Client is the HTTP implementation of driven.BackendGateway.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a backend client. apiToken authenticates the CLI to the
// dashboard API; it is attached via an oauth2 transport.
func NewClient(baseURL, apiToken string) *Client {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if apiToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiToken})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// AuthURL requests an authorization URL scoped to the project.
func (c *Client) AuthURL(ctx context.Context, desc domain.ProviderDescriptor, projectID string) (string, error) {
	endpoint := c.baseURL + desc.AuthURLPath + "?projectId=" + url.QueryEscape(projectID)

	var data struct {
		AuthURL string `json:"authUrl"`
	}
	if err := c.get(ctx, endpoint, &data); err != nil {
		return "", err
	}
	if data.AuthURL == "" {
		return "", fmt.Errorf("backend returned no authorization URL for %s", desc.ID)
	}
	return data.AuthURL, nil
}

// ListResources fetches the candidate resources for the project.
func (c *Client) ListResources(ctx context.Context, desc domain.ProviderDescriptor, projectID string) ([]domain.CandidateResource, error) {
	endpoint := c.baseURL + desc.ResourceListPath + "/" + url.PathEscape(projectID)

	var resources []domain.CandidateResource
	if err := c.get(ctx, endpoint, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// CommitBinding persists the chosen resource id on the project record.
func (c *Client) CommitBinding(ctx context.Context, desc domain.ProviderDescriptor, projectID, resourceID string) (*domain.ProjectRecord, error) {
	body := map[string]string{
		"projectId":  projectID,
		"resourceId": resourceID,
	}

	var record domain.ProjectRecord
	if err := c.post(ctx, c.baseURL+desc.CommitPath, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ExchangeCode performs the direct code exchange used by the redirect
// fallback.
func (c *Client) ExchangeCode(ctx context.Context, desc domain.ProviderDescriptor, projectID, code, state string) error {
	if desc.ExchangePath == "" {
		return fmt.Errorf("%w: provider %s has no exchange path", domain.ErrNotImplemented, desc.ID)
	}
	body := map[string]string{
		"projectId": projectID,
		"code":      code,
		"state":     state,
	}
	return c.post(ctx, c.baseURL+desc.ExchangePath, body, nil)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode backend response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("backend error: %s", msg)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode backend data: %w", err)
	}
	return nil
}
