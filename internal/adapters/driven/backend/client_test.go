package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

func testDescriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:                  "google_analytics",
		Name:                "Google Analytics",
		ResourceNoun:        "property",
		AuthURLPath:         "/api/connect/google_analytics/auth-url",
		ResourceListPath:    "/api/connect/google_analytics/properties",
		CommitPath:          "/api/connect/google_analytics/commit",
		ExchangePath:        "/api/connect/google_analytics/exchange",
		SuccessMessageType:  "GA_OAUTH_SUCCESS",
		ErrorMessageType:    "GA_OAUTH_ERROR",
		ProjectBindingField: "gaPropertyId",
	}
}

func envelopeOK(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    json.RawMessage(raw),
	}))
}

func envelopeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}

func TestClientAuthURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/connect/google_analytics/auth-url", r.URL.Path)
		assert.Equal(t, "proj-1", r.URL.Query().Get("projectId"))
		envelopeOK(t, w, map[string]string{"authUrl": "https://provider.test/authorize?state=abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	authURL, err := client.AuthURL(context.Background(), testDescriptor(), "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "https://provider.test/authorize?state=abc", authURL)
}

func TestClientAuthURLMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		envelopeOK(t, w, map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.AuthURL(context.Background(), testDescriptor(), "proj-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no authorization URL")
}

func TestClientAuthURLBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		envelopeErr(w, http.StatusBadGateway, "provider unreachable")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.AuthURL(context.Background(), testDescriptor(), "proj-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider unreachable")
}

func TestClientListResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/connect/google_analytics/properties/proj-1", r.URL.Path)
		envelopeOK(t, w, []map[string]any{
			{"id": "GA-100", "displayLabel": "Marketing Site"},
			{"id": "GA-200", "displayLabel": "Web Shop", "metadata": map[string]string{"currency": "EUR"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resources, err := client.ListResources(context.Background(), testDescriptor(), "proj-1")
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "GA-100", resources[0].ID)
	assert.Equal(t, "Marketing Site", resources[0].DisplayLabel)
	assert.Equal(t, "EUR", resources[1].Metadata["currency"])
}

func TestClientCommitBinding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/connect/google_analytics/commit", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "proj-1", body["projectId"])
		assert.Equal(t, "GA-100", body["resourceId"])

		envelopeOK(t, w, map[string]any{
			"id":       "proj-1",
			"bindings": map[string]string{"gaPropertyId": "GA-100"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	record, err := client.CommitBinding(context.Background(), testDescriptor(), "proj-1", "GA-100")
	require.NoError(t, err)

	value, ok := record.BindingValue("gaPropertyId")
	require.True(t, ok)
	assert.Equal(t, "GA-100", value)
}

func TestClientExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/connect/google_analytics/exchange", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "code-123", body["code"])
		assert.Equal(t, "state-abc", body["state"])

		envelopeOK(t, w, map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.ExchangeCode(context.Background(), testDescriptor(), "proj-1", "code-123", "state-abc")
	assert.NoError(t, err)
}

func TestClientExchangeCodeWithoutPath(t *testing.T) {
	desc := testDescriptor()
	desc.ExchangePath = ""

	client := NewClient("http://unused.test", "")
	err := client.ExchangeCode(context.Background(), desc, "proj-1", "code", "state")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestClientSendsAPIToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		envelopeOK(t, w, map[string]string{"authUrl": "https://provider.test/authorize"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")
	_, err := client.AuthURL(context.Background(), testDescriptor(), "proj-1")
	assert.NoError(t, err)
}

func TestClientMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.AuthURL(context.Background(), testDescriptor(), "proj-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode backend response")
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/connect/google_analytics/auth-url", r.URL.Path)
		envelopeOK(t, w, map[string]string{"authUrl": "https://provider.test/authorize"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "")
	_, err := client.AuthURL(context.Background(), testDescriptor(), "proj-1")
	assert.NoError(t, err)
}
