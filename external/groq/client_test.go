package groq

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/wground/wground-api/internal/platform/logging"
	"github.com/wground/wground-api/internal/platform/resilience"
)

func newTestClient(t *testing.T, serverURL string, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		BaseURL:        serverURL,
		APIKey:         "gsk_test",
		Timeout:        2 * time.Second,
		CircuitBreaker: breaker,
	}, logging.NewNop())
}

func TestClient_Complete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[{\"team_name\":\"seouldive\"}]"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	content, err := client.Complete(t.Context(), "시스템 프롬프트", "사용자 메시지")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if content != `[{"team_name":"seouldive"}]` {
		t.Fatalf("unexpected content: %q", content)
	}

	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer gsk_test" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotBody.Model != DefaultModel {
		t.Fatalf("unexpected model: %q", gotBody.Model)
	}
	if gotBody.Temperature != defaultTemperature || gotBody.MaxTokens != defaultMaxTokens {
		t.Fatalf("unexpected sampling params: temperature=%v max_tokens=%d", gotBody.Temperature, gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotBody.Messages)
	}
	if gotBody.Messages[0].Content != "시스템 프롬프트" || gotBody.Messages[1].Content != "사용자 메시지" {
		t.Fatalf("unexpected message contents: %+v", gotBody.Messages)
	}
}

func TestClient_CompleteNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	_, err := client.Complete(t.Context(), "system", "user")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "status=401") || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected status and body in error, got %q", err.Error())
	}
}

func TestClient_CompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{})
	_, err := client.Complete(t.Context(), "system", "user")
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no-choices error, got %v", err)
	}
}

func TestClient_CircuitBreakerOpensOnServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.Complete(t.Context(), "system", "user"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 upstream calls before the breaker opened, got %d", calls)
	}

	_, err := client.Complete(t.Context(), "system", "user")
	if err == nil || !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("expected fast-fail from open breaker, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected no upstream call while open, got %d", calls)
	}
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 3; i++ {
		_, err := client.Complete(t.Context(), "system", "user")
		if err == nil {
			t.Fatalf("call %d: expected error", i)
		}
		if strings.Contains(err.Error(), "temporarily unavailable") {
			t.Fatalf("call %d: breaker opened on a non-transient failure", i)
		}
	}
}

func TestClient_CurlPreviewRedactsAuth(t *testing.T) {
	preview := buildCurlPreview("https://api.groq.com/openai/v1/chat/completions", `{"model":"m"}`)
	if !strings.Contains(preview, "Authorization: Bearer ***") {
		t.Fatalf("expected redacted auth header, got %q", preview)
	}
	if strings.Contains(preview, "gsk_") {
		t.Fatalf("expected no credential in preview, got %q", preview)
	}
}
