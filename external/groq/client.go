package groq

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wground/wground-api/internal/platform/logging"
	"github.com/wground/wground-api/internal/platform/resilience"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "meta-llama/llama-4-maverick-17b-128e-instruct"

	defaultTemperature = 0.1
	defaultMaxTokens   = 4096
)

var errGroqTransient = crerr.New("groq transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	MaxTokens      int
	Timeout        time.Duration
	HTTPClient     *http.Client
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the Groq OpenAI-compatible chat completions endpoint.
type Client struct {
	client         *http.Client
	baseURL        string
	apiKey         string
	model          string
	temperature    float64
	maxTokens      int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client:         httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		temperature:    temperature,
		maxTokens:      maxTokens,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the assistant content.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "groq circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("groq is temporarily unavailable: %w", err)
		}
	}

	baseURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return "", crerr.Wrap(err, "invalid GROQ_BASE_URL")
	}
	completionURL := baseURL + "/chat/completions"

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", crerr.Wrap(err, "marshal chat completion payload")
	}
	bodyText := truncateForLog(string(body), 4096)
	curlPreview := buildCurlPreview(completionURL, bodyText)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("groq.completion_url", completionURL),
			attribute.String("groq.model", c.model),
			attribute.String("groq.request_curl_preview", curlPreview),
		)
	}
	c.logger.InfoContext(ctx, "groq completion request", "model", c.model, "completion_url", completionURL, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionURL, strings.NewReader(string(body)))
	if err != nil {
		return "", crerr.Wrap(err, "create groq request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: chat completion model=%s: %v", errGroqTransient, c.model, err)
		c.recordCircuitResult(callErr)
		return "", callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf(
				"%w: chat completion status=%d model=%s body=%s",
				errGroqTransient,
				resp.StatusCode,
				c.model,
				strings.TrimSpace(string(raw)),
			)
			c.recordCircuitResult(callErr)
			return "", callErr
		}

		callErr := fmt.Errorf(
			"chat completion status=%d model=%s body=%s",
			resp.StatusCode,
			c.model,
			strings.TrimSpace(string(raw)),
		)
		c.recordCircuitResult(callErr)
		return "", callErr
	}

	var parsed chatCompletionResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		callErr := crerr.Wrap(err, "decode chat completion response")
		c.recordCircuitResult(callErr)
		return "", callErr
	}
	if len(parsed.Choices) == 0 {
		callErr := crerr.New("chat completion response has no choices")
		c.recordCircuitResult(callErr)
		return "", callErr
	}

	c.logger.InfoContext(ctx, "groq completion received",
		"model", c.model,
		"duration_ms", time.Since(started).Milliseconds(),
		"content_length", len(parsed.Choices[0].Message.Content),
	)
	c.recordCircuitResult(nil)
	return parsed.Choices[0].Message.Content, nil
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(completionURL, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(completionURL))
	appendPart("-H")
	appendPart(shellQuote("Authorization: Bearer ***"))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errGroqTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
