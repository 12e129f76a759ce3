// Package ai wraps the Anthropic API for report generation.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/damonayoung/status-summarizer-bot/internal/audit"
	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/debug"
	"github.com/damonayoung/status-summarizer-bot/internal/telemetry"
)

const (
	maxRetries     = 3
	initialBackoff = 1 * time.Second
)

// errAPIKeyRequired is returned when no API key is available.
var errAPIKeyRequired = errors.New("API key required")

// Client calls the Anthropic Messages API with retry, metrics, and an
// optional JSONL audit trail.
type Client struct {
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
	auditLog    string
}

// New creates a client from the AI config. The API key comes from the
// ANTHROPIC_API_KEY environment variable (the .env loader in config makes
// this work from a project .env file too).
func New(cfg config.AIConfig) (*Client, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY environment variable or add it to .env", errAPIKeyRequired)
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = config.DefaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = config.DefaultTemperature
	}

	aiMetricsOnce.Do(initAIMetrics)

	return &Client{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       anthropic.Model(model),
		maxTokens:   maxTokens,
		temperature: temperature,
		auditLog:    cfg.AuditLog,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return string(c.model) }

// Summarize sends the system and user prompts and returns the model's text
// response. The scenario name only labels the audit entry.
func (c *Client) Summarize(ctx context.Context, scenario, system, userPrompt string) (string, error) {
	resp, callErr := c.callWithRetry(ctx, system, userPrompt)

	if c.auditLog != "" {
		// Best effort: audit logging must never fail report generation.
		e := &audit.Entry{
			Kind:     "llm_call",
			Scenario: scenario,
			Model:    string(c.model),
			Prompt:   userPrompt,
			Response: resp,
		}
		if callErr != nil {
			e.Error = callErr.Error()
		}
		if _, err := audit.Append(c.auditLog, e); err != nil {
			debug.Logf("audit append failed: %v\n", err)
		}
	}

	return resp, callErr
}

// aiMetrics holds lazily-initialized OTel instruments for Anthropic API calls.
var aiMetrics struct {
	inputTokens  metric.Int64Counter
	outputTokens metric.Int64Counter
	duration     metric.Float64Histogram
}

var aiMetricsOnce sync.Once

func initAIMetrics() {
	m := telemetry.Meter("github.com/damonayoung/status-summarizer-bot/ai")
	aiMetrics.inputTokens, _ = m.Int64Counter("ssb.ai.input_tokens",
		metric.WithDescription("Anthropic API input tokens consumed"),
		metric.WithUnit("{token}"),
	)
	aiMetrics.outputTokens, _ = m.Int64Counter("ssb.ai.output_tokens",
		metric.WithDescription("Anthropic API output tokens generated"),
		metric.WithUnit("{token}"),
	)
	aiMetrics.duration, _ = m.Float64Histogram("ssb.ai.request.duration",
		metric.WithDescription("Anthropic API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}

func (c *Client) callWithRetry(ctx context.Context, system, userPrompt string) (string, error) {
	tracer := telemetry.Tracer("github.com/damonayoung/status-summarizer-bot/ai")
	ctx, span := tracer.Start(ctx, "anthropic.messages.new")
	defer span.End()
	span.SetAttributes(
		attribute.String("ssb.ai.model", string(c.model)),
		attribute.String("ssb.ai.operation", "summarize"),
	)

	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	var text string
	attempts := 0

	op := func() error {
		attempts++
		t0 := time.Now()
		message, err := c.client.Messages.New(ctx, params)
		ms := float64(time.Since(t0).Milliseconds())

		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if !isRetryable(err) {
				return backoff.Permanent(err)
			}
			debug.Logf("anthropic call failed (attempt %d): %v\n", attempts, err)
			return err
		}

		modelAttr := attribute.String("ssb.ai.model", string(c.model))
		if aiMetrics.inputTokens != nil {
			aiMetrics.inputTokens.Add(ctx, message.Usage.InputTokens, metric.WithAttributes(modelAttr))
			aiMetrics.outputTokens.Add(ctx, message.Usage.OutputTokens, metric.WithAttributes(modelAttr))
			aiMetrics.duration.Record(ctx, ms, metric.WithAttributes(modelAttr))
		}
		span.SetAttributes(
			attribute.Int64("ssb.ai.input_tokens", message.Usage.InputTokens),
			attribute.Int64("ssb.ai.output_tokens", message.Usage.OutputTokens),
			attribute.Int("ssb.ai.attempts", attempts),
		)

		if len(message.Content) == 0 {
			return backoff.Permanent(fmt.Errorf("unexpected response format: no content blocks"))
		}
		content := message.Content[0]
		if content.Type != "text" {
			return backoff.Permanent(fmt.Errorf("unexpected response format: not a text block (type=%s)", content.Type))
		}
		text = content.Text
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialBackoff
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("anthropic call failed: %w", err)
	}

	return text, nil
}

// isRetryable reports whether the error is worth another attempt: rate
// limits, server errors, and network timeouts retry; everything else fails
// immediately.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	return false
}
