package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SocialStream/utils"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/go-resty/resty/v2"
)

const (
	// EmptyCaptionFallback is used when the model answers with no text.
	EmptyCaptionFallback = "Engaging content coming soon! 🚀 #viral #trending"
	// FailedCaptionFallback replaces the caption when the rewrite call fails.
	FailedCaptionFallback = "Check out this amazing content! 🔥 #repost"
)

const captionPrompt = `
You are a viral social media manager. I will give you a caption from an Instagram post and some instructions.
Your job is to rewrite the caption to be highly engaging, use appropriate emojis, and follow the specific tone requested.

ORIGINAL CAPTION: "%s"
USER INSTRUCTION: "%s"

Return ONLY the new caption text.
`

// CaptionRewriter turns a source caption into a new one following instruction.
type CaptionRewriter interface {
	Rewrite(ctx context.Context, original, instruction string) (string, error)
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiRewriter calls the Gemini generateContent REST endpoint. Calls go
// through a circuit breaker so an unreachable service fails fast instead of
// holding every cycle for the full timeout.
type GeminiRewriter struct {
	client   *resty.Client
	model    string
	executor failsafe.Executor[string]
	breaker  circuitbreaker.CircuitBreaker[string]
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewGeminiRewriter(cfg GeminiConfig) *GeminiRewriter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)

	breaker := circuitbreaker.NewBuilder[string]().
		WithFailureThreshold(3).
		WithDelay(time.Minute).
		WithSuccessThreshold(1).
		OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
			utils.Warnf("caption service breaker from=%v to=%v", event.OldState, event.NewState)
		}).
		Build()

	return &GeminiRewriter{
		client:   client,
		model:    cfg.Model,
		executor: failsafe.With[string](breaker),
		breaker:  breaker,
	}
}

func (g *GeminiRewriter) Rewrite(ctx context.Context, original, instruction string) (string, error) {
	text, err := g.executor.WithContext(ctx).Get(func() (string, error) {
		return g.generate(ctx, fmt.Sprintf(captionPrompt, original, instruction))
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return "", fmt.Errorf("%w: service unavailable (breaker open)", ErrRewriteFailed)
		}
		return "", fmt.Errorf("%w: %v", ErrRewriteFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyCaptionFallback, nil
	}
	return text, nil
}

func (g *GeminiRewriter) generate(ctx context.Context, prompt string) (string, error) {
	var out geminiResponse
	var apiErr geminiError

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(geminiRequest{
			Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/models/" + g.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini %s: %s", resp.Status(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini unexpected status %s", resp.Status())
	}

	if len(out.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// BreakerOpen reports whether calls are currently short-circuited.
func (g *GeminiRewriter) BreakerOpen() bool {
	return g.breaker.IsOpen()
}

// EchoRewriter is used when no caption service is configured. It keeps the
// original caption and appends a tag line.
type EchoRewriter struct{}

func (EchoRewriter) Rewrite(_ context.Context, original, _ string) (string, error) {
	original = strings.TrimSpace(original)
	if original == "" {
		return EmptyCaptionFallback, nil
	}
	return original + " #repost", nil
}
