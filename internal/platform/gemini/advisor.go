// Package gemini implements the advice.Advisor interface using Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/bodasandeepsai/task-manager/internal/advice"
	"github.com/bodasandeepsai/task-manager/internal/config"
)

// promptPrefix is the fixed instructional template wrapped around every
// user message. The model is steered toward plain prose; Sanitize cleans
// up whatever markdown it emits anyway.
const promptPrefix = `You are a professional task management and productivity AI assistant.
Provide clear, concise, and practical advice for the following request.
Focus on actionable steps and professional recommendations.
Keep responses friendly but professional, and avoid using markdown formatting.

User request: %s

Response guidelines:
- Use natural language without markdown
- Keep paragraphs short and focused
- Use bullet points for lists (with the • symbol)
- Maintain a professional tone
- Be concise and direct
- Focus on practical, actionable advice`

// Advisor relays advice requests to the Gemini API.
type Advisor struct {
	logger     *slog.Logger
	client     *genai.Client
	model      string
	maxRetries int
	baseDelay  time.Duration
}

// Ensure Advisor implements the advice.Advisor interface
var _ advice.Advisor = (*Advisor)(nil)

// NewAdvisor creates an Advisor from the LLM configuration.
func NewAdvisor(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Advisor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", advice.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", advice.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", advice.ErrInvalidConfig, err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelaySeconds := cfg.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	return &Advisor{
		logger:     logger.With("component", "gemini_advisor"),
		client:     client,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  time.Duration(baseDelaySeconds) * time.Second,
	}, nil
}

// Advise implements advice.Advisor. Transient API failures are retried
// with exponential backoff and jitter; safety blocks and empty responses
// are permanent and returned immediately.
func (a *Advisor) Advise(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", advice.ErrEmptyMessage
	}

	prompt := fmt.Sprintf(promptPrefix, message)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		a.logger.DebugContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", a.maxRetries+1)

		text, err := a.generate(ctx, prompt)
		if err == nil {
			return Sanitize(text), nil
		}
		lastErr = err

		// Permanent failures are not retried.
		if errors.Is(err, advice.ErrContentBlocked) || errors.Is(err, advice.ErrInvalidResponse) {
			a.logger.WarnContext(ctx, "permanent Gemini error, not retrying", "error", err)
			return "", err
		}

		a.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if attempt == a.maxRetries {
			break
		}

		// delay = base * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(a.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", advice.ErrUpstreamFailure, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: %v", advice.ErrUpstreamFailure, lastErr)
}

// generate performs a single model call and extracts the reply text.
func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", advice.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", advice.ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response text", advice.ErrInvalidResponse)
	}

	return text, nil
}
