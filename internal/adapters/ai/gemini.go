package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"scout/internal/adapters/config"
	"scout/pkg/errors"
	"scout/pkg/logger"
)

// GeminiExecutor implements Provider using the Gemini API with Google
// Search grounding enabled on every call.
type GeminiExecutor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter RateLimiter
	log     *logger.Logger
}

// NewGeminiExecutor creates a Gemini-backed grounded query executor.
func NewGeminiExecutor(ctx context.Context, cfg config.GeminiConfig) (*GeminiExecutor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	var limiter RateLimiter = NewNoOpLimiter()
	if cfg.RequestsPerMin > 0 {
		limiter = NewTokenBucketLimiter("gemini", cfg.RequestsPerMin, cfg.Burst)
	}

	return &GeminiExecutor{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: limiter,
		log:     logger.Get().With("component", "gemini_executor", "model", cfg.Model),
	}, nil
}

// Name returns provider name.
func (e *GeminiExecutor) Name() string { return "gemini" }

// Execute issues one grounded generation call. The provider timeout bounds
// the whole call; citations are passed through in provider order.
func (e *GeminiExecutor) Execute(ctx context.Context, req GroundedRequest) (*ProviderResponse, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	searchTool := &genai.Tool{GoogleSearch: &genai.GoogleSearch{}}
	genCfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{searchTool},
	}

	start := time.Now()
	resp, err := e.client.Models.GenerateContent(
		callCtx,
		e.model,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)},
		genCfg,
	)
	elapsed := time.Since(start)

	if err != nil {
		e.log.Warnw("Grounded generation failed", "elapsed", elapsed, "error", err)
		return nil, classifyProviderError(ctx, err)
	}

	out := &ProviderResponse{Elapsed: elapsed}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				out.Text += part.Text
			}
		}

		if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
			for _, chunk := range gm.GroundingChunks {
				if chunk.Web != nil {
					out.Citations = append(out.Citations, Citation{
						URL:   chunk.Web.URI,
						Title: chunk.Web.Title,
					})
				}
			}
		}
	}

	e.log.Debugw("Grounded generation completed",
		"elapsed", elapsed,
		"text_len", len(out.Text),
		"citations", len(out.Citations),
	)

	return out, nil
}

// classifyProviderError maps transport and API failures onto the pipeline's
// two provider failure kinds. Timeouts, connection errors, rate limiting and
// provider-side 5xx are transient; a structured 4xx means the request itself
// was declined. A caller-cancelled parent context is neither: retrying a
// request nobody is waiting for wastes the retry, so it surfaces as-is.
func classifyProviderError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return errors.Wrap(parentErr, "generation abandoned by caller")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errors.Wrap(errors.ErrProviderUnavailable, "generation timed out")
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return errors.Wrapf(errors.ErrProviderUnavailable, "provider returned %d: %s", apiErr.Code, apiErr.Message)
		}
		return errors.Wrapf(errors.ErrProviderRejected, "provider returned %d: %s", apiErr.Code, apiErr.Message)
	}

	return errors.Wrapf(errors.ErrProviderUnavailable, "transport error: %v", err)
}

// Ensure GeminiExecutor implements Provider
var _ Provider = (*GeminiExecutor)(nil)
