package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"scout/pkg/errors"
)

func TestClassifyProviderError(t *testing.T) {
	background := context.Background()

	tests := []struct {
		name   string
		parent context.Context
		err    error
		want   error
	}{
		{
			name:   "call timeout is transient",
			parent: background,
			err:    context.DeadlineExceeded,
			want:   errors.ErrProviderUnavailable,
		},
		{
			name:   "provider 429 is transient",
			parent: background,
			err:    genai.APIError{Code: 429, Message: "quota exhausted"},
			want:   errors.ErrProviderUnavailable,
		},
		{
			name:   "provider 503 is transient",
			parent: background,
			err:    genai.APIError{Code: 503, Message: "overloaded"},
			want:   errors.ErrProviderUnavailable,
		},
		{
			name:   "provider 400 is a rejection",
			parent: background,
			err:    genai.APIError{Code: 400, Message: "blocked"},
			want:   errors.ErrProviderRejected,
		},
		{
			name:   "transport error is transient",
			parent: background,
			err:    errors.New("connection reset"),
			want:   errors.ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyProviderError(tt.parent, tt.err)
			assert.True(t, errors.Is(got, tt.want), "got %v", got)
		})
	}
}

func TestClassifyProviderError_CallerCancellationIsNotRetryable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := classifyProviderError(ctx, context.Canceled)

	assert.False(t, errors.Is(got, errors.ErrProviderUnavailable),
		"a caller that hung up must not trigger the automatic retry")
	assert.True(t, errors.Is(got, context.Canceled))
}
