package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "", "kimi-k2-turbo-preview", zerolog.Nop())
	assert.Error(t, err)

	c, err := NewClient("sk-test", "https://example.com/v1", "kimi-k2-turbo-preview", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "kimi-k2-turbo-preview", c.Model())
}

func TestSetModel(t *testing.T) {
	c, err := NewClient("sk-test", "", "a", zerolog.Nop())
	require.NoError(t, err)

	c.SetModel("b")
	assert.Equal(t, "b", c.Model())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &openai.APIError{HTTPStatusCode: 429}, true},
		{"server error", &openai.APIError{HTTPStatusCode: 500}, true},
		{"bad gateway", &openai.APIError{HTTPStatusCode: 502}, true},
		{"unavailable", &openai.APIError{HTTPStatusCode: 503}, true},
		{"bad request", &openai.APIError{HTTPStatusCode: 400}, false},
		{"unauthorized", &openai.APIError{HTTPStatusCode: 401}, false},
		{"timeout keyword", errors.New("request timeout exceeded"), true},
		{"connection keyword", errors.New("connection reset by peer"), true},
		{"overloaded keyword", errors.New("model is overloaded"), true},
		{"plain failure", errors.New("invalid payload"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestRetryDelayBounds(t *testing.T) {
	// Large attempts cover the shift clamp: without it the delay would
	// overflow negative and the jitter draw would panic.
	for _, attempt := range []int{0, 1, 2, 5, 10, 34, 64, 1 << 20} {
		d := retryDelay(attempt)
		assert.GreaterOrEqual(t, d, baseRetryDelay)
		// Cap plus 50% jitter.
		assert.LessOrEqual(t, d, maxRetryDelay+maxRetryDelay/2+time.Millisecond)
	}
}
