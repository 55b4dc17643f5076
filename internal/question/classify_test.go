package question

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gokatarajesh/trivia-rooms/internal/question/ai"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ReasonGeneric},
		{"not configured", ai.ErrNotConfigured, ReasonNotConfigured},
		{"wrapped not configured", fmt.Errorf("generate: %w", ai.ErrNotConfigured), ReasonNotConfigured},
		{"malformed sentinel", fmt.Errorf("%w: bad", ErrMalformedResponse), ReasonMalformed},
		{"empty completion", ai.ErrEmptyCompletion, ReasonMalformed},
		{"http 401", &ai.HTTPError{StatusCode: http.StatusUnauthorized}, ReasonInvalidCredentials},
		{"http 403", &ai.HTTPError{StatusCode: http.StatusForbidden}, ReasonInvalidCredentials},
		{"http 429", &ai.HTTPError{StatusCode: http.StatusTooManyRequests, Body: "slow down"}, ReasonRateLimited},
		{"http 429 quota", &ai.HTTPError{StatusCode: http.StatusTooManyRequests, Body: "You exceeded your current quota"}, ReasonQuotaExceeded},
		{"http 402", &ai.HTTPError{StatusCode: http.StatusPaymentRequired}, ReasonQuotaExceeded},
		{"url error", &url.Error{Op: "Post", URL: "http://model", Err: errors.New("dial tcp: refused")}, ReasonNetwork},
		{"deadline", fmt.Errorf("completion request: %w", context.DeadlineExceeded), ReasonNetwork},
		{"keyword api key", errors.New("Incorrect API key provided"), ReasonInvalidCredentials},
		{"keyword rate limit", errors.New("rate limit exceeded for model"), ReasonRateLimited},
		{"keyword billing", errors.New("billing hard limit reached"), ReasonQuotaExceeded},
		{"keyword connection", errors.New("connection reset by peer"), ReasonNetwork},
		{"keyword econn", errors.New("ECONNREFUSED 127.0.0.1:443"), ReasonNetwork},
		{"keyword json", errors.New("decode completion payload: invalid json"), ReasonMalformed},
		{"keyword unexpected token", errors.New("Unexpected token < in JSON"), ReasonMalformed},
		{"http 500", &ai.HTTPError{StatusCode: http.StatusInternalServerError, Body: "oops"}, ReasonGeneric},
		{"unknown", errors.New("something odd"), ReasonGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}
