package question

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gokatarajesh/trivia-rooms/internal/question/ai"
)

// Fallback reasons surfaced to callers when the model path is not used.
const (
	ReasonNotConfigured      = "service not configured"
	ReasonInvalidCredentials = "invalid credentials"
	ReasonRateLimited        = "rate limit reached"
	ReasonQuotaExceeded      = "quota exceeded"
	ReasonNetwork            = "network error"
	ReasonMalformed          = "malformed response"
	ReasonGeneric            = "generic generation failure"
	ReasonSampleRequested    = "Sample questions requested"
)

// ErrMalformedResponse marks model output that could not yield any question.
var ErrMalformedResponse = errors.New("malformed model response")

var keywordReasons = []struct {
	reason   string
	keywords []string
}{
	{ReasonInvalidCredentials, []string{"api key", "unauthorized", "authentication"}},
	{ReasonRateLimited, []string{"rate limit", "429"}},
	{ReasonQuotaExceeded, []string{"quota", "billing"}},
	{ReasonNetwork, []string{"network", "fetch", "connection", "timeout", "econn"}},
	{ReasonMalformed, []string{"json", "parse", "malformed", "unexpected token"}},
}

// ClassifyError maps a generation failure to a fallback reason. Typed errors
// are checked before falling back to message keywords.
func ClassifyError(err error) string {
	if err == nil {
		return ReasonGeneric
	}

	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return ReasonNotConfigured
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ai.ErrEmptyCompletion):
		return ReasonMalformed
	}

	var httpErr *ai.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ReasonInvalidCredentials
		case http.StatusPaymentRequired:
			return ReasonQuotaExceeded
		case http.StatusTooManyRequests:
			if strings.Contains(strings.ToLower(httpErr.Body), "quota") {
				return ReasonQuotaExceeded
			}
			return ReasonRateLimited
		}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return ReasonNetwork
	}

	msg := strings.ToLower(err.Error())
	for _, kr := range keywordReasons {
		for _, kw := range kr.keywords {
			if strings.Contains(msg, kw) {
				return kr.reason
			}
		}
	}
	return ReasonGeneric
}
