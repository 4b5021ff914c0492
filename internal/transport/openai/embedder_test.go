package openai

import (
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/carprompt/carsearch/internal/domain"
)

func TestWrapAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "request error with detail body",
			err:  &openai.RequestError{HTTPStatusCode: 429, Body: []byte(`{"detail":"rate limited"}`)},
			want: "embedding API error 429: rate limited",
		},
		{
			name: "request error with opaque body",
			err:  &openai.RequestError{HTTPStatusCode: 500, Body: []byte("oops")},
			want: "embedding API error 500: oops",
		},
		{
			name: "api error",
			err:  &openai.APIError{HTTPStatusCode: 401, Message: "bad key"},
			want: "embedding API error 401: bad key",
		},
		{
			name: "plain error",
			err:  errors.New("dial tcp: refused"),
			want: "embedding request failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapAPIError("embedding", tc.err)
			if !errors.Is(got, domain.ErrEmbeddingProviderError) {
				t.Errorf("error not tagged with ErrEmbeddingProviderError: %v", got)
			}
			if gotMsg := got.Error(); len(gotMsg) < len(tc.want) || gotMsg[:len(tc.want)] != tc.want {
				t.Errorf("message = %q, want prefix %q", gotMsg, tc.want)
			}
		})
	}
}
