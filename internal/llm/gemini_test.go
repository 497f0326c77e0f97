package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholasgasior/text2map-go/internal/httputil"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func newTestGemini(t *testing.T, h http.HandlerFunc) *Gemini {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	g, err := NewGemini(Config{APIKey: "test-key", BaseURL: ts.URL, MaxRetries: 2})
	require.NoError(t, err)
	return g
}

func TestGemini_Generate(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/"+DefaultGeminiModel+":generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Contents, 1) {
			assert.Equal(t, "user", req.Contents[0].Role)
			assert.Equal(t, []geminiPart{{Text: "make a map"}}, req.Contents[0].Parts)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"# Root\n"},{"text":"## Branch"}]},"finishReason":"STOP"}]}`))
	})

	out, err := g.Generate(context.Background(), "make a map")
	require.NoError(t, err)
	assert.Equal(t, "# Root\n## Branch", out)
}

func TestGemini_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error object", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`, "API key not valid"},
		{"blocked prompt", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "prompt blocked: SAFETY"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "no candidates"},
		{"empty text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"MAX_TOKENS"}]}`, "no text"},
		{"non json failure", http.StatusBadGateway, `upstream down`, "gemini returned 502"},
		{"bad json", http.StatusOK, `{`, "decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := g.Generate(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGemini_RetriesRateLimit(t *testing.T) {
	var calls int32
	g := newTestGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	out, err := g.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: "Gemini", APIKey: "k", Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p.Name())
	assert.Equal(t, "gemini-2.0-flash", p.(*Gemini).Model())

	_, err = NewProvider(Config{Provider: "gemini"})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = NewProvider(Config{})
	assert.Error(t, err)

	_, err = NewProvider(Config{Provider: "other", APIKey: "k"})
	assert.ErrorContains(t, err, `unknown provider "other"`)
}

func TestSanitizeForClient(t *testing.T) {
	assert.Equal(t, "", SanitizeForClient(nil))
	assert.Equal(t, "authentication failed with provider", SanitizeForClient(errors.New("gemini error [400 INVALID_ARGUMENT]: API key not valid")))
	assert.Equal(t, "prompt was blocked by the provider", SanitizeForClient(errors.New("gemini prompt blocked: SAFETY")))
	assert.Equal(t, "request timed out", SanitizeForClient(context.DeadlineExceeded))
	assert.Equal(t, "provider temporarily unavailable", SanitizeForClient(errors.New("boom")))
}
