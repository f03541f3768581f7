package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/ports"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL:    "https://proxy.example.com/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestComplete_Success(t *testing.T) {
	var captured ports.CompletionRequest
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.String() != "https://proxy.example.com/complete" {
			t.Errorf("url = %s", r.URL)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		return jsonResponse(200, `{"content":"generated text","remaining":2}`), nil
	})

	res := c.Complete(context.Background(), ports.CompletionRequest{Feature: "summary", Prompt: "p"})
	if res.Fallback {
		t.Error("success marked as fallback")
	}
	if res.Content != "generated text" || res.Remaining != 2 {
		t.Errorf("result = %+v", res)
	}
	if captured.Feature != "summary" || captured.Prompt != "p" {
		t.Errorf("request body = %+v", captured)
	}
}

func TestComplete_NoRemainingReported(t *testing.T) {
	c := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"content":"x"}`), nil
	})
	res := c.Complete(context.Background(), ports.CompletionRequest{Feature: "summary"})
	if res.Remaining != -1 {
		t.Errorf("Remaining = %d, want -1", res.Remaining)
	}
}

func TestComplete_FallbackPaths(t *testing.T) {
	tests := []struct {
		name string
		rt   roundTripFunc
	}{
		{"network error", func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial timeout")
		}},
		{"non-2xx", func(*http.Request) (*http.Response, error) {
			return jsonResponse(429, `{"error":"quota"}`), nil
		}},
		{"bad json", func(*http.Request) (*http.Response, error) {
			return jsonResponse(200, `not json`), nil
		}},
		{"empty content", func(*http.Request) (*http.Response, error) {
			return jsonResponse(200, `{"content":"  "}`), nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.rt)
			res := c.Complete(context.Background(), ports.CompletionRequest{Feature: FeatureSummary})
			if !res.Fallback {
				t.Fatal("expected fallback result")
			}
			if res.Content != staticDefaults[FeatureSummary] {
				t.Errorf("fallback content = %q", res.Content)
			}
		})
	}
}

func TestStatic_Deterministic(t *testing.T) {
	s := NewStatic()
	req := ports.CompletionRequest{Feature: FeatureCoverLetter, Prompt: "anything"}
	a := s.Complete(context.Background(), req)
	b := s.Complete(context.Background(), req)
	if a.Content != b.Content || a.Content == "" {
		t.Errorf("static completer not deterministic: %q vs %q", a.Content, b.Content)
	}

	unknown := s.Complete(context.Background(), ports.CompletionRequest{Feature: "nope"})
	if unknown.Content != staticGeneric {
		t.Errorf("unknown feature content = %q", unknown.Content)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Error("expected error for missing base url")
	}
}
