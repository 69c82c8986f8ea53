package client

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func msg(role schema.RoleType, content string) *schema.Message {
	return &schema.Message{Role: role, Content: content}
}

func TestNormalizeConversationHistory_PreservesValidHistory(t *testing.T) {
	original := []*schema.Message{
		msg(schema.User, "first"),
		msg(schema.Assistant, "reply"),
	}

	result, changed := normalizeConversationHistory(original, "ignored")

	if changed {
		t.Fatalf("expected no change, got changed history")
	}
	if len(result) != len(original) {
		t.Fatalf("unexpected length: got %d want %d", len(result), len(original))
	}
	for i := range original {
		if result[i] != original[i] {
			t.Fatalf("message pointer at %d changed", i)
		}
	}
}

func TestNormalizeConversationHistory_AllowsLeadingSystem(t *testing.T) {
	original := []*schema.Message{
		msg(schema.System, "sys"),
		msg(schema.User, "first"),
	}

	result, changed := normalizeConversationHistory(original, "ignored")

	if changed {
		t.Fatalf("expected no change with leading system message")
	}
	if len(result) != 2 {
		t.Fatalf("unexpected length: %d", len(result))
	}
}

func TestNormalizeConversationHistory_DropsLeadingAssistants(t *testing.T) {
	original := []*schema.Message{
		msg(schema.Assistant, "stale"),
		msg(schema.User, "first"),
		msg(schema.Assistant, "reply"),
	}

	result, changed := normalizeConversationHistory(original, "fallback")

	if !changed {
		t.Fatalf("expected history to change")
	}
	if len(result) != 2 {
		t.Fatalf("unexpected length: %d", len(result))
	}
	if result[0].Role != schema.User || result[0].Content != "first" {
		t.Fatalf("first message = %+v", result[0])
	}
}

func TestNormalizeConversationHistory_InsertsFallbackUser(t *testing.T) {
	original := []*schema.Message{
		msg(schema.System, "sys"),
		msg(schema.Assistant, "orphan"),
	}

	result, changed := normalizeConversationHistory(original, "please continue")

	if !changed {
		t.Fatalf("expected history to change")
	}
	if len(result) != 2 {
		t.Fatalf("unexpected length: %d", len(result))
	}
	if result[1].Role != schema.User || result[1].Content != "please continue" {
		t.Fatalf("fallback message = %+v", result[1])
	}
}

func TestNormalizeConversationHistory_EmptyHistory(t *testing.T) {
	result, changed := normalizeConversationHistory(nil, "")

	if !changed {
		t.Fatalf("expected empty history to change")
	}
	if len(result) != 1 || result[0].Role != schema.User {
		t.Fatalf("expected single fallback user message, got %+v", result)
	}
	if result[0].Content != fallbackUserMessage {
		t.Fatalf("fallback content = %q", result[0].Content)
	}
}

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: broken" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

var _ net.Error = fakeNetError{}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want FailureKind
	}{
		{errors.New("status 401 Unauthorized"), FailureAuth},
		{errors.New("Invalid API key provided"), FailureAuth},
		{errors.New("authentication failed"), FailureAuth},
		{errors.New("429 Too Many Requests"), FailureRateLimit},
		{errors.New("rate limit exceeded"), FailureRateLimit},
		{errors.New("you have exhausted your quota"), FailureRateLimit},
		{errors.New("request timeout"), FailureNetwork},
		{errors.New("connection refused"), FailureNetwork},
		{errors.New("no such host"), FailureNetwork},
		{fakeNetError{}, FailureNetwork},
		{errors.New("something odd happened"), FailureUnknown},
	}
	for _, c := range cases {
		got := Classify(c.err)
		if got.Kind != c.want {
			t.Fatalf("Classify(%q) = %s, want %s", c.err, got.Kind, c.want)
		}
		if !errors.Is(got, c.err) {
			t.Fatalf("Classify(%q) does not wrap the original error", c.err)
		}
	}
}

func TestClassifyPassesThroughUpstreamError(t *testing.T) {
	original := &UpstreamError{Kind: FailureRateLimit, Err: errors.New("429")}
	wrapped := fmt.Errorf("generate: %w", original)
	if got := Classify(wrapped); got != original {
		t.Fatalf("expected passthrough of existing UpstreamError, got %+v", got)
	}
}

func TestUpstreamErrorText(t *testing.T) {
	err := &UpstreamError{Kind: FailureAuth, Err: errors.New("status 401")}
	if got := err.Error(); got != "authentication error: status 401" {
		t.Fatalf("Error() = %q", got)
	}
}
