package client

import (
	"errors"
	"net"
	"strings"
)

// FailureKind buckets an upstream model failure for the caller. The
// orchestrator never retries any of these; it records the error text in the
// transcript and moves on.
type FailureKind string

const (
	FailureAuth      FailureKind = "auth"
	FailureRateLimit FailureKind = "rate_limit"
	FailureNetwork   FailureKind = "network"
	FailureUnknown   FailureKind = "unknown"
)

var failureLabels = map[FailureKind]string{
	FailureAuth:      "authentication",
	FailureRateLimit: "rate limit",
	FailureNetwork:   "network",
	FailureUnknown:   "upstream",
}

// UpstreamError wraps a model call failure with its classification.
type UpstreamError struct {
	Kind FailureKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return failureLabels[e.Kind] + " error: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Classify converts a raw provider error into an UpstreamError. Provider
// SDKs do not share an error taxonomy, so classification is by transport
// type and well-known status markers in the message.
func Classify(err error) *UpstreamError {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &UpstreamError{Kind: FailureNetwork, Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid api key") || strings.Contains(msg, "authentication"):
		return &UpstreamError{Kind: FailureAuth, Err: err}
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota"):
		return &UpstreamError{Kind: FailureRateLimit, Err: err}
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") || strings.Contains(msg, "connection reset"):
		return &UpstreamError{Kind: FailureNetwork, Err: err}
	}
	return &UpstreamError{Kind: FailureUnknown, Err: err}
}
