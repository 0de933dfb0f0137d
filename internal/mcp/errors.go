package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/powerpoint"
)

// Category buckets a tool failure so callers can tell retry-worthy
// failures from permanent ones.
type Category string

const (
	CategoryTimeout         Category = "timeout"
	CategoryBusy            Category = "busy"
	CategoryConnection      Category = "connection"
	CategoryInvalidArgument Category = "invalid_argument"
	CategoryNotFound        Category = "not_found"
	CategoryAmbiguous       Category = "ambiguous"
	CategoryInternal        Category = "internal"
)

// Classify assigns a failure category and a retryable hint. Providers
// flatten most errors to text, so classification falls back to the
// message when the chain carries no known type.
func Classify(err error) (Category, bool) {
	if err == nil {
		return CategoryInternal, false
	}
	if errors.Is(err, com.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout, true
	}
	if com.IsTransientBusy(err) {
		return CategoryBusy, true
	}
	var connErr *powerpoint.ConnectionError
	if errors.As(err, &connErr) {
		return CategoryConnection, false
	}
	if errors.Is(err, com.ErrNoDocument) {
		return CategoryNotFound, false
	}
	return classifyMessage(err.Error())
}

func classifyMessage(message string) (Category, bool) {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "timed out"):
		return CategoryTimeout, true

	case strings.Contains(m, "call was rejected"),
		strings.Contains(m, "retry later"):
		return CategoryBusy, true

	case strings.Contains(m, "failed to connect"),
		strings.Contains(m, "powerpoint is installed"):
		return CategoryConnection, false

	// "N open presentations match" is the ambiguity wording; the
	// zero-match wording is singular and lands in not_found below.
	case strings.Contains(m, "presentations match"):
		return CategoryAmbiguous, false

	case strings.Contains(m, "unknown tool"),
		strings.Contains(m, "not found"),
		strings.Contains(m, "out of range"),
		strings.Contains(m, "no open presentation"),
		strings.Contains(m, "no presentations are open"),
		strings.Contains(m, "no active presentation"):
		return CategoryNotFound, false

	case strings.Contains(m, "parameter required"),
		strings.Contains(m, "must be"),
		strings.Contains(m, "must not"),
		strings.Contains(m, "cannot be empty"),
		strings.Contains(m, "must contain"),
		strings.Contains(m, "unknown "):
		return CategoryInvalidArgument, false
	}
	return CategoryInternal, false
}
