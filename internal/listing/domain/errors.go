package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error for callers. Values are stable.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindUpstream        Kind = "upstream"
	KindIntegrity       Kind = "integrity"
	KindRateLimited     Kind = "rate_limited"
	KindInternal        Kind = "internal"
)

var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrNotFoundOrForbidden  = errors.New("listing not found or not permitted")
	ErrEmptyInsert          = errors.New("store returned no row for insert")
	ErrQuotaExceeded        = errors.New("ai quota exceeded")
	ErrSuggestionFailed     = errors.New("failed to generate suggestion")
	ErrRecommendationFailed = errors.New("failed to fetch recommendation")
)

// Error is the typed error every procedure returns.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages.
	Fields map[string]string
	// UpstreamStatus and UpstreamBody are only set for KindUpstream.
	UpstreamStatus int
	UpstreamBody   string
	Err            error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "; %s: %s", k, e.Fields[k])
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
}

func NewUnauthenticatedError() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required", Err: ErrUnauthenticated}
}

func NewNotFoundError() *Error {
	return &Error{Kind: KindNotFound, Message: "listing not found or not permitted", Err: ErrNotFoundOrForbidden}
}

func NewUpstreamError(status int, body string) *Error {
	return &Error{
		Kind:           KindUpstream,
		Message:        fmt.Sprintf("upstream service returned status %d", status),
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

func NewIntegrityError(msg string, err error) *Error {
	return &Error{Kind: KindIntegrity, Message: msg, Err: err}
}

func NewRateLimitedError() *Error {
	return &Error{Kind: KindRateLimited, Message: "too many requests", Err: ErrQuotaExceeded}
}

// NewInternalError keeps err for server-side logs only.
func NewInternalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, KindInternal for untyped errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
