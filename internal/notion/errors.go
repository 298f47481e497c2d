package notion

import (
	"errors"
	"fmt"

	"github.com/jomei/notionapi"
)

// UpstreamError is any failure returned by the Notion API: network errors,
// auth failures, rate limits, missing pages. The core never retries these;
// the orchestrator surfaces them to the user and moves on.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: notion returned %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// wrapUpstream converts an SDK error into an UpstreamError, keeping the
// upstream status and message when the SDK exposes them.
func wrapUpstream(op string, err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{Op: op, Status: apiErr.Status, Message: apiErr.Message, Err: err}
	}
	return &UpstreamError{Op: op, Message: err.Error(), Err: err}
}
