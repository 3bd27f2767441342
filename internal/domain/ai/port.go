package ai

import (
	"context"
	"strings"
)

// Request is a single user-role prompt sent to the model service.
// WebSearch grants the model a live search capability for this call.
type Request struct {
	Prompt    string
	WebSearch bool
}

// Response holds the text segments returned by the model, in emission order.
type Response struct {
	Segments []string
}

// Text joins the non-empty segments with newlines.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
