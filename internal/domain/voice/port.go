package voice

import (
	"context"

	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
)

// Strategy turns a target URL into one capability-configured model request.
// The orchestrator walks strategies in order and stops at the first one whose
// response contains a JSON object.
type Strategy interface {
	Name() string
	Build(ctx context.Context, url string) (ai.Request, error)
}
