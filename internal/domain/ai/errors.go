package ai

import "errors"

// ErrWebSearchUnsupported is returned by providers that cannot grant a search capability.
var ErrWebSearchUnsupported = errors.New("ai provider does not support web search")

// ErrEmptyResponse indicates the provider answered without any choices or content blocks.
var ErrEmptyResponse = errors.New("ai provider returned an empty response")
