// README: Contract for the external language-model completion service.
package ai

import (
	"context"
)

// LLMProvider defines the contract for the external completion service.
// Implementations send a fixed classification instruction plus the user's
// free text and return the model's raw reply text, which callers must
// treat as untrusted until it passes schema validation.
type LLMProvider interface {
	CompleteIntent(ctx context.Context, userQuery string) (string, error)
}
