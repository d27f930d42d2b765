package ai

import (
	"context"
	"fmt"
)

// Generator produces raw text for a compiled prompt. It is the only
// component that touches the network; everything downstream treats its
// output as untrusted free text.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ProviderError wraps a failed model call so callers can tell a transport
// or quota failure apart from a malformed response.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
