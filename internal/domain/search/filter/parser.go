package filter

import "context"

// PromptParser turns free text into structured search filters.
type PromptParser interface {
	Parse(ctx context.Context, text string) (Filter, error)
}
