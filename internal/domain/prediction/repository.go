package prediction

import "context"

// Repository holds at most one question.
type Repository interface {
	Get(ctx context.Context) (Question, bool, error)
	// Update stores the question derived by fn from the current one, with no
	// other writer in between.
	Update(ctx context.Context, fn func(current Question, exists bool) (Question, error)) (Question, error)
	Clear(ctx context.Context) error
}
