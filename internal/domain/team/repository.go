package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	Insert(ctx context.Context, item Team) error
	Replace(ctx context.Context, item Team) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
