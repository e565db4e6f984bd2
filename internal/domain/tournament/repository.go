package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, id string) (Tournament, bool, error)
	Insert(ctx context.Context, item Tournament) error
	Replace(ctx context.Context, item Tournament) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
