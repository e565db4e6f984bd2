package news

import "context"

// Repository describes news persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Article, error)
	GetByID(ctx context.Context, id string) (Article, bool, error)
	Insert(ctx context.Context, item Article) error
	Replace(ctx context.Context, item Article) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
