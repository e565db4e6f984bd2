package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/news"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

type NewsService struct {
	repo  news.Repository
	idGen idgen.Generator
}

func NewNewsService(repo news.Repository, idGen idgen.Generator) *NewsService {
	return &NewsService{repo: repo, idGen: idGen}
}

// List returns articles newest first. A positive limit truncates the result.
func (s *NewsService) List(ctx context.Context, limit int) ([]news.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list news", err)
	}

	news.SortByPublishedDesc(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *NewsService) Get(ctx context.Context, id string) (news.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Get")
	defer span.End()

	id = strings.TrimSpace(id)
	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return news.Article{}, storageError("get news", err)
	}
	if !exists {
		return news.Article{}, fmt.Errorf("%w: news=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *NewsService) Create(ctx context.Context, draft news.Draft) (news.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Create")
	defer span.End()

	draft.Normalize()
	if errs := validation.Check(ctx, draft); len(errs) > 0 {
		return news.Article{}, invalidInput(errs)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return news.Article{}, fmt.Errorf("generate news id: %w", err)
	}

	item := draft.Article(id)
	if err := s.repo.Insert(ctx, item); err != nil {
		return news.Article{}, storageError("insert news", err)
	}
	return item, nil
}

// Update replaces every field of the article except its id.
func (s *NewsService) Update(ctx context.Context, id string, draft news.Draft) (news.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	draft.Normalize()
	if errs := validation.Check(ctx, draft); len(errs) > 0 {
		return news.Article{}, invalidInput(errs)
	}

	item := draft.Article(id)
	found, err := s.repo.Replace(ctx, item)
	if err != nil {
		return news.Article{}, storageError("replace news", err)
	}
	if !found {
		return news.Article{}, fmt.Errorf("%w: news=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageError("delete news", err)
	}
	if !found {
		return fmt.Errorf("%w: news=%s", ErrNotFound, id)
	}
	return nil
}
