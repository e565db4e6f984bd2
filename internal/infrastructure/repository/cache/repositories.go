package cache

import (
	"context"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	basecache "github.com/riskibarqy/esports-hub/internal/platform/cache"
)

type collectionRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, bool, error)
	Insert(ctx context.Context, item T) error
	Replace(ctx context.Context, item T) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CollectionRepository caches reads of a collection. Any write drops every
// cached key of the resource, whether or not it succeeded.
type CollectionRepository[T any] struct {
	next   collectionRepository[T]
	cache  *basecache.Store
	prefix string
	clone  func(T) T
}

func NewNewsRepository(next news.Repository, cache *basecache.Store) *CollectionRepository[news.Article] {
	return &CollectionRepository[news.Article]{next: next, cache: cache, prefix: "news:", clone: news.Article.Clone}
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *CollectionRepository[tournament.Tournament] {
	return &CollectionRepository[tournament.Tournament]{next: next, cache: cache, prefix: "tournament:", clone: tournament.Tournament.Clone}
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *CollectionRepository[team.Team] {
	return &CollectionRepository[team.Team]{next: next, cache: cache, prefix: "team:", clone: team.Team.Clone}
}

func (r *CollectionRepository[T]) List(ctx context.Context) ([]T, error) {
	v, err := r.cache.GetOrLoad(ctx, r.prefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return r.cloneAll(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return r.cloneAll(items), nil
}

func (r *CollectionRepository[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, r.prefix+"id:"+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedByID[T]{value: r.clone(item), exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	cached, _ := v.(cachedByID[T])
	return r.clone(cached.value), cached.exists, nil
}

func (r *CollectionRepository[T]) Insert(ctx context.Context, item T) error {
	defer r.invalidate(ctx)
	return r.next.Insert(ctx, item)
}

func (r *CollectionRepository[T]) Replace(ctx context.Context, item T) (bool, error) {
	defer r.invalidate(ctx)
	return r.next.Replace(ctx, item)
}

func (r *CollectionRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

func (r *CollectionRepository[T]) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, r.prefix)
}

func (r *CollectionRepository[T]) cloneAll(items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, r.clone(item))
	}
	return out
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

// singleton caches the single document of a resource under one key.
type singleton[T any] struct {
	cache *basecache.Store
	key   string
	clone func(T) T
}

func (c singleton[T]) get(ctx context.Context, load func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := c.cache.GetOrLoad(ctx, c.key, func(ctx context.Context) (any, error) {
		doc, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedByID[T]{value: c.clone(doc), exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	cached, _ := v.(cachedByID[T])
	return c.clone(cached.value), cached.exists, nil
}

func (c singleton[T]) invalidate(ctx context.Context) {
	c.cache.Delete(ctx, c.key)
}

type LeaderboardRepository struct {
	singleton[leaderboard.Leaderboard]
	next leaderboard.Repository
}

func NewLeaderboardRepository(next leaderboard.Repository, cache *basecache.Store) *LeaderboardRepository {
	return &LeaderboardRepository{
		singleton: singleton[leaderboard.Leaderboard]{cache: cache, key: "leaderboard:current", clone: leaderboard.Leaderboard.Clone},
		next:      next,
	}
}

func (r *LeaderboardRepository) Get(ctx context.Context) (leaderboard.Leaderboard, bool, error) {
	return r.get(ctx, r.next.Get)
}

func (r *LeaderboardRepository) Save(ctx context.Context, doc leaderboard.Leaderboard) error {
	defer r.invalidate(ctx)
	return r.next.Save(ctx, doc)
}

func (r *LeaderboardRepository) SaveIfAbsent(ctx context.Context, doc leaderboard.Leaderboard) (bool, error) {
	defer r.invalidate(ctx)
	return r.next.SaveIfAbsent(ctx, doc)
}

type PredictionRepository struct {
	singleton[prediction.Question]
	next prediction.Repository
}

func NewPredictionRepository(next prediction.Repository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{
		singleton: singleton[prediction.Question]{cache: cache, key: "prediction:current", clone: prediction.Question.Clone},
		next:      next,
	}
}

func (r *PredictionRepository) Get(ctx context.Context) (prediction.Question, bool, error) {
	return r.get(ctx, r.next.Get)
}

func (r *PredictionRepository) Update(ctx context.Context, fn func(current prediction.Question, exists bool) (prediction.Question, error)) (prediction.Question, error) {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, fn)
}

func (r *PredictionRepository) Clear(ctx context.Context) error {
	defer r.invalidate(ctx)
	return r.next.Clear(ctx)
}
