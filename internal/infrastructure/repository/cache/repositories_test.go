package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/prediction"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
	leaderboardmock "github.com/riskibarqy/esports-hub/internal/mocks/domain/leaderboard"
	newsmock "github.com/riskibarqy/esports-hub/internal/mocks/domain/news"
	predictionmock "github.com/riskibarqy/esports-hub/internal/mocks/domain/prediction"
	basecache "github.com/riskibarqy/esports-hub/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestNewsRepository_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := newsmock.NewRepository(t)
	repo := NewNewsRepository(next, basecache.NewStore(time.Minute))

	first := []news.Article{{ID: "1", Title: "One", ImageURLs: []string{"https://img.example.com/1.png"}}}
	next.On("List", mock.Anything).Return(first, nil).Once()

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got[0].ImageURLs[0] = "mutated"

	got, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if got[0].ImageURLs[0] != "https://img.example.com/1.png" {
		t.Fatalf("cached value leaked a caller mutation: %+v", got[0])
	}

	next.On("Insert", mock.Anything, mock.AnythingOfType("news.Article")).Return(nil).Once()
	if err := repo.Insert(ctx, news.Article{ID: "2"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	second := append(first, news.Article{ID: "2"})
	next.On("List", mock.Anything).Return(second, nil).Once()
	got, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list after insert: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected list to be reloaded after insert, got %d items", len(got))
	}
}

func TestNewsRepository_GetByIDCachesMisses(t *testing.T) {
	ctx := context.Background()
	next := newsmock.NewRepository(t)
	repo := NewNewsRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, "missing").Return(news.Article{}, false, nil).Once()
	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(ctx, "missing")
		if err != nil || exists {
			t.Fatalf("get missing: exists=%v err=%v", exists, err)
		}
	}
}

func TestNewsRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := newsmock.NewRepository(t)
	repo := NewNewsRepository(next, basecache.NewStore(time.Minute))

	boom := errors.New("disk on fire")
	next.On("List", mock.Anything).Return(nil, boom).Once()
	next.On("List", mock.Anything).Return([]news.Article{}, nil).Once()

	if _, err := repo.List(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("expected second load to succeed, got %v", err)
	}
}

func TestPredictionRepository_ClearInvalidates(t *testing.T) {
	ctx := context.Background()
	next := predictionmock.NewRepository(t)
	repo := NewPredictionRepository(next, basecache.NewStore(time.Minute))

	q := prediction.Question{QuestionText: "Who wins?", GoogleFormURL: "https://forms.gle/x"}
	next.On("Get", mock.Anything).Return(q, true, nil).Once()
	if _, exists, err := repo.Get(ctx); err != nil || !exists {
		t.Fatalf("get: exists=%v err=%v", exists, err)
	}
	if _, exists, _ := repo.Get(ctx); !exists {
		t.Fatalf("expected cached question")
	}

	next.On("Clear", mock.Anything).Return(nil).Once()
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	next.On("Get", mock.Anything).Return(prediction.Question{}, false, nil).Once()
	if _, exists, err := repo.Get(ctx); err != nil || exists {
		t.Fatalf("expected cleared question, exists=%v err=%v", exists, err)
	}
}

// gatedNewsRepository pauses the first List after it has read the collection.
type gatedNewsRepository struct {
	news.Repository
	listed  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *gatedNewsRepository) List(ctx context.Context) ([]news.Article, error) {
	items, err := r.Repository.List(ctx)
	r.once.Do(func() {
		close(r.listed)
		<-r.release
	})
	return items, err
}

func TestNewsRepository_ListAfterInsertDuringSlowLoad(t *testing.T) {
	ctx := context.Background()
	next := &gatedNewsRepository{
		Repository: document.NewNewsCollection(memory.NewBackend()),
		listed:     make(chan struct{}),
		release:    make(chan struct{}),
	}
	repo := NewNewsRepository(next, basecache.NewStore(time.Minute))

	slowDone := make(chan int, 1)
	go func() {
		items, _ := repo.List(ctx)
		slowDone <- len(items)
	}()

	<-next.listed
	article := news.Article{ID: "a1", Title: "MPL ID finals", Summary: "s", ImageURLs: []string{}, Source: "src", PublishedDate: "2024-07-01"}
	if err := repo.Insert(ctx, article); err != nil {
		t.Fatalf("insert: %v", err)
	}
	close(next.release)
	if n := <-slowDone; n != 0 {
		t.Fatalf("slow list started before the insert, got %d items", n)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after insert: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a1" {
		t.Fatalf("inserted article missing from list: %+v", items)
	}
}

func TestLeaderboardRepository_SaveIfAbsentInvalidates(t *testing.T) {
	ctx := context.Background()
	next := leaderboardmock.NewRepository(t)
	repo := NewLeaderboardRepository(next, basecache.NewStore(time.Minute))

	next.On("Get", mock.Anything).Return(leaderboard.Leaderboard{}, false, nil).Once()
	if _, exists, err := repo.Get(ctx); err != nil || exists {
		t.Fatalf("get empty: exists=%v err=%v", exists, err)
	}

	doc := leaderboard.Leaderboard{TournamentID: "bgis", TournamentName: "BGIS", Entries: []leaderboard.Entry{}, LeaderboardImageURLs: []string{}}
	next.On("SaveIfAbsent", mock.Anything, doc).Return(false, nil).Once()
	if written, err := repo.SaveIfAbsent(ctx, doc); err != nil || written {
		t.Fatalf("save if absent: written=%v err=%v", written, err)
	}

	next.On("Get", mock.Anything).Return(doc, true, nil).Once()
	got, exists, err := repo.Get(ctx)
	if err != nil || !exists || got.TournamentID != "bgis" {
		t.Fatalf("expected reload after SaveIfAbsent, got=%+v exists=%v err=%v", got, exists, err)
	}
}
