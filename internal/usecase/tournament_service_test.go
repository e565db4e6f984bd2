package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	tournamentmock "github.com/riskibarqy/esports-hub/internal/mocks/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
	"github.com/stretchr/testify/mock"
)

func tournamentFixtures() []tournament.Tournament {
	return []tournament.Tournament{
		{ID: "c1", Status: tournament.StatusCompleted},
		{ID: "u1", Status: tournament.StatusUpcoming},
		{ID: "o1", Status: tournament.StatusOngoing},
		{ID: "u2", Status: tournament.StatusUpcoming},
		{ID: "o2", Status: tournament.StatusOngoing},
	}
}

func tournamentIDs(items []tournament.Tournament) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestTournamentService_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query TournamentQuery
		want  []string
	}{
		{
			name:  "stored order without options",
			query: TournamentQuery{},
			want:  []string{"c1", "u1", "o1", "u2", "o2"},
		},
		{
			name:  "status precedence sort is stable",
			query: TournamentQuery{SortByStatus: true},
			want:  []string{"o1", "o2", "u1", "u2", "c1"},
		},
		{
			name:  "filter then sort then truncate",
			query: TournamentQuery{Statuses: []tournament.Status{tournament.StatusOngoing, tournament.StatusUpcoming}, SortByStatus: true, Limit: 3},
			want:  []string{"o1", "o2", "u1"},
		},
		{
			name:  "filter single status",
			query: TournamentQuery{Statuses: []tournament.Status{tournament.StatusCompleted}},
			want:  []string{"c1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := tournamentmock.NewRepository(t)
			repo.On("List", sameContext(ctx)).Return(tournamentFixtures(), nil).Once()

			got, err := NewTournamentService(repo, sequentialIDs("t")).List(ctx, tt.query)
			if err != nil {
				t.Fatalf("list tournaments: %v", err)
			}
			if diff := cmp.Diff(tt.want, tournamentIDs(got)); diff != "" {
				t.Fatalf("unexpected ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTournamentService_CreateValidatesStatus(t *testing.T) {
	t.Parallel()

	repo := tournamentmock.NewRepository(t)
	service := NewTournamentService(repo, sequentialIDs("t"))

	draft := fakeTournamentDraft(gofakeit.New(11), "Cancelled")
	_, err := service.Create(context.Background(), draft)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	fields, _ := validation.FromError(err)
	if got := fields["status"]; len(got) != 1 || got[0] != "must be one of: Ongoing, Upcoming, Completed" {
		t.Fatalf("unexpected status errors: %v", fields)
	}
}

func TestTournamentService_CreateAndUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	faker := gofakeit.New(12)
	repo := tournamentmock.NewRepository(t)
	service := NewTournamentService(repo, sequentialIDs("t"))

	repo.On("Insert", sameContext(ctx), mock.MatchedBy(func(v tournament.Tournament) bool { return v.ID == "t-1" })).Return(nil).Once()
	created, err := service.Create(ctx, fakeTournamentDraft(faker, tournament.StatusUpcoming))
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}

	draft := fakeTournamentDraft(faker, tournament.StatusOngoing)
	repo.On("Replace", sameContext(ctx), mock.MatchedBy(func(v tournament.Tournament) bool {
		return v.ID == created.ID && v.Status == tournament.StatusOngoing
	})).Return(true, nil).Once()

	updated, err := service.Update(ctx, created.ID, draft)
	if err != nil {
		t.Fatalf("update tournament: %v", err)
	}
	if updated.ID != created.ID || updated.Name != draft.Name {
		t.Fatalf("unexpected updated tournament: %+v", updated)
	}
}

func TestTournamentService_DeleteMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	repo.On("Delete", sameContext(ctx), "nope").Return(false, nil).Once()

	err := NewTournamentService(repo, sequentialIDs("t")).Delete(ctx, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
