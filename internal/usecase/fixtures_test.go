package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

var errRepoDown = errors.New("repository down")

func sameContext(ctx context.Context) any {
	return mock.MatchedBy(func(v context.Context) bool { return v == ctx })
}

// sequentialIDs returns prefix-1, prefix-2, ...
func sequentialIDs(prefix string) idgen.Generator {
	var n atomic.Int64
	return idgen.GeneratorFunc(func() (string, error) {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1)), nil
	})
}

func failingIDs() idgen.Generator {
	return idgen.GeneratorFunc(func() (string, error) {
		return "", errors.New("entropy exhausted")
	})
}

func fakeNewsDraft(f *gofakeit.Faker) news.Draft {
	return news.Draft{
		Title:         f.Sentence(4),
		Summary:       f.Sentence(12),
		ImageURLs:     []string{f.URL()},
		Source:        f.Company(),
		PublishedDate: f.Date().Format("2006-01-02"),
		Link:          f.URL(),
	}
}

func fakeTournamentDraft(f *gofakeit.Faker, status tournament.Status) tournament.Draft {
	return tournament.Draft{
		Name:      f.Sentence(3),
		Organizer: f.Company(),
		PrizePool: fmt.Sprintf("₹%d", f.Number(10000, 5000000)),
		Dates:     "August 1 - September 15, 2024",
		Format:    "Squads, TPP",
		ImageURLs: []string{f.URL()},
		Status:    status,
	}
}

func fakeTeamDraft(f *gofakeit.Faker, players int) team.Draft {
	roster := make([]team.PlayerDraft, 0, players)
	for i := 0; i < players; i++ {
		roster = append(roster, team.PlayerDraft{
			Name: f.Name(),
			IGN:  f.Username(),
			Role: f.RandomString([]string{"IGL", "Assaulter", "Support", "Sniper"}),
		})
	}
	return team.Draft{
		Name:        f.Company(),
		LogoURL:     f.URL(),
		Roster:      roster,
		Description: f.Sentence(8),
	}
}
