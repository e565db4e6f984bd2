package leaderboard

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

const DefaultTournamentName = "New Tournament Leaderboard"

type Entry struct {
	Rank          int    `json:"rank" validate:"gt=0"`
	TeamName      string `json:"teamName" validate:"required"`
	TeamLogoURL   string `json:"teamLogoUrl,omitempty" validate:"omitempty,url"`
	Points        int    `json:"points"`
	MatchesPlayed *int   `json:"matchesPlayed,omitempty" validate:"omitempty,gte=0"`
}

// Leaderboard is the single standings document shown on the site.
type Leaderboard struct {
	TournamentID         string   `json:"tournamentId" validate:"required"`
	TournamentName       string   `json:"tournamentName" validate:"required"`
	Entries              []Entry  `json:"entries" validate:"dive"`
	LeaderboardImageURLs []string `json:"leaderboardImageUrls" validate:"dive,url"`
}

// NewDefault is the document served before an admin publishes standings.
func NewDefault(now time.Time) Leaderboard {
	return Leaderboard{
		TournamentID:         fmt.Sprintf("default-tournament-%d", now.UnixMilli()),
		TournamentName:       DefaultTournamentName,
		Entries:              []Entry{},
		LeaderboardImageURLs: []string{},
	}
}

func (l Leaderboard) Clone() Leaderboard {
	entries := make([]Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.MatchesPlayed != nil {
			played := *e.MatchesPlayed
			e.MatchesPlayed = &played
		}
		entries = append(entries, e)
	}
	l.Entries = entries
	l.LeaderboardImageURLs = slices.Clone(l.LeaderboardImageURLs)
	if l.LeaderboardImageURLs == nil {
		l.LeaderboardImageURLs = []string{}
	}
	return l
}

func (l *Leaderboard) Normalize() {
	l.TournamentID = strings.TrimSpace(l.TournamentID)
	l.TournamentName = strings.TrimSpace(l.TournamentName)
	if l.Entries == nil {
		l.Entries = []Entry{}
	}
	for i := range l.Entries {
		l.Entries[i].TeamName = strings.TrimSpace(l.Entries[i].TeamName)
		l.Entries[i].TeamLogoURL = strings.TrimSpace(l.Entries[i].TeamLogoURL)
	}
	l.LeaderboardImageURLs = validation.TrimStrings(l.LeaderboardImageURLs)
}
