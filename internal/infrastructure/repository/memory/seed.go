package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esports-hub/internal/domain/leaderboard"
	"github.com/riskibarqy/esports-hub/internal/domain/news"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
)

const placeholderImage = "https://placehold.co/600x400.png"

func SeedNews() []news.Article {
	return []news.Article{
		{
			ID:            "1",
			Title:         "Major BGMI Tournament Announced for Q3 2024",
			Summary:       "A new major BGMI tournament with a massive prize pool has been announced by Krafton India, scheduled for the third quarter of 2024.",
			ImageURLs:     []string{placeholderImage},
			Source:        "BGMI Official",
			PublishedDate: "2024-07-20",
		},
		{
			ID:            "2",
			Title:         "Team Velocity crowned champions of BGMI Masters Series",
			Summary:       "Team Velocity showcased an incredible performance to win the BGMI Masters Series, taking home the lion's share of the prize pool.",
			ImageURLs:     []string{placeholderImage},
			Source:        "Esports Insider",
			PublishedDate: "2024-07-18",
		},
		{
			ID:            "3",
			Title:         "BGMI Update 3.5: New Map and Features Coming Soon",
			Summary:       "The upcoming BGMI update 3.5 is rumored to introduce a new map, several gameplay enhancements, and new weapon skins.",
			ImageURLs:     []string{placeholderImage},
			Source:        "Gaming News Hub",
			PublishedDate: "2024-07-15",
		},
	}
}

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:          "t1",
			Name:        "BGMI India Series (BGIS) 2024",
			Organizer:   "Krafton India",
			PrizePool:   "₹2,00,00,000",
			Dates:       "August 1 - September 15, 2024",
			Format:      "Squads, TPP, Online Qualifiers, LAN Finals",
			PointSystem: "Standard points system with placement and kill points.",
			ImageURLs:   []string{placeholderImage},
			Status:      tournament.StatusUpcoming,
		},
		{
			ID:        "t2",
			Name:      "Skyesports Championship 5.0 BGMI",
			Organizer: "Skyesports",
			PrizePool: "₹1,00,00,000",
			Dates:     "July 25 - August 30, 2024",
			Format:    "Squads, TPP, Invitational + Qualifiers",
			ImageURLs: []string{placeholderImage},
			Status:    tournament.StatusOngoing,
		},
		{
			ID:        "t3",
			Name:      "BGMI Pro Series (BMPS) 2024 Season 2",
			Organizer: "Krafton India",
			PrizePool: "₹1,50,00,000",
			Dates:     "October 10 - November 25, 2024",
			ImageURLs: []string{placeholderImage},
			Status:    tournament.StatusUpcoming,
		},
		{
			ID:        "t4",
			Name:      "India Today Gaming BGMI Cup",
			Organizer: "India Today Gaming",
			PrizePool: "₹50,00,000",
			Dates:     "June 1 - July 10, 2024",
			ImageURLs: []string{placeholderImage},
			Status:    tournament.StatusCompleted,
		},
	}
}

func SeedTeams() []team.Team {
	const logo = "https://placehold.co/100x100.png"
	return []team.Team{
		{
			ID:          "team1",
			Name:        "Team SouL",
			LogoURL:     logo,
			Description: "One of the most popular and successful BGMI teams in India.",
			Roster: []team.Player{
				{ID: "p1", Name: "Omega", IGN: "SouLOmega", Role: "IGL"},
				{ID: "p2", Name: "Goblin", IGN: "SouLGoblin", Role: "Assaulter"},
				{ID: "p3", Name: "AkshaT", IGN: "SouLAkshaT", Role: "Assaulter"},
				{ID: "p4", Name: "Hector", IGN: "SouLHector", Role: "Support"},
			},
		},
		{
			ID:          "team2",
			Name:        "GodLike Esports",
			LogoURL:     logo,
			Description: "A powerhouse in Indian BGMI, known for its aggressive gameplay.",
			Roster: []team.Player{
				{ID: "p5", Name: "Jonathan", IGN: "GodLJonathan", Role: "Assaulter"},
				{ID: "p6", Name: "ClutchGod", IGN: "GodLClutchGod", Role: "IGL"},
				{ID: "p7", Name: "ZGOD", IGN: "GodLZGOD", Role: "Support"},
				{ID: "p8", Name: "Neyoo", IGN: "GodLNeyoo", Role: "Entry Fragger"},
			},
		},
		{
			ID:          "team3",
			Name:        "Team XSpark",
			LogoURL:     logo,
			Description: "Led by Scout, a fan-favorite team with a strong lineup.",
			Roster: []team.Player{
				{ID: "p9", Name: "Scout", IGN: "TXScout", Role: "IGL/Assaulter"},
				{ID: "p10", Name: "Mavi", IGN: "TXMavi", Role: "IGL"},
				{ID: "p11", Name: "Aditya", IGN: "TXAditya", Role: "Assaulter"},
				{ID: "p12", Name: "Pukar", IGN: "TXPukar", Role: "Support"},
			},
		},
		{
			ID:          "team4",
			Name:        "OR Esports",
			LogoURL:     logo,
			Description: "Consistently performing team with skilled players.",
			Roster: []team.Player{
				{ID: "p13", Name: "Jelly", IGN: "ORJelly", Role: "IGL"},
				{ID: "p14", Name: "Maxx", IGN: "ORMaxx", Role: "Assaulter"},
				{ID: "p15", Name: "Attanki", IGN: "ORAttanki", Role: "Entry Fragger"},
				{ID: "p16", Name: "Admino", IGN: "ORAdmino", Role: "Support"},
			},
		},
	}
}

func SeedLeaderboard() leaderboard.Leaderboard {
	const logo = "https://placehold.co/50x50.png"
	played := func(n int) *int { return &n }
	return leaderboard.Leaderboard{
		TournamentID:   "t2",
		TournamentName: "Skyesports Championship 5.0 BGMI (Ongoing)",
		Entries: []leaderboard.Entry{
			{Rank: 1, TeamName: "GodLike Esports", TeamLogoURL: logo, Points: 120, MatchesPlayed: played(10)},
			{Rank: 2, TeamName: "Team SouL", TeamLogoURL: logo, Points: 115, MatchesPlayed: played(10)},
			{Rank: 3, TeamName: "OR Esports", TeamLogoURL: logo, Points: 100, MatchesPlayed: played(10)},
			{Rank: 4, TeamName: "Team XSpark", TeamLogoURL: logo, Points: 95, MatchesPlayed: played(10)},
			{Rank: 5, TeamName: "Blind Esports", TeamLogoURL: logo, Points: 92, MatchesPlayed: played(10)},
			{Rank: 6, TeamName: "Revenant Esports", TeamLogoURL: logo, Points: 88, MatchesPlayed: played(10)},
		},
		LeaderboardImageURLs: []string{},
	}
}

// Seed writes the mock dataset into every resource that is still empty and
// returns the names of the resources it filled. Existing content is never
// overwritten.
func Seed(ctx context.Context, backend document.Backend) ([]string, error) {
	var seeded []string
	record := func(resource string, written bool, err error) error {
		if err != nil {
			return fmt.Errorf("seed %s: %w", resource, err)
		}
		if written {
			seeded = append(seeded, resource)
		}
		return nil
	}

	written, err := document.NewNewsCollection(backend).ReplaceAll(ctx, SeedNews(), true)
	if err := record(document.ResourceNews, written, err); err != nil {
		return seeded, err
	}

	written, err = document.NewTournamentCollection(backend).ReplaceAll(ctx, SeedTournaments(), true)
	if err := record(document.ResourceTournaments, written, err); err != nil {
		return seeded, err
	}

	written, err = document.NewTeamCollection(backend).ReplaceAll(ctx, SeedTeams(), true)
	if err := record(document.ResourceTeams, written, err); err != nil {
		return seeded, err
	}

	written, err = document.NewLeaderboardSingleton(backend).SaveIfAbsent(ctx, SeedLeaderboard())
	if err := record(document.ResourceLeaderboard, written, err); err != nil {
		return seeded, err
	}

	return seeded, nil
}
