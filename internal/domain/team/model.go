package team

import (
	"slices"
	"strings"
)

// Player belongs to exactly one team roster.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
	IGN  string `json:"ign" validate:"required"`
	Role string `json:"role,omitempty"`
}

// Team is an esports organisation with its current roster.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	LogoURL     string   `json:"logoUrl,omitempty" validate:"omitempty,url"`
	Roster      []Player `json:"roster" validate:"dive"`
	Description string   `json:"description,omitempty"`
}

func (t Team) Clone() Team {
	t.Roster = slices.Clone(t.Roster)
	return t
}

type PlayerDraft struct {
	Name string `json:"name" validate:"required"`
	IGN  string `json:"ign" validate:"required"`
	Role string `json:"role,omitempty"`
}

type Draft struct {
	Name        string        `json:"name" validate:"required"`
	LogoURL     string        `json:"logoUrl,omitempty" validate:"omitempty,url"`
	Roster      []PlayerDraft `json:"roster" validate:"dive"`
	Description string        `json:"description,omitempty"`
}

func (d *Draft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.LogoURL = strings.TrimSpace(d.LogoURL)
	d.Description = strings.TrimSpace(d.Description)
	if d.Roster == nil {
		d.Roster = []PlayerDraft{}
	}
	for i := range d.Roster {
		d.Roster[i].Name = strings.TrimSpace(d.Roster[i].Name)
		d.Roster[i].IGN = strings.TrimSpace(d.Roster[i].IGN)
		d.Roster[i].Role = strings.TrimSpace(d.Roster[i].Role)
	}
}

// Team builds the record. playerIDs must have one id per roster entry.
func (d Draft) Team(id string, playerIDs []string) Team {
	roster := make([]Player, 0, len(d.Roster))
	for i, p := range d.Roster {
		roster = append(roster, Player{
			ID:   playerIDs[i],
			Name: p.Name,
			IGN:  p.IGN,
			Role: p.Role,
		})
	}

	return Team{
		ID:          id,
		Name:        d.Name,
		LogoURL:     d.LogoURL,
		Roster:      roster,
		Description: d.Description,
	}
}
