package tournament

import (
	"slices"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

type Status string

const (
	StatusOngoing   Status = "Ongoing"
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
)

// Precedence orders statuses for display: Ongoing, Upcoming, Completed.
func (s Status) Precedence() int {
	switch s {
	case StatusOngoing:
		return 0
	case StatusUpcoming:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 3
	}
}

func (s Status) Valid() bool {
	return s.Precedence() < 3
}

// ParseStatuses reads a comma separated filter such as "Ongoing,Upcoming".
// Blank entries are skipped. Unknown names are returned so the caller can reject them.
func ParseStatuses(csv string) (known []Status, unknown []string) {
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		status := Status(part)
		if !status.Valid() {
			unknown = append(unknown, part)
			continue
		}
		known = append(known, status)
	}
	return known, unknown
}

type Tournament struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Organizer   string   `json:"organizer" validate:"required"`
	PrizePool   string   `json:"prizePool" validate:"required"`
	Dates       string   `json:"dates" validate:"required"`
	Format      string   `json:"format,omitempty"`
	PointSystem string   `json:"pointSystem,omitempty"`
	ImageURLs   []string `json:"imageUrls" validate:"dive,url"`
	Status      Status   `json:"status" validate:"required,oneof=Ongoing Upcoming Completed"`
}

func (t Tournament) Clone() Tournament {
	t.ImageURLs = slices.Clone(t.ImageURLs)
	return t
}

type Draft struct {
	Name        string   `json:"name" validate:"required"`
	Organizer   string   `json:"organizer" validate:"required"`
	PrizePool   string   `json:"prizePool" validate:"required"`
	Dates       string   `json:"dates" validate:"required"`
	Format      string   `json:"format,omitempty"`
	PointSystem string   `json:"pointSystem,omitempty"`
	ImageURLs   []string `json:"imageUrls" validate:"dive,url"`
	Status      Status   `json:"status" validate:"required,oneof=Ongoing Upcoming Completed"`
}

func (d *Draft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Organizer = strings.TrimSpace(d.Organizer)
	d.PrizePool = strings.TrimSpace(d.PrizePool)
	d.Dates = strings.TrimSpace(d.Dates)
	d.Format = strings.TrimSpace(d.Format)
	d.PointSystem = strings.TrimSpace(d.PointSystem)
	d.ImageURLs = validation.TrimStrings(d.ImageURLs)
	d.Status = Status(strings.TrimSpace(string(d.Status)))
}

func (d Draft) Tournament(id string) Tournament {
	return Tournament{
		ID:          id,
		Name:        d.Name,
		Organizer:   d.Organizer,
		PrizePool:   d.PrizePool,
		Dates:       d.Dates,
		Format:      d.Format,
		PointSystem: d.PointSystem,
		ImageURLs:   slices.Clone(d.ImageURLs),
		Status:      d.Status,
	}
}

// SortByStatus is a stable sort by status precedence.
func SortByStatus(items []Tournament) {
	slices.SortStableFunc(items, func(a, b Tournament) int {
		return a.Status.Precedence() - b.Status.Precedence()
	})
}

// FilterByStatus keeps tournaments whose status is in statuses. An empty
// filter keeps everything.
func FilterByStatus(items []Tournament, statuses []Status) []Tournament {
	if len(statuses) == 0 {
		return items
	}
	out := make([]Tournament, 0, len(items))
	for _, item := range items {
		if slices.Contains(statuses, item.Status) {
			out = append(out, item)
		}
	}
	return out
}
