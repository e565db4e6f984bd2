package news

import (
	"slices"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

// Article is a community news post.
type Article struct {
	ID            string   `json:"id"`
	Title         string   `json:"title" validate:"required"`
	Summary       string   `json:"summary" validate:"required"`
	ImageURLs     []string `json:"imageUrls" validate:"dive,url"`
	Source        string   `json:"source" validate:"required"`
	PublishedDate string   `json:"publishedDate" validate:"required,isodate"`
	Link          string   `json:"link,omitempty" validate:"omitempty,url"`
}

func (a Article) Clone() Article {
	a.ImageURLs = slices.Clone(a.ImageURLs)
	return a
}

// Draft is the writable part of an Article.
type Draft struct {
	Title         string   `json:"title" validate:"required"`
	Summary       string   `json:"summary" validate:"required"`
	ImageURLs     []string `json:"imageUrls" validate:"dive,url"`
	Source        string   `json:"source" validate:"required"`
	PublishedDate string   `json:"publishedDate" validate:"required,isodate"`
	Link          string   `json:"link,omitempty" validate:"omitempty,url"`
}

func (d *Draft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Summary = strings.TrimSpace(d.Summary)
	d.ImageURLs = validation.TrimStrings(d.ImageURLs)
	d.Source = strings.TrimSpace(d.Source)
	d.PublishedDate = strings.TrimSpace(d.PublishedDate)
	d.Link = strings.TrimSpace(d.Link)
}

func (d Draft) Article(id string) Article {
	return Article{
		ID:            id,
		Title:         d.Title,
		Summary:       d.Summary,
		ImageURLs:     slices.Clone(d.ImageURLs),
		Source:        d.Source,
		PublishedDate: d.PublishedDate,
		Link:          d.Link,
	}
}

// SortByPublishedDesc orders newest first. Articles with an unparseable date
// keep their relative order after the dated ones.
func SortByPublishedDesc(items []Article) {
	slices.SortStableFunc(items, func(a, b Article) int {
		ta, okA := validation.ParseDate(a.PublishedDate)
		tb, okB := validation.ParseDate(b.PublishedDate)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}
