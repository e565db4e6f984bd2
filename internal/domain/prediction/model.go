package prediction

import (
	"strings"
	"time"
)

// Question is the current "predict and win" prompt. Answers are collected
// through the linked form.
type Question struct {
	QuestionText  string     `json:"questionText" validate:"required,min=5"`
	GoogleFormURL string     `json:"googleFormUrl" validate:"required,url"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func (q Question) Clone() Question {
	if q.CreatedAt != nil {
		v := *q.CreatedAt
		q.CreatedAt = &v
	}
	if q.UpdatedAt != nil {
		v := *q.UpdatedAt
		q.UpdatedAt = &v
	}
	return q
}

type Draft struct {
	QuestionText  string `json:"questionText" validate:"required,min=5"`
	GoogleFormURL string `json:"googleFormUrl" validate:"required,url"`
}

func (d *Draft) Normalize() {
	d.QuestionText = strings.TrimSpace(d.QuestionText)
	d.GoogleFormURL = strings.TrimSpace(d.GoogleFormURL)
}
