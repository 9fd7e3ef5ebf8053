package model

import (
	"strings"
	"time"

	"github.com/forgo/foodfest/api/internal/validation"
)

// Stall is a vendor booth at the festival.
type Stall struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cuisine   string    `json:"cuisine"`
	Sales     float64   `json:"sales"`
	LiveDemo  bool      `json:"liveDemo"`
	Contests  []string  `json:"contests"`
	CreatedOn time.Time `json:"createdAt"`
}

// CreateStallRequest is the body of POST /api/stalls
type CreateStallRequest struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Cuisine  string   `json:"cuisine" validate:"required,max=60"`
	Sales    float64  `json:"sales" validate:"gte=0"`
	LiveDemo bool     `json:"liveDemo"`
	Contests []string `json:"contests" validate:"omitempty,max=50,dive,required,max=80"`
}

// Normalize trims text fields and drops blank contest names.
func (r *CreateStallRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Cuisine = strings.TrimSpace(r.Cuisine)
	r.Contests = trimAll(r.Contests)
}

// Validate returns the field errors for the request, if any.
func (r *CreateStallRequest) Validate() []FieldError {
	return fieldErrors(validation.Struct(r))
}

// ToStall builds the stall that will be stored. Contests is never nil.
func (r *CreateStallRequest) ToStall() *Stall {
	contests := r.Contests
	if contests == nil {
		contests = []string{}
	}
	return &Stall{
		Name:     r.Name,
		Cuisine:  r.Cuisine,
		Sales:    r.Sales,
		LiveDemo: r.LiveDemo,
		Contests: contests,
	}
}

// StallSummary is the subset of a stall embedded in dish views.
type StallSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
}

// Summary returns the stall's summary
func (s *Stall) Summary() *StallSummary {
	return &StallSummary{ID: s.ID, Name: s.Name, Cuisine: s.Cuisine}
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// fieldErrors converts validator output to API field errors.
func fieldErrors(verr *validation.Error) []FieldError {
	if verr == nil {
		return nil
	}
	out := make([]FieldError, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		out = append(out, FieldError{Field: v.Field, Message: v.Message})
	}
	return out
}
