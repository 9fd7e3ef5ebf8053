package model

import (
	"strings"
	"time"

	"github.com/forgo/foodfest/api/internal/validation"
)

// Visitor is a festival attendee with activity counters.
type Visitor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StallsVisited int       `json:"stallsVisited"`
	DishesRated   int       `json:"dishesRated"`
	CreatedOn     time.Time `json:"createdAt"`
}

// CreateVisitorRequest is the body of POST /api/visitors
type CreateVisitorRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	StallsVisited int    `json:"stallsVisited" validate:"gte=0"`
	DishesRated   int    `json:"dishesRated" validate:"gte=0"`
}

func (r *CreateVisitorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// Validate returns the field errors for the request, if any.
func (r *CreateVisitorRequest) Validate() []FieldError {
	return fieldErrors(validation.Struct(r))
}

func (r *CreateVisitorRequest) ToVisitor() *Visitor {
	return &Visitor{
		Name:          r.Name,
		StallsVisited: r.StallsVisited,
		DishesRated:   r.DishesRated,
	}
}

// Summary is the dashboard headline figures.
type Summary struct {
	Stalls     int     `json:"stalls"`
	Dishes     int     `json:"dishes"`
	Visitors   int     `json:"visitors"`
	TotalSales float64 `json:"totalSales"`
}
