package model

import (
	"strings"
	"time"

	"github.com/forgo/foodfest/api/internal/validation"
)

// Dish is a menu item owned by one stall and possibly sold by others.
// StallID and SoldBy hold stall record ids; reads never assume they resolve.
type Dish struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StallID   string    `json:"stallId"`
	Price     float64   `json:"price"`
	Rating    float64   `json:"rating"`
	SoldBy    []string  `json:"soldBy"`
	CreatedOn time.Time `json:"createdAt"`
}

// CreateDishRequest is the body of POST /api/dishes
type CreateDishRequest struct {
	Name    string   `json:"name" validate:"required,max=120"`
	StallID string   `json:"stallId" validate:"required"`
	Price   *float64 `json:"price" validate:"required,gte=0"`
	Rating  float64  `json:"rating" validate:"gte=0,lte=10"`
	SoldBy  []string `json:"soldBy" validate:"omitempty,max=100,dive,required"`
}

// Normalize trims ids and removes duplicate soldBy entries, keeping first occurrence.
func (r *CreateDishRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.StallID = strings.TrimSpace(r.StallID)

	soldBy := trimAll(r.SoldBy)
	if soldBy == nil {
		r.SoldBy = nil
		return
	}
	seen := make(map[string]struct{}, len(soldBy))
	unique := soldBy[:0]
	for _, id := range soldBy {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	r.SoldBy = unique
}

// Validate returns the field errors for the request, if any.
func (r *CreateDishRequest) Validate() []FieldError {
	return fieldErrors(validation.Struct(r))
}

// StallRefs lists every stall id the dish refers to, owner first.
func (r *CreateDishRequest) StallRefs() []string {
	refs := make([]string, 0, 1+len(r.SoldBy))
	refs = append(refs, r.StallID)
	for _, id := range r.SoldBy {
		if id != r.StallID {
			refs = append(refs, id)
		}
	}
	return refs
}

// ToDish builds the dish that will be stored. SoldBy is never nil.
func (r *CreateDishRequest) ToDish() *Dish {
	soldBy := r.SoldBy
	if soldBy == nil {
		soldBy = []string{}
	}
	var price float64
	if r.Price != nil {
		price = *r.Price
	}
	return &Dish{
		Name:    r.Name,
		StallID: r.StallID,
		Price:   price,
		Rating:  r.Rating,
		SoldBy:  soldBy,
	}
}
