package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/forgo/foodfest/api/internal/model"
)

// Thresholds used by the filter reports. All comparisons are strict.
const (
	TopRatingAbove       = 9.0
	MultiStallVisitsOver = 5
	MultiContestOver     = 1
	MultiSellerOver      = 1
	SuperRaterOver       = 10
	TopSellingLimit      = 3
	DefaultTotalContests = 3
)

// DishView is a dish with its owning stall resolved.
// Stall is nil when the dish points at a stall that no longer exists.
type DishView struct {
	model.Dish
	Stall *model.StallSummary `json:"stall"`
}

// StallAverage is one row of the average price report.
// StallName and Cuisine are nil when the stall id does not resolve.
type StallAverage struct {
	StallID      string  `json:"stallId"`
	StallName    *string `json:"stallName"`
	Cuisine      *string `json:"cuisine"`
	AveragePrice float64 `json:"averagePrice"`
	DishCount    int     `json:"dishCount"`
}

// CuisineCount is the most common cuisine and how many stalls serve it.
type CuisineCount struct {
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
}

// HighestSales returns all stalls ordered by sales, highest first.
// Stalls with equal sales keep their input order.
func HighestSales(stalls []*model.Stall) []*model.Stall {
	out := filter(stalls, func(*model.Stall) bool { return true })
	slices.SortStableFunc(out, func(a, b *model.Stall) int {
		return cmp.Compare(b.Sales, a.Sales)
	})
	return out
}

// TopSelling returns at most n stalls from the head of HighestSales.
func TopSelling(stalls []*model.Stall, n int) []*model.Stall {
	ranked := HighestSales(stalls)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopRatedDishes returns dishes rated above 9, with their stall attached.
func TopRatedDishes(dishes []*model.Dish, stalls []*model.Stall) []DishView {
	return dishViews(dishes, stalls, func(d *model.Dish) bool {
		return d.Rating > TopRatingAbove
	})
}

// MultiStallDishes returns dishes sold by more than one stall.
func MultiStallDishes(dishes []*model.Dish, stalls []*model.Stall) []DishView {
	return dishViews(dishes, stalls, func(d *model.Dish) bool {
		return len(d.SoldBy) > MultiSellerOver
	})
}

// MostPopularDish returns the highest rated dish. The first dish wins a tie.
// ok is false when there are no dishes.
func MostPopularDish(dishes []*model.Dish, stalls []*model.Stall) (view DishView, ok bool) {
	var best *model.Dish
	for _, d := range dishes {
		if d == nil {
			continue
		}
		if best == nil || d.Rating > best.Rating {
			best = d
		}
	}
	if best == nil {
		return DishView{}, false
	}
	return DishView{Dish: *best, Stall: stallIndex(stalls).summary(best.StallID)}, true
}

// MultiStallVisitors returns visitors who visited more than five stalls.
func MultiStallVisitors(visitors []*model.Visitor) []*model.Visitor {
	return filter(visitors, func(v *model.Visitor) bool {
		return v.StallsVisited > MultiStallVisitsOver
	})
}

// SuperRaters returns visitors who rated more than ten dishes.
func SuperRaters(visitors []*model.Visitor) []*model.Visitor {
	return filter(visitors, func(v *model.Visitor) bool {
		return v.DishesRated > SuperRaterOver
	})
}

// MultiContestWinners returns stalls entered in more than one contest.
func MultiContestWinners(stalls []*model.Stall) []*model.Stall {
	return filter(stalls, func(s *model.Stall) bool {
		return len(s.Contests) > MultiContestOver
	})
}

// DemoStalls returns stalls running a live demo.
func DemoStalls(stalls []*model.Stall) []*model.Stall {
	return filter(stalls, func(s *model.Stall) bool {
		return s.LiveDemo
	})
}

// AllContestParticipants returns stalls entered in exactly total contests.
func AllContestParticipants(stalls []*model.Stall, total int) []*model.Stall {
	return filter(stalls, func(s *model.Stall) bool {
		return len(s.Contests) == total
	})
}

// MostCommonCuisine returns the cuisine served by the most stalls.
// The cuisine seen first wins a tie; ok is false when there are no stalls.
func MostCommonCuisine(stalls []*model.Stall) (top CuisineCount, ok bool) {
	counts := make(map[string]int)
	var order []string
	for _, s := range stalls {
		if s == nil {
			continue
		}
		if _, seen := counts[s.Cuisine]; !seen {
			order = append(order, s.Cuisine)
		}
		counts[s.Cuisine]++
	}
	for _, cuisine := range order {
		if !ok || counts[cuisine] > top.Count {
			top = CuisineCount{Cuisine: cuisine, Count: counts[cuisine]}
			ok = true
		}
	}
	return top, ok
}

// AveragePricePerStall groups priced dishes by owning stall and reports the
// mean price, rounded to cents, highest first. Dishes without a stall id or
// with a price of zero or less are ignored. Groups whose stall cannot be
// found are still reported, with a nil name and cuisine.
func AveragePricePerStall(dishes []*model.Dish, stalls []*model.Stall) []StallAverage {
	type group struct {
		sum   float64
		count int
	}
	groups := make(map[string]*group)
	var order []string
	for _, d := range dishes {
		if d == nil || d.StallID == "" || !(d.Price > 0) {
			continue
		}
		g, found := groups[d.StallID]
		if !found {
			g = &group{}
			groups[d.StallID] = g
			order = append(order, d.StallID)
		}
		g.sum += d.Price
		g.count++
	}

	index := stallIndex(stalls)
	out := make([]StallAverage, 0, len(order))
	for _, id := range order {
		g := groups[id]
		row := StallAverage{
			StallID:      id,
			AveragePrice: roundCents(g.sum / float64(g.count)),
			DishCount:    g.count,
		}
		if s, found := index[id]; found {
			name, cuisine := s.Name, s.Cuisine
			row.StallName = &name
			row.Cuisine = &cuisine
		}
		out = append(out, row)
	}

	slices.SortStableFunc(out, func(a, b StallAverage) int {
		return cmp.Compare(b.AveragePrice, a.AveragePrice)
	})
	return out
}

// roundCents rounds half to even at two decimal places.
func roundCents(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

type stallLookup map[string]*model.Stall

func stallIndex(list []*model.Stall) stallLookup {
	index := make(stallLookup, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		if _, dup := index[s.ID]; !dup {
			index[s.ID] = s
		}
	}
	return index
}

func (idx stallLookup) summary(id string) *model.StallSummary {
	if s, ok := idx[id]; ok {
		return s.Summary()
	}
	return nil
}

func dishViews(dishes []*model.Dish, stallList []*model.Stall, keep func(*model.Dish) bool) []DishView {
	index := stallIndex(stallList)
	out := make([]DishView, 0)
	for _, d := range dishes {
		if d == nil || !keep(d) {
			continue
		}
		out = append(out, DishView{Dish: *d, Stall: index.summary(d.StallID)})
	}
	return out
}

func filter[T any](in []*T, keep func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, v := range in {
		if v != nil && keep(v) {
			out = append(out, v)
		}
	}
	return out
}
