package report

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Options tunes report behavior.
type Options struct {
	// TotalContests is how many contests the festival runs; stalls entered in
	// all of them are reported by all-contest-participants.
	TotalContests int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{TotalContests: DefaultTotalContests}
}

func (o Options) normalized() Options {
	if o.TotalContests <= 0 {
		o.TotalContests = DefaultTotalContests
	}
	return o
}

// Definition describes one fixed report.
type Definition struct {
	ID     int        `json:"id"`
	Slug   string     `json:"slug"`
	Title  string     `json:"title"`
	Single bool       `json:"single"`
	Needs  Collection `json:"-"`

	run func(ds *Dataset, opts Options) (rows any, count int)
}

// Result is the output of one report.
// Rows is always a non-nil slice; single-value reports yield zero or one row.
type Result struct {
	Definition Definition `json:"query"`
	Rows       any        `json:"rows"`
	Count      int        `json:"count"`
}

var definitions = []Definition{
	{
		ID: 1, Slug: "highest-sales", Title: "Highest Food Sales", Needs: Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(HighestSales(ds.Stalls)) },
	},
	{
		ID: 2, Slug: "top-rated-dishes", Title: "Top Rated Dishes (>9)", Needs: Dishes | Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(TopRatedDishes(ds.Dishes, ds.Stalls)) },
	},
	{
		ID: 3, Slug: "multi-stall-visitors", Title: "Multi-Stall Visitors (>5)", Needs: Visitors,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(MultiStallVisitors(ds.Visitors)) },
	},
	{
		ID: 4, Slug: "multi-contest-winners", Title: "Multi-Contest Winners", Needs: Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(MultiContestWinners(ds.Stalls)) },
	},
	{
		ID: 5, Slug: "average-price-per-stall", Title: "Average Price Per Stall", Needs: Dishes | Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(AveragePricePerStall(ds.Dishes, ds.Stalls)) },
	},
	{
		ID: 6, Slug: "multi-stall-dishes", Title: "Multi-Stall Dishes", Needs: Dishes | Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(MultiStallDishes(ds.Dishes, ds.Stalls)) },
	},
	{
		ID: 7, Slug: "most-popular-dish", Title: "Most Popular Dish", Needs: Dishes | Stalls, Single: true,
		run: func(ds *Dataset, _ Options) (any, int) { return single(MostPopularDish(ds.Dishes, ds.Stalls)) },
	},
	{
		ID: 8, Slug: "super-raters", Title: "Super Raters (>10)", Needs: Visitors,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(SuperRaters(ds.Visitors)) },
	},
	{
		ID: 9, Slug: "demo-stalls", Title: "Live Demo Stalls", Needs: Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(DemoStalls(ds.Stalls)) },
	},
	{
		ID: 10, Slug: "all-contest-participants", Title: "All-Contest Participants", Needs: Stalls,
		run: func(ds *Dataset, o Options) (any, int) {
			return rows(AllContestParticipants(ds.Stalls, o.TotalContests))
		},
	},
	{
		ID: 11, Slug: "most-common-cuisine", Title: "Most Common Cuisine", Needs: Stalls, Single: true,
		run: func(ds *Dataset, _ Options) (any, int) { return single(MostCommonCuisine(ds.Stalls)) },
	},
	{
		ID: 12, Slug: "top-3-selling", Title: "Top 3 Best-Selling", Needs: Stalls,
		run: func(ds *Dataset, _ Options) (any, int) { return rows(TopSelling(ds.Stalls, TopSellingLimit)) },
	},
}

func rows[T any](s []T) (any, int) {
	if s == nil {
		s = []T{}
	}
	return s, len(s)
}

func single[T any](v T, ok bool) (any, int) {
	if !ok {
		return []T{}, 0
	}
	return []T{v}, 1
}

// Definitions returns the report catalog ordered by id.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a report by number ("5"), legacy route name ("query5") or slug.
func Lookup(key string) (Definition, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return Definition{}, false
	}

	numeric := strings.TrimPrefix(key, "query")
	if id, err := strconv.Atoi(numeric); err == nil {
		if id >= 1 && id <= len(definitions) {
			return definitions[id-1], true
		}
		return Definition{}, false
	}

	for _, d := range definitions {
		if d.Slug == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Run evaluates def over an already loaded dataset.
func Run(ds *Dataset, def Definition, opts Options) *Result {
	if ds == nil {
		ds = &Dataset{}
	}
	rows, count := def.run(ds, opts.normalized())
	return &Result{Definition: def, Rows: rows, Count: count}
}

// Execute loads what def needs from src and evaluates it.
func Execute(ctx context.Context, src Source, def Definition, opts Options) (*Result, error) {
	ds, err := Load(ctx, src, def.Needs)
	if err != nil {
		return nil, err
	}
	return Run(ds, def, opts), nil
}

// RunAll evaluates every report concurrently over one dataset, in catalog order.
func RunAll(ds *Dataset, opts Options) []*Result {
	results := make([]*Result, len(definitions))
	var g errgroup.Group
	for i, def := range definitions {
		g.Go(func() error {
			results[i] = Run(ds, def, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ExecuteAll loads every collection once and runs the whole catalog.
func ExecuteAll(ctx context.Context, src Source, opts Options) ([]*Result, error) {
	ds, err := Load(ctx, src, AllCollections)
	if err != nil {
		return nil, err
	}
	return RunAll(ds, opts), nil
}
