package snapshot

import (
	"time"

	"github.com/forgo/foodfest/api/internal/model"
)

var demoOpening = time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

// Demo returns a small festival that gives every report at least one row.
// It seeds development databases and backs the dashboard before its first
// successful fetch. Each call returns fresh values.
func Demo() *Snapshot {
	at := func(minutes int) time.Time { return demoOpening.Add(time.Duration(minutes) * time.Minute) }

	stalls := []*model.Stall{
		{ID: "stall:spice_route", Name: "Spice Route", Cuisine: "Indian", Sales: 4820, LiveDemo: true,
			Contests: []string{"curry-cookoff", "chili-challenge", "dessert-duel"}, CreatedOn: at(0)},
		{ID: "stall:taco_loco", Name: "Taco Loco", Cuisine: "Mexican", Sales: 3975,
			Contests: []string{"chili-challenge", "street-food"}, CreatedOn: at(1)},
		{ID: "stall:tandoor_nights", Name: "Tandoor Nights", Cuisine: "Indian", Sales: 2610,
			Contests: []string{"curry-cookoff"}, CreatedOn: at(2)},
		{ID: "stall:noodle_bar", Name: "Noodle Bar", Cuisine: "Japanese", Sales: 3975, LiveDemo: true,
			Contests: []string{}, CreatedOn: at(3)},
		{ID: "stall:masala_box", Name: "Masala Box", Cuisine: "Indian", Sales: 1290,
			Contests: []string{"street-food", "curry-cookoff", "dessert-duel", "chili-challenge"}, CreatedOn: at(4)},
		{ID: "stall:sweet_tooth", Name: "Sweet Tooth", Cuisine: "Desserts", Sales: 845,
			Contests: []string{"dessert-duel", "street-food", "chili-challenge"}, CreatedOn: at(5)},
	}

	dishes := []*model.Dish{
		{ID: "dish:butter_chicken", Name: "Butter Chicken", StallID: "stall:spice_route", Price: 14, Rating: 9.6,
			SoldBy: []string{"stall:spice_route", "stall:tandoor_nights"}, CreatedOn: at(10)},
		{ID: "dish:samosa", Name: "Samosa", StallID: "stall:spice_route", Price: 5, Rating: 8.2,
			SoldBy: []string{"stall:spice_route", "stall:masala_box", "stall:tandoor_nights"}, CreatedOn: at(11)},
		{ID: "dish:al_pastor", Name: "Tacos al Pastor", StallID: "stall:taco_loco", Price: 11, Rating: 9.2,
			SoldBy: []string{"stall:taco_loco"}, CreatedOn: at(12)},
		{ID: "dish:churros", Name: "Churros", StallID: "stall:taco_loco", Price: 6, Rating: 7.9,
			SoldBy: []string{"stall:taco_loco", "stall:sweet_tooth"}, CreatedOn: at(13)},
		{ID: "dish:naan", Name: "Garlic Naan", StallID: "stall:tandoor_nights", Price: 4, Rating: 8.8,
			SoldBy: []string{}, CreatedOn: at(14)},
		{ID: "dish:tonkotsu", Name: "Tonkotsu Ramen", StallID: "stall:noodle_bar", Price: 16, Rating: 9.6,
			SoldBy: []string{"stall:noodle_bar"}, CreatedOn: at(15)},
		{ID: "dish:gyoza", Name: "Gyoza", StallID: "stall:noodle_bar", Price: 8, Rating: 8.5,
			SoldBy: []string{"stall:noodle_bar"}, CreatedOn: at(16)},
		{ID: "dish:chai", Name: "Masala Chai", StallID: "stall:masala_box", Price: 0, Rating: 7.4,
			SoldBy: []string{"stall:masala_box", "stall:spice_route"}, CreatedOn: at(17)},
		{ID: "dish:kulfi", Name: "Kulfi", StallID: "stall:sweet_tooth", Price: 7, Rating: 9.1,
			SoldBy: []string{"stall:sweet_tooth", "stall:masala_box"}, CreatedOn: at(18)},
		{ID: "dish:pop_up_special", Name: "Pop-up Special", StallID: "stall:closed_popup", Price: 12, Rating: 6.5,
			SoldBy: []string{}, CreatedOn: at(19)},
	}

	visitors := []*model.Visitor{
		{ID: "visitor:asha", Name: "Asha", StallsVisited: 6, DishesRated: 14, CreatedOn: at(30)},
		{ID: "visitor:bruno", Name: "Bruno", StallsVisited: 3, DishesRated: 4, CreatedOn: at(31)},
		{ID: "visitor:chen", Name: "Chen", StallsVisited: 8, DishesRated: 9, CreatedOn: at(32)},
		{ID: "visitor:dara", Name: "Dara", StallsVisited: 5, DishesRated: 11, CreatedOn: at(33)},
		{ID: "visitor:elif", Name: "Elif", StallsVisited: 1, DishesRated: 0, CreatedOn: at(34)},
	}

	return &Snapshot{
		Stalls:   stalls,
		Dishes:   dishes,
		Visitors: visitors,
		TakenAt:  demoOpening,
		Builtin:  true,
	}
}
