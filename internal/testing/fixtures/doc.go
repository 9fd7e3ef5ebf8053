// Package fixtures creates festival records in a test database.
//
// Each Create method inserts one record with unique defaults and returns the
// stored model. Option functions override individual fields.
//
//	f := fixtures.New(tdb.DB)
//	stall := f.CreateStall(t, func(o *fixtures.StallOpts) { o.Sales = 900 })
//	dish := f.CreateDish(t, stall, func(o *fixtures.DishOpts) { o.Rating = 9.5 })
package fixtures
