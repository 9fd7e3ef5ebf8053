// Package report holds the twelve fixed festival reports.
//
// Every report is a pure function over in-memory collections. The HTTP API
// runs them over data read from SurrealDB and the dashboard runs the very same
// functions over its cached snapshot when the API cannot be reached, so both
// paths always agree.
//
// # Catalog
//
//	 #  slug                       reads
//	 1  highest-sales              stalls
//	 2  top-rated-dishes           dishes, stalls
//	 3  multi-stall-visitors       visitors
//	 4  multi-contest-winners      stalls
//	 5  average-price-per-stall    dishes, stalls
//	 6  multi-stall-dishes         dishes, stalls
//	 7  most-popular-dish          dishes, stalls   (single)
//	 8  super-raters               visitors
//	 9  demo-stalls                stalls
//	10  all-contest-participants   stalls
//	11  most-common-cuisine        stalls           (single)
//	12  top-3-selling              stalls
//
// Single reports produce zero or one row; zero rows means there was nothing
// to pick from, which is different from a failed request.
//
// # Joins
//
// Dishes refer to stalls by id. Joins are left outer: a dish whose stall is
// gone is still reported, with a null stall.
//
// # Usage
//
//	def, ok := report.Lookup("average-price-per-stall")
//	if !ok {
//	    // unknown report
//	}
//	res, err := report.Execute(ctx, source, def, report.DefaultOptions())
package report
