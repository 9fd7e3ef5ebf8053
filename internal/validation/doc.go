// Package validation wraps go-playground/validator for request structs.
//
// A single validator instance is shared process-wide. Violations are reported
// with the JSON field name and a readable message:
//
//	type CreateStallRequest struct {
//	    Name  string  `json:"name" validate:"required,max=120"`
//	    Sales float64 `json:"sales" validate:"gte=0"`
//	}
//
//	if verr := validation.Struct(&req); verr != nil {
//	    for _, v := range verr.Violations {
//	        // v.Field == "name", v.Message == "name is required"
//	    }
//	}
package validation
