package api

import (
	"time"
)

// Policy is the insurance policy a claim is filed against
//
// swagger:model
type Policy struct {
	// policy number, e.g. GA-123456789
	ID string `json:"id"`

	// name of the policy product
	Name string `json:"name"`

	// first day of cover
	//
	// swagger:strfmt date
	ValidFrom time.Time `json:"valid_from"`

	// last day of cover
	//
	// swagger:strfmt date
	ValidUntil time.Time `json:"valid_until"`

	// covered perils
	Coverages []Coverage `json:"coverages"`

	// insured value in whole euros
	InsuredValue int `json:"insured_value"`

	// deductible in whole euros
	Deductible int `json:"deductible"`

	Currency string `json:"currency"`

	// true if the policy is in force on the requested date
	Active bool `json:"active"`
}

// Coverage is a single peril and whether the policy includes it
//
// swagger:model
type Coverage struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}
