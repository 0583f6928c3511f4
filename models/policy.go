package models

import (
	"time"

	"github.com/silinternational/cover-agri/api"
)

const PolicyCurrency = "EUR"

// Policy is an entry of the local policy catalog. There is no policy backend, so the catalog is fixed.
type Policy struct {
	ID           string
	Name         string
	ValidFrom    time.Time
	ValidUntil   time.Time
	Coverages    []string
	InsuredValue int
	Deductible   int
}

var policyCatalog = map[string]Policy{
	"GA-123456789": {
		ID:         "GA-123456789",
		Name:       "Global Agrícola",
		ValidFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Coverages: []string{
			"Fire",
			"Theft",
			"Agricultural Vehicle Accident",
			"Material Damages",
			"Natural Events",
			"Hydraulic Mechanism Failure",
			"Liability Coverage",
		},
		InsuredValue: 100000,
		Deductible:   500,
	},
}

// FindPolicy looks up a policy by its number
func FindPolicy(id string) (Policy, bool) {
	p, ok := policyCatalog[id]
	return p, ok
}

// IsActiveOn is true if the date falls within the policy's validity window, both ends inclusive
func (p Policy) IsActiveOn(t time.Time) bool {
	day := t.UTC().Truncate(24 * time.Hour)
	return !day.Before(p.ValidFrom) && !day.After(p.ValidUntil)
}

// ConvertPolicy renders the policy for clients. The active flag is evaluated at the given time.
func ConvertPolicy(p Policy, at time.Time) api.Policy {
	coverages := make([]api.Coverage, len(p.Coverages))
	for i, name := range p.Coverages {
		coverages[i] = api.Coverage{Name: name, Included: true}
	}
	return api.Policy{
		ID:           p.ID,
		Name:         p.Name,
		ValidFrom:    p.ValidFrom,
		ValidUntil:   p.ValidUntil,
		Coverages:    coverages,
		InsuredValue: p.InsuredValue,
		Deductible:   p.Deductible,
		Currency:     PolicyCurrency,
		Active:       p.IsActiveOn(at),
	}
}
