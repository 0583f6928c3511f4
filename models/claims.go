package models

import (
	"strings"

	"github.com/silinternational/cover-agri/api"
)

// Query returns the claims matching the filters and search text of q, limited to the requested page
func (cs Claims) Query(q api.QueryParams) Claims {
	status := api.ClaimStatus(q.Filter(api.FilterStatus))
	eventType := api.ClaimEventType(q.Filter(api.FilterEventType))
	policyID := q.Filter(api.FilterPolicyID)
	search := strings.ToLower(q.Search())

	matched := make(Claims, 0, len(cs))
	for _, c := range cs {
		if status != "" && c.Status != status {
			continue
		}
		if eventType != "" && c.EventType != eventType {
			continue
		}
		if policyID != "" && c.PolicyID != policyID {
			continue
		}
		if search != "" && !c.matches(search) {
			continue
		}
		matched = append(matched, c)
	}

	start, end := q.PageBounds(len(matched))
	return matched[start:end]
}

// matches reports whether the lowercase text appears in the claim's reference, description or address
func (c Claim) matches(text string) bool {
	for _, field := range []string{c.Reference, c.Description, c.EventLocation.Address} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}
