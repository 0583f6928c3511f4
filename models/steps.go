package models

import (
	"unicode/utf8"

	"github.com/silinternational/cover-agri/api"
)

// MinDescriptionLength is the shortest description, in characters, that completes the description step
const MinDescriptionLength = 10

// IsStepComplete reports whether the given wizard step has what it needs. Only the declaration step looks at the
// declaration; steps with nothing required are always complete.
func IsStepComplete(step api.ClaimStep, c Claim, decl api.Declaration) bool {
	switch step {
	case api.ClaimStepEventType:
		_, ok := ValidClaimEventTypes[c.EventType]
		return ok
	case api.ClaimStepDateTime:
		return !c.EventDate.IsZero()
	case api.ClaimStepLocation:
		return c.EventLocation.Address != "" || c.EventLocation.HasCoordinates()
	case api.ClaimStepDescription:
		return utf8.RuneCountInString(c.Description) >= MinDescriptionLength
	case api.ClaimStepDeclaration:
		return decl.Accepted()
	default:
		return true
	}
}

// IsSubmittable is true when the event type, date, location and description steps are all complete.
// The declaration is a separate gate and is not included.
func IsSubmittable(c Claim) bool {
	for _, step := range []api.ClaimStep{
		api.ClaimStepEventType,
		api.ClaimStepDateTime,
		api.ClaimStepLocation,
		api.ClaimStepDescription,
	} {
		if !IsStepComplete(step, c, api.Declaration{}) {
			return false
		}
	}
	return true
}

// StepStatuses returns the completion of every wizard step, in wizard order
func StepStatuses(c Claim, decl api.Declaration) api.StepsReport {
	report := api.StepsReport{
		Steps:         make([]api.StepStatus, len(api.ClaimSteps)),
		IsSubmittable: IsSubmittable(c),
	}
	for i, step := range api.ClaimSteps {
		report.Steps[i] = api.StepStatus{Step: step, Complete: IsStepComplete(step, c, decl)}
	}
	report.CanSubmit = report.IsSubmittable && decl.Accepted()
	return report
}
