// Package intake hands submitted claims to the claims desk and reads back the statuses the desk assigns.
// DummyService keeps everything in process; HTTPService talks to a remote desk over JSON.
package intake

import (
	"context"
	"errors"

	"github.com/paulmach/orb/geojson"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/models"
)

// ErrClaimNotFound is returned when the desk has no claim with the requested reference
var ErrClaimNotFound = errors.New("claim not found at intake desk")

// Service is a claims intake desk. It satisfies models.ClaimSubmitter.
type Service interface {
	SubmitClaim(ctx context.Context, claim models.Claim) (string, error)
	ClaimStatus(ctx context.Context, reference string) (api.ClaimStatus, error)
}

// NewService chooses the intake service named in the environment. The desk backs the dummy service.
func NewService(desk *Desk) Service {
	if domain.Env.IntakeService == domain.IntakeHTTP {
		return NewHTTPService(domain.Env.IntakeURL, domain.SubmissionTimeout())
	}
	return NewDummyService(desk, domain.Env.SubmissionDelayMilliseconds)
}

// NewIntakeClaimInput builds the desk payload for a claim. Coordinates travel as a GeoJSON point.
func NewIntakeClaimInput(claim models.Claim) api.IntakeClaimInput {
	converted := models.ConvertClaim(claim, claim.CreatedAt)
	input := api.IntakeClaimInput{
		ClaimID:      claim.ID,
		UserID:       claim.UserID,
		PolicyID:     claim.PolicyID,
		Reference:    claim.Reference,
		EventType:    claim.EventType,
		EventDate:    claim.EventDate,
		Description:  claim.Description,
		Address:      claim.EventLocation.Address,
		Vehicles:     converted.Vehicles,
		ThirdParties: converted.ThirdParties,
		MediaCount:   len(claim.MediaItems),
		PoliceReport: converted.PoliceReport,
	}
	if point, ok := claim.EventLocation.Point(); ok {
		input.Location = geojson.NewGeometry(point)
	}
	return input
}
