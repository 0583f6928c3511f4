package actions

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/models"
)

// swagger:operation GET /claims Claims ClaimsList
//
// ClaimsList
//
// list the submitted claims
//
// ---
// parameters:
// - name: filter
//   in: query
//   required: false
//   description: comma separated key:value pairs, keys are status, event_type and policy_id
// - name: search
//   in: query
//   required: false
//   description: text to find in the reference, description or address
// - name: limit
//   in: query
//   required: false
//   description: page size, at most 50, all claims if absent
// - name: page
//   in: query
//   required: false
//   description: page number, starting at 1
// responses:
//   '200':
//     description: a list of Claims
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Claim"
func claimsList(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}
	claims := store.ActiveClaims().Query(api.NewQueryParams(c.Params()))
	return renderOk(c, models.ConvertClaims(claims, time.Now()))
}

// swagger:operation GET /claims/{id} Claims ClaimsView
//
// ClaimsView
//
// view a specific submitted claim
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// responses:
//   '200':
//     description: a Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsView(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	claim, err := getReferencedClaim(c, store)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, models.ConvertClaim(claim, time.Now()))
}

// swagger:operation PUT /claims/{id}/status Claims ClaimsUpdateStatus
//
// ClaimsUpdateStatus
//
// record a status decided by the claims desk
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// - name: claim status input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimStatusInput"
// responses:
//   '200':
//     description: the updated Claim
//     schema:
//       "$ref": "#/definitions/Claim"
//   '409':
//     description: the claim cannot move to the given status
func claimsUpdateStatus(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	claim, err := getReferencedClaim(c, store)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimStatusInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if !store.UpdateClaimStatus(c, claim.ID, input.Status) {
		err := fmt.Errorf("claim %s cannot go from %s to %s", claim.ID, claim.Status, input.Status)
		return reportError(c, api.NewAppError(err, api.ErrorClaimStatus, api.CategoryConflict))
	}

	claim, _ = store.GetClaim(claim.ID)
	return renderOk(c, models.ConvertClaim(claim, time.Now()))
}

// getReferencedClaim finds the active claim named by the id route parameter
func getReferencedClaim(c buffalo.Context, store *models.ClaimStore) (models.Claim, error) {
	id := c.Param("id")
	claim, ok := store.GetClaim(id)
	if !ok {
		err := errors.New("claim not found: " + id)
		return models.Claim{}, api.NewAppError(err, api.ErrorClaimNotFound, api.CategoryNotFound)
	}
	return claim, nil
}
