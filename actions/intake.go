package actions

import (
	"errors"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/intake"
)

func getDesk(c buffalo.Context) (*intake.Desk, error) {
	desk, _ := c.Value(domain.ContextKeyIntakeDesk).(*intake.Desk)
	if desk == nil {
		return nil, api.NewAppError(errors.New("intake desk not found in context"), api.ErrorIntakeDeskMissing,
			api.CategoryNotFound)
	}
	return desk, nil
}

func intakeNotFound(reference string) error {
	return api.NewAppError(errors.New("no intake claim "+reference), api.ErrorIntakeClaimNotFound,
		api.CategoryNotFound)
}

// swagger:operation GET /intake/claims Intake IntakeClaimsList
//
// IntakeClaimsList
//
// list the claims received by the claims desk
//
// ---
// responses:
//   '200':
//     description: a list of IntakeClaims
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/IntakeClaim"
func intakeClaimsList(c buffalo.Context) error {
	desk, err := getDesk(c)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, desk.List())
}

// swagger:operation POST /intake/claims Intake IntakeClaimsCreate
//
// IntakeClaimsCreate
//
// receive a submitted claim at the claims desk
//
// ---
// parameters:
// - name: intake claim input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/IntakeClaimInput"
// responses:
//   '201':
//     description: the received claim with its final reference
//     schema:
//       "$ref": "#/definitions/IntakeClaim"
func intakeClaimsCreate(c buffalo.Context) error {
	desk, err := getDesk(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.IntakeClaimInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	received, err := desk.Receive(input)
	if err != nil {
		return reportError(c, err)
	}
	return c.Render(http.StatusCreated, r.JSON(received))
}

// swagger:operation GET /intake/claims/{reference} Intake IntakeClaimsView
//
// IntakeClaimsView
//
// view a claim held by the claims desk
//
// ---
// parameters:
// - name: reference
//   in: path
//   required: true
//   description: claim reference
// responses:
//   '200':
//     description: an IntakeClaim
//     schema:
//       "$ref": "#/definitions/IntakeClaim"
func intakeClaimsView(c buffalo.Context) error {
	desk, err := getDesk(c)
	if err != nil {
		return reportError(c, err)
	}

	reference := c.Param("reference")
	claim, ok := desk.Get(reference)
	if !ok {
		return reportError(c, intakeNotFound(reference))
	}
	return renderOk(c, claim)
}

// swagger:operation PUT /intake/claims/{reference}/status Intake IntakeClaimsUpdateStatus
//
// IntakeClaimsUpdateStatus
//
// record a processing decision at the claims desk
//
// ---
// parameters:
// - name: reference
//   in: path
//   required: true
//   description: claim reference
// - name: claim status input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimStatusInput"
// responses:
//   '200':
//     description: the updated IntakeClaim
//     schema:
//       "$ref": "#/definitions/IntakeClaim"
func intakeClaimsUpdateStatus(c buffalo.Context) error {
	desk, err := getDesk(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimStatusInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	reference := c.Param("reference")
	claim, err := desk.SetStatus(reference, input.Status)
	if errors.Is(err, intake.ErrClaimNotFound) {
		return reportError(c, intakeNotFound(reference))
	}
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, claim)
}
