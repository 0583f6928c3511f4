package actions

import (
	"errors"
	"strconv"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/models"
)

// draftMutationError explains why a draft mutation changed nothing
func draftMutationError(store *models.ClaimStore) error {
	if store.IsSubmitting() {
		return api.NewAppError(errors.New("draft is frozen while it is being submitted"),
			api.ErrorClaimSubmissionInProgress, api.CategoryConflict)
	}
	if _, ok := store.DraftClaim(); !ok {
		return api.NewAppError(errors.New("no draft claim"), api.ErrorDraftNotFound, api.CategoryNotFound)
	}
	return api.NewAppError(errors.New("draft item not found"), api.ErrorResourceNotFound, api.CategoryNotFound)
}

// renderDraft renders the current draft, or an error if there is none
func renderDraft(c buffalo.Context, store *models.ClaimStore) error {
	draft, ok := store.DraftClaim()
	if !ok {
		return reportError(c, draftMutationError(store))
	}
	return renderOk(c, models.ConvertClaim(draft, time.Now()))
}

// swagger:operation GET /draft Draft DraftView
//
// DraftView
//
// view the claim in progress
//
// ---
// responses:
//   '200':
//     description: the draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
//   '404':
//     description: there is no draft
func draftView(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}
	return renderDraft(c, store)
}

// swagger:operation POST /draft Draft DraftInit
//
// DraftInit
//
// start a draft claim with default values, or return the existing one
//
// ---
// responses:
//   '200':
//     description: the draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftInit(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	draft := store.InitDraftClaim(c)
	return renderOk(c, models.ConvertClaim(draft, time.Now()))
}

// swagger:operation PUT /draft Draft DraftUpdate
//
// DraftUpdate
//
// merge the given fields into the draft claim
//
// ---
// parameters:
// - name: claim update input
//   in: body
//   description: the fields to change, absent fields are left as they are
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimUpdateInput"
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftUpdate(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if !store.UpdateDraftClaim(c, input) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation GET /draft/steps Draft DraftSteps
//
// DraftSteps
//
// completion of each wizard step for the draft claim
//
// ---
// parameters:
// - name: truthful
//   in: query
//   required: false
//   description: the truthfulness box of the declaration is ticked, defaults to the session's declaration
// - name: terms
//   in: query
//   required: false
//   description: the terms box of the declaration is ticked, defaults to the session's declaration
// responses:
//   '200':
//     description: the step report
//     schema:
//       "$ref": "#/definitions/StepsReport"
func draftSteps(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	draft, ok := store.DraftClaim()
	if !ok {
		return reportError(c, draftMutationError(store))
	}

	decl := sessionDeclaration(c)
	if v := c.Param("truthful"); v != "" {
		decl.Truthful, _ = strconv.ParseBool(v)
	}
	if v := c.Param("terms"); v != "" {
		decl.Terms, _ = strconv.ParseBool(v)
	}

	return renderOk(c, models.StepStatuses(draft, decl))
}

// swagger:operation PUT /draft/declaration Draft DraftDeclaration
//
// DraftDeclaration
//
// record the declaration checkboxes for this session
//
// ---
// parameters:
// - name: declaration
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/Declaration"
// responses:
//   '200':
//     description: the step report
//     schema:
//       "$ref": "#/definitions/StepsReport"
func draftDeclaration(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	draft, ok := store.DraftClaim()
	if !ok {
		return reportError(c, draftMutationError(store))
	}

	var decl api.Declaration
	if err := StrictBind(c, &decl); err != nil {
		return reportError(c, err)
	}
	if err := setSessionDeclaration(c, decl); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.StepStatuses(draft, decl))
}

// swagger:operation POST /draft/vehicles Draft DraftVehiclesAdd
//
// DraftVehiclesAdd
//
// add a vehicle to the draft claim
//
// ---
// parameters:
// - name: vehicle input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/VehicleInput"
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftVehiclesAdd(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.VehicleInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if !store.AddVehicleToDraft(c, models.ConvertVehicleInput(input)) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation DELETE /draft/vehicles/{id} Draft DraftVehiclesRemove
//
// DraftVehiclesRemove
//
// remove a vehicle from the draft claim
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: vehicle ID
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftVehiclesRemove(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	if !store.RemoveVehicleFromDraft(c, c.Param("id")) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation POST /draft/third-parties Draft DraftThirdPartiesAdd
//
// DraftThirdPartiesAdd
//
// add a third party to the draft claim
//
// ---
// parameters:
// - name: third party input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/ThirdPartyInput"
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftThirdPartiesAdd(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ThirdPartyInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if !store.AddThirdPartyToDraft(c, models.ConvertThirdPartyInput(input)) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation DELETE /draft/third-parties/{id} Draft DraftThirdPartiesRemove
//
// DraftThirdPartiesRemove
//
// remove a third party from the draft claim
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: third party ID
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftThirdPartiesRemove(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	if !store.RemoveThirdPartyFromDraft(c, c.Param("id")) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation POST /draft/media Draft DraftMediaAdd
//
// DraftMediaAdd
//
// attach a photo, video or document to the draft claim
//
// ---
// parameters:
// - name: media item input
//   in: body
//   required: true
//   schema:
//     "$ref": "#/definitions/MediaItemInput"
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftMediaAdd(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.MediaItemInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if !store.AddMediaToDraft(c, models.ConvertMediaItemInput(input)) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation DELETE /draft/media/{id} Draft DraftMediaRemove
//
// DraftMediaRemove
//
// remove a media item from the draft claim
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: media item ID
// responses:
//   '200':
//     description: the updated draft Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func draftMediaRemove(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	if !store.RemoveMediaFromDraft(c, c.Param("id")) {
		return reportError(c, draftMutationError(store))
	}
	return renderDraft(c, store)
}

// swagger:operation POST /draft/submit Draft DraftSubmit
//
// DraftSubmit
//
// submit the draft claim to the claims desk
//
// ---
// responses:
//   '200':
//     description: the reference and the submitted Claim
//     schema:
//       "$ref": "#/definitions/SubmitResult"
//   '400':
//     description: the draft is missing required information
//   '409':
//     description: a submission is already in progress
//   '502':
//     description: the claims desk did not accept the claim, the draft is kept
func draftSubmit(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}

	reference, err := store.SubmitClaim(c)
	if err != nil {
		return reportError(c, err)
	}
	clearSessionDeclaration(c)

	result := api.SubmitResult{Reference: reference}
	if claim, ok := store.GetClaimByReference(reference); ok {
		result.Claim = models.ConvertClaim(claim, time.Now())
	}
	return renderOk(c, result)
}
