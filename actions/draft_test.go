package actions

import (
	"net/http"
	"testing"
	"time"

	"github.com/silinternational/cover-agri/api"
)

func (as *ActionSuite) TestDraftInitAndView() {
	res := as.JSON("/draft").Get()
	as.verifyAppError(http.StatusNotFound, api.ErrorDraftNotFound, res)

	res = as.JSON("/draft").Post(nil)
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var draft api.Claim
	as.NoError(as.decodeBody(res.Body.Bytes(), &draft))
	as.Equal(api.ClaimStatusDraft, draft.Status)
	as.Equal("GA-123456789", draft.PolicyID)
	as.Equal(api.ClaimEventTypeAgriculturalVehicleAccident, draft.EventType)
	as.Empty(draft.Reference)
	as.False(draft.IsSubmittable)

	res = as.JSON("/draft").Post(nil)
	as.Equal(http.StatusOK, res.Code)
	var again api.Claim
	as.NoError(as.decodeBody(res.Body.Bytes(), &again))
	as.Equal(draft.ID, again.ID, "init returns the existing draft")

	res = as.JSON("/draft").Get()
	as.Equal(http.StatusOK, res.Code)
	as.verifyResponseData([]string{`"id":"` + draft.ID + `"`, `"status":"draft"`}, res.Body.String(), "DraftView")
}

func (as *ActionSuite) TestDraftUpdate() {
	as.JSON("/draft").Post(nil)

	eventDate := time.Date(2025, 5, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantKey    api.ErrorKey
		wantData   []string
	}{
		{
			name: "partial update",
			body: map[string]any{
				"event_type":  api.ClaimEventTypeFire,
				"event_date":  eventDate,
				"description": "The barn caught fire with the harvester inside",
				"event_location": map[string]any{
					"latitude":  40.4168,
					"longitude": -3.7038,
				},
			},
			wantStatus: http.StatusOK,
			wantData: []string{
				`"event_type":"fire"`,
				`"event_type_label":"Fire"`,
				`"location_summary":"Lat: 40.4168, Long: -3.7038"`,
				`"is_submittable":true`,
			},
		},
		{
			name:       "unknown field",
			body:       map[string]any{"colour": "red"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorInvalidRequestBody,
		},
		{
			name:       "invalid event type",
			body:       map[string]any{"event_type": "meteor"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorValidation,
		},
		{
			name:       "latitude out of range",
			body:       map[string]any{"event_location": map[string]any{"latitude": 91.5}},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorValidation,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/draft").Put(tt.body)
			if tt.wantKey != "" {
				as.verifyAppError(tt.wantStatus, tt.wantKey, res)
				return
			}
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", res.Body.String())
			as.verifyResponseData(tt.wantData, res.Body.String(), "DraftUpdate")
		})
	}
}

func (as *ActionSuite) TestDraftUpdateWithoutDraft() {
	res := as.JSON("/draft").Put(map[string]any{"description": "nothing to update"})
	as.verifyAppError(http.StatusNotFound, api.ErrorDraftNotFound, res)
}

func (as *ActionSuite) TestDraftVehicles() {
	as.JSON("/draft").Post(nil)

	res := as.JSON("/draft/vehicles").Post(api.VehicleInput{Make: "John Deere"})
	as.verifyAppError(http.StatusBadRequest, api.ErrorValidation, res)

	res = as.JSON("/draft/vehicles").Post(api.VehicleInput{
		ID:         "tractor-1",
		Make:       "John Deere",
		Model:      "6R 150",
		Identifier: "E-1234-BCD",
		Type:       "tractor",
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var draft api.Claim
	as.NoError(as.decodeBody(res.Body.Bytes(), &draft))
	as.Len(draft.Vehicles, 1)
	as.Equal("tractor-1", draft.Vehicles[0].ID)

	res = as.JSON("/draft/vehicles/no-such-vehicle").Delete()
	as.verifyAppError(http.StatusNotFound, api.ErrorResourceNotFound, res)

	res = as.JSON("/draft/vehicles/tractor-1").Delete()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &draft))
	as.Empty(draft.Vehicles)
}

func (as *ActionSuite) TestDraftThirdParties() {
	as.JSON("/draft").Post(nil)

	res := as.JSON("/draft/third-parties").Post(api.ThirdPartyInput{Name: "Ana García"})
	as.verifyAppError(http.StatusBadRequest, api.ErrorValidation, res)

	res = as.JSON("/draft/third-parties").Post(api.ThirdPartyInput{
		Name:          "Ana García",
		Contact:       "+34 600 123 456",
		InsuranceInfo: "Mapfre 998877",
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var draft api.Claim
	as.NoError(as.decodeBody(res.Body.Bytes(), &draft))
	as.Len(draft.ThirdParties, 1)
	as.NotEmpty(draft.ThirdParties[0].ID, "an ID is assigned when none is given")

	res = as.JSON("/draft/third-parties/" + draft.ThirdParties[0].ID).Delete()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &draft))
	as.Empty(draft.ThirdParties)
}

func (as *ActionSuite) TestDraftMedia() {
	as.JSON("/draft").Post(nil)

	res := as.JSON("/draft/media").Post(api.MediaItemInput{URI: "file:///tmp/x.gif", Type: "hologram"})
	as.verifyAppError(http.StatusBadRequest, api.ErrorValidation, res)

	res = as.JSON("/draft/media").Post(api.MediaItemInput{
		ID:       "photo-1",
		URI:      "file:///tmp/photo.jpg",
		Type:     api.MediaTypePhoto,
		FileName: "photo.jpg",
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())
	as.verifyResponseData([]string{`"id":"photo-1"`, `"type":"photo"`}, res.Body.String(), "DraftMediaAdd")

	res = as.JSON("/draft/media/photo-1").Delete()
	as.Equal(http.StatusOK, res.Code)
	as.verifyResponseData([]string{`"media_items":[]`}, res.Body.String(), "DraftMediaRemove")
}

func (as *ActionSuite) TestDraftStepsAndDeclaration() {
	res := as.JSON("/draft/steps").Get()
	as.verifyAppError(http.StatusNotFound, api.ErrorDraftNotFound, res)

	as.createSubmittableDraft()

	res = as.JSON("/draft/steps").Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var report api.StepsReport
	as.NoError(as.decodeBody(res.Body.Bytes(), &report))
	as.Len(report.Steps, len(api.ClaimSteps))
	as.True(report.IsSubmittable)
	as.False(report.CanSubmit, "the declaration has not been accepted")

	res = as.JSON("/draft/steps?truthful=true&terms=true").Get()
	as.NoError(as.decodeBody(res.Body.Bytes(), &report))
	as.True(report.CanSubmit, "query parameters override the session")

	res = as.JSON("/draft/declaration").Put(api.Declaration{Truthful: true})
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &report))
	as.False(report.CanSubmit)

	res = as.JSON("/draft/declaration").Put(api.Declaration{Truthful: true, Terms: true})
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &report))
	as.True(report.CanSubmit)

	res = as.JSON("/draft/steps").Get()
	as.NoError(as.decodeBody(res.Body.Bytes(), &report))
	as.True(report.CanSubmit, "the session remembers the declaration")
}

func (as *ActionSuite) TestDraftSubmit() {
	res := as.JSON("/draft/submit").Post(nil)
	as.verifyAppError(http.StatusBadRequest, api.ErrorClaimNotSubmittable, res)

	as.JSON("/draft").Post(nil)
	res = as.JSON("/draft/submit").Post(nil)
	as.verifyAppError(http.StatusBadRequest, api.ErrorClaimNotSubmittable, res)

	as.createSubmittableDraft()
	as.JSON("/draft/declaration").Put(api.Declaration{Truthful: true, Terms: true})

	res = as.JSON("/draft/submit").Post(nil)
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var result api.SubmitResult
	as.NoError(as.decodeBody(res.Body.Bytes(), &result))
	as.Regexp(`^AXA-\d{6}$`, result.Reference)
	as.Equal(result.Reference, result.Claim.Reference)
	as.Equal(api.ClaimStatusSubmitted, result.Claim.Status)
	as.NotNil(result.Claim.SubmittedAt)

	_, ok := as.services.Desk.Get(result.Reference)
	as.True(ok, "the claims desk received the claim")

	res = as.JSON("/draft").Get()
	as.verifyAppError(http.StatusNotFound, api.ErrorDraftNotFound, res)

	as.Nil(as.Session.Get(sessionKeyDeclarationTruthful), "the declaration is cleared")
	as.Nil(as.Session.Get(sessionKeyDeclarationTerms), "the declaration is cleared")
	as.Positive(as.persister.SaveCount)
}
