package actions

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/silinternational/cover-agri/api"
)

func (as *ActionSuite) TestClaimsList() {
	res := as.JSON("/claims").Get()
	as.Equal(http.StatusOK, res.Code)
	as.Equal("[]", strings.TrimSpace(res.Body.String()))

	first := as.submitDraft()
	second := as.submitDraft()

	res = as.JSON("/claims").Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var claims api.Claims
	as.NoError(as.decodeBody(res.Body.Bytes(), &claims))
	as.Len(claims, 2)
	as.Equal(first.Reference, claims[0].Reference)
	as.Equal(second.Reference, claims[1].Reference)

	as.True(as.services.Store.UpdateClaimStatus(context.Background(), second.ID, api.ClaimStatusApproved))

	res = as.JSON("/claims?filter=status:approved").Get()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &claims))
	as.Len(claims, 1)
	as.Equal(second.Reference, claims[0].Reference)

	res = as.JSON("/claims?limit=1&page=2").Get()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(as.decodeBody(res.Body.Bytes(), &claims))
	as.Len(claims, 1)
	as.Equal(second.Reference, claims[0].Reference)
}

func (as *ActionSuite) TestClaimsView() {
	claim := as.submitDraft()

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantKey    api.ErrorKey
		wantData   []string
	}{
		{
			name:       "not found",
			id:         "claim-0",
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorClaimNotFound,
		},
		{
			name:       "submitted claim",
			id:         claim.ID,
			wantStatus: http.StatusOK,
			wantData: []string{
				`"id":"` + claim.ID + `"`,
				`"reference":"` + claim.Reference + `"`,
				`"status":"submitted"`,
				`"status_label":"Submitted"`,
				`"event_type":"theft"`,
			},
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/claims/" + tt.id).Get()
			if tt.wantKey != "" {
				as.verifyAppError(tt.wantStatus, tt.wantKey, res)
				return
			}
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", res.Body.String())
			as.verifyResponseData(tt.wantData, res.Body.String(), "ClaimsView")
		})
	}
}

func (as *ActionSuite) TestClaimsUpdateStatus() {
	claim := as.submitDraft()

	tests := []struct {
		name       string
		id         string
		body       any
		wantStatus int
		wantKey    api.ErrorKey
	}{
		{
			name:       "not found",
			id:         "claim-0",
			body:       api.ClaimStatusInput{Status: api.ClaimStatusApproved},
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorClaimNotFound,
		},
		{
			name:       "unknown status",
			id:         claim.ID,
			body:       api.ClaimStatusInput{Status: "lost"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorValidation,
		},
		{
			name:       "forward",
			id:         claim.ID,
			body:       api.ClaimStatusInput{Status: api.ClaimStatusApproved},
			wantStatus: http.StatusOK,
		},
		{
			name:       "same status again",
			id:         claim.ID,
			body:       api.ClaimStatusInput{Status: api.ClaimStatusApproved},
			wantStatus: http.StatusOK,
		},
		{
			name:       "back to draft",
			id:         claim.ID,
			body:       api.ClaimStatusInput{Status: api.ClaimStatusDraft},
			wantStatus: http.StatusConflict,
			wantKey:    api.ErrorClaimStatus,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/claims/" + tt.id + "/status").Put(tt.body)
			if tt.wantKey != "" {
				as.verifyAppError(tt.wantStatus, tt.wantKey, res)
				return
			}
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", res.Body.String())

			var got api.Claim
			as.NoError(as.decodeBody(res.Body.Bytes(), &got))
			as.Equal(api.ClaimStatusApproved, got.Status)
			as.Equal("Approved", got.StatusLabel)
		})
	}

	stored, ok := as.services.Store.GetClaim(claim.ID)
	as.True(ok)
	as.Equal(api.ClaimStatusApproved, stored.Status)
}
