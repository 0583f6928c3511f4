package actions

import (
	"net/http"

	"github.com/silinternational/cover-agri/api"
)

func (as *ActionSuite) TestPoliciesView() {
	res := as.JSON("/policies/GA-000000000").Get()
	as.verifyAppError(http.StatusNotFound, api.ErrorPolicyNotFound, res)

	res = as.JSON("/policies/GA-123456789").Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var policy api.Policy
	as.NoError(as.decodeBody(res.Body.Bytes(), &policy))
	as.Equal("GA-123456789", policy.ID)
	as.Equal("Global Agrícola", policy.Name)
	as.Len(policy.Coverages, 7)
	as.Equal(100000, policy.InsuredValue)
	as.Equal(500, policy.Deductible)
}
