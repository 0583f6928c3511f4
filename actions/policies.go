package actions

import (
	"errors"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/models"
)

// swagger:operation GET /policies/{id} Policies PoliciesView
//
// PoliciesView
//
// view a policy and the coverages it includes
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// responses:
//   '200':
//     description: a Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesView(c buffalo.Context) error {
	id := c.Param("id")
	policy, ok := models.FindPolicy(id)
	if !ok {
		err := errors.New("policy not found: " + id)
		return reportError(c, api.NewAppError(err, api.ErrorPolicyNotFound, api.CategoryNotFound))
	}
	return renderOk(c, models.ConvertPolicy(policy, time.Now()))
}
