package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo/render"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
)

var r = render.New(render.Options{
	DefaultContentType: "application/json",
})

// reportError logs an error with details and renders the error with buffalo.Render.
// If the HTTP status code provided is in the 300 family, buffalo.Redirect is used instead.
func reportError(c buffalo.Context, err error) error {
	appErr := appErrorFromErr(err)
	appErr.SetHttpStatusFromCategory()

	appErr.Extras = api.MergeExtras([]map[string]any{getExtras(c), appErr.Extras})
	appErr.Extras["function"] = domain.GetFunctionName(2)
	appErr.Extras["key"] = appErr.Key
	appErr.Extras["status"] = appErr.HttpStatus
	appErr.Extras["method"] = c.Request().Method
	appErr.Extras["URI"] = c.Request().RequestURI
	appErr.Extras["IP"] = c.Request().RemoteAddr

	entry := log.WithContext(c).WithFields(appErr.Extras)
	if appErr.HttpStatus >= http.StatusInternalServerError {
		entry.Error(appErr.Error())
	} else {
		entry.Warning(appErr.Error())
	}

	appErr.LoadTranslatedMessage(c)

	// clear out debugging info if not in development or test
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		if appErr.Err != nil {
			appErr.DebugMsg = appErr.Err.Error()
		}
	} else {
		appErr.Extras = map[string]any{}
	}

	if appErr.HttpStatus >= 300 && appErr.HttpStatus <= 399 {
		if appErr.RedirectURL == "" {
			appErr.RedirectURL = domain.Env.UIURL + "?appError=" + appErr.Message
		}
		return c.Redirect(appErr.HttpStatus, appErr.RedirectURL)
	}
	return c.Render(appErr.HttpStatus, r.JSON(appErr))
}

// appErrorFromErr finds the AppError in err's chain, or makes an internal one
func appErrorFromErr(err error) *api.AppError {
	var appErr *api.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &api.AppError{
		Err:      err,
		Category: api.CategoryInternal,
		Key:      api.ErrorUnknown,
	}
}

func getExtras(c buffalo.Context) map[string]any {
	extras, _ := c.Value(domain.ContextKeyExtras).(map[string]any)
	if extras == nil {
		extras = map[string]any{}
	}
	return extras
}

func renderOk(c buffalo.Context, v any) error {
	return c.Render(http.StatusOK, r.JSON(v))
}

// StrictBind decodes the JSON request body into dest, rejecting unknown fields, then validates it
func StrictBind(c buffalo.Context, dest any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty request body")
		}
		return api.NewAppError(fmt.Errorf("invalid request body, %w", err), api.ErrorInvalidRequestBody,
			api.CategoryUser)
	}
	return models.ValidateInput(dest)
}

// getClaimStore returns the claim store from the context, or an error if the app was built without one
func getClaimStore(c buffalo.Context) (*models.ClaimStore, error) {
	store := models.ClaimStoreFromContext(c)
	if store == nil {
		return nil, api.NewAppError(errors.New("claim store not found in context"), api.ErrorClaimFromContext,
			api.CategoryInternal)
	}
	return store, nil
}
