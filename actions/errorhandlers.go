package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
)

func registerCustomErrorHandlers(app *buffalo.App) {
	app.ErrorHandlers[http.StatusInternalServerError] = customErrorHandler
	app.ErrorHandlers[http.StatusNotFound] = notFoundHandler
	app.ErrorHandlers[http.StatusMethodNotAllowed] = notFoundHandler
}

func customErrorHandler(status int, origErr error, c buffalo.Context) error {
	log.WithContext(c).Error(origErr)

	if domain.Env.GoEnv == domain.EnvDevelopment {
		debug.PrintStack()
	}

	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorGenericInternalServer,
		DebugMsg:   fmt.Sprintf("(%T) %s", origErr, origErr),
		Message:    "An internal system error has occurred",
	}
	return writeErrorJSON(c, status, appError)
}

func notFoundHandler(status int, origErr error, c buffalo.Context) error {
	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorRouteNotFound,
	}
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		appError.DebugMsg = fmt.Sprintf("%s %s: %s", c.Request().Method, c.Request().URL.Path, origErr)
	}
	appError.LoadTranslatedMessage(c)
	return writeErrorJSON(c, status, appError)
}

func writeErrorJSON(c buffalo.Context, status int, appError api.AppError) error {
	c.Response().Header().Set("content-type", "application/json")
	c.Response().WriteHeader(status)
	return json.NewEncoder(c.Response()).Encode(&appError)
}
