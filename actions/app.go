// Cover Agri API
//
// Files agricultural vehicle insurance claims: one draft claim at a time, built step by step and submitted to
// the claims desk.
//
//	Schemes: https
//	Host: localhost
//	BasePath: /
//	Version: 0.0.1
//	License: MIT http://opensource.org/licenses/MIT
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//
// swagger:meta
package actions

import (
	"context"
	"fmt"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/logger"
	contenttype "github.com/gobuffalo/mw-contenttype"
	i18n "github.com/gobuffalo/mw-i18n/v2"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/silinternational/cover-agri/analysis"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/intake"
	"github.com/silinternational/cover-agri/locales"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
	"github.com/silinternational/cover-agri/storage"
)

// Services are the long-lived collaborators shared by every request
type Services struct {
	Store    *models.ClaimStore
	Intake   intake.Service
	Desk     *intake.Desk
	Analyzer Analyzer
}

// ServicesFromEnv builds the claim store and its collaborators as configured in domain.Env, and loads the saved
// claims. A failed load is logged and the store starts empty without saving until the checkpoint job loads the
// snapshot.
func ServicesFromEnv(ctx context.Context) (Services, error) {
	persister, err := storage.NewPersister(domain.Env.PersistenceBackend)
	if err != nil {
		return Services{}, err
	}

	desk := intake.NewDesk()
	intakeService := intake.NewService(desk)
	store := models.NewClaimStore(persister, intakeService, models.DefaultClaimStoreConfig())
	if err := store.Load(ctx); err != nil {
		log.Warningf("starting with an empty claim store, saved claims are left untouched until loaded, %s", err)
	}

	return Services{
		Store:    store,
		Intake:   intakeService,
		Desk:     desk,
		Analyzer: analysis.NewClientFromEnv(),
	}, nil
}

// NewApp is where all routes and middleware for buffalo should be defined.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN. This means if you add a middleware to `app`
// *after* declaring a group, that group will NOT have that new middleware.
func NewApp(services Services) *buffalo.App {
	app := buffalo.New(buffalo.Options{
		Env:    domain.Env.GoEnv,
		Addr:   fmt.Sprintf(":%d", domain.Env.ServerPort),
		Logger: logger.Logrus{FieldLogger: log.Logger()},
		PreWares: []buffalo.PreWare{
			cors.New(cors.Options{
				AllowCredentials: true,
				AllowedOrigins:   []string{domain.Env.UIURL},
				AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
				AllowedHeaders:   []string{"*"},
			}).Handler,
		},
		SessionName:  "_cover_agri_session",
		SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
	})

	registerCustomErrorHandlers(app)

	var err error
	domain.T, err = i18n.New(locales.FS(), "en-US")
	if err != nil {
		_ = app.Stop(err)
	}
	app.Use(domain.T.Middleware())

	app.Use(log.SentryMiddleware)

	// Log request parameters (filters apply).
	app.Use(paramlogger.ParameterLogger)

	// Treat requests without a content type as JSON
	app.Use(contenttype.Add("application/json"))

	app.Use(servicesMiddleware(services))

	app.GET("/status", statusHandler)

	draftGroup := app.Group("/draft")
	draftGroup.GET("/", draftView)
	draftGroup.POST("/", draftInit)
	draftGroup.PUT("/", draftUpdate)
	draftGroup.GET("/steps", draftSteps)
	draftGroup.PUT("/declaration", draftDeclaration)
	draftGroup.POST("/vehicles", draftVehiclesAdd)
	draftGroup.DELETE("/vehicles/{id}", draftVehiclesRemove)
	draftGroup.POST("/third-parties", draftThirdPartiesAdd)
	draftGroup.DELETE("/third-parties/{id}", draftThirdPartiesRemove)
	draftGroup.POST("/media", draftMediaAdd)
	draftGroup.DELETE("/media/{id}", draftMediaRemove)
	draftGroup.POST("/analysis", draftAnalysis)
	draftGroup.POST("/submit", draftSubmit)

	claimsGroup := app.Group("/claims")
	claimsGroup.GET("/", claimsList)
	claimsGroup.GET("/{id}", claimsView)
	claimsGroup.PUT("/{id}/status", claimsUpdateStatus)

	app.GET("/policies/{id}", policiesView)

	intakeGroup := app.Group("/intake/claims")
	intakeGroup.GET("/", intakeClaimsList)
	intakeGroup.POST("/", intakeClaimsCreate)
	intakeGroup.GET("/{reference}", intakeClaimsView)
	intakeGroup.PUT("/{reference}/status", intakeClaimsUpdateStatus)

	return app
}

// servicesMiddleware makes the shared services available to handlers through the buffalo context
func servicesMiddleware(services Services) buffalo.MiddlewareFunc {
	return func(next buffalo.Handler) buffalo.Handler {
		return func(c buffalo.Context) error {
			c.Set(domain.ContextKeyClaimStore, services.Store)
			c.Set(domain.ContextKeyIntakeDesk, services.Desk)
			c.Set(domain.ContextKeyAnalyzer, services.Analyzer)
			return next(c)
		}
	}
}
